package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/nao1215/linkguard/internal/linkclass"
	"github.com/spf13/cobra"
)

// NewClassifyCmd creates the classify command.
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <href>",
		Short: "Report whether a link leaves the site",
		Long: `Classify resolves an href against the page location and prints whether
the link is external, together with the rule that decided it.

Examples:
  linkguard classify https://other.org/ --location https://example.org/
  linkguard classify /about -l https://example.org/docs/index.html
  linkguard classify mailto:info@example.org -l https://example.org/ -j`,
		Args: cobra.ExactArgs(1),
		RunE: runClassifyCmd,
	}

	cmd.Flags().StringP("location", "l", "",
		"URL of the page that contains the link")
	cmd.Flags().BoolP("json", "j", false,
		"Print the result as JSON")
	_ = cmd.MarkFlagRequired("location") //nolint:errcheck // flag is defined above

	return cmd
}

// runClassifyCmd executes the classify command.
func runClassifyCmd(cmd *cobra.Command, args []string) error {
	location, err := cmd.Flags().GetString("location")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	loc, err := url.Parse(location)
	if err != nil || !loc.IsAbs() {
		return fmt.Errorf("invalid location %q: must be an absolute URL", location)
	}

	result := linkclass.Classify(args[0], loc)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	kind := "internal"
	if result.External {
		kind = "external"
	}
	fmt.Fprintf(out, "%s (%s)", kind, result.Reason)
	if result.URL != "" {
		fmt.Fprintf(out, " %s", result.URL)
	}
	fmt.Fprintln(out)
	return nil
}
