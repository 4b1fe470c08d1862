package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/linkguard/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for linkguard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkguard",
		Short: "Mark external links and confirm before leaving the site",
		Long: `linkguard annotates the links of HTML documents that point to another host.

Every external http(s) link gets rel="nofollow noopener noreferrer", an
external-link icon and a confirmation prompt that names the destination
before the reader leaves the site. Links on the same host and mailto:,
tel: and javascript: links are left untouched.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", log.FormatText, "Log output format (text or json)")

	cmd.AddCommand(NewAnnotateCmd())
	cmd.AddCommand(NewClassifyCmd())
	cmd.AddCommand(NewClickCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newCommandLogger creates the secure logger selected by --log-format and
// --verbose. Logs go to the command's stderr.
func newCommandLogger(cmd *cobra.Command) (*slog.Logger, error) {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format, err = cmd.Root().PersistentFlags().GetString("log-format")
		if err != nil {
			format = log.FormatText
		}
	}
	return log.NewLogger(cmd.ErrOrStderr(), format, getVerboseFlag(cmd))
}
