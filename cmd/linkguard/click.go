package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/linkguard/internal/annotator"
	"github.com/nao1215/linkguard/internal/config"
	"github.com/nao1215/linkguard/internal/dom"
	"github.com/nao1215/linkguard/internal/linkclass"
	"github.com/nao1215/linkguard/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewClickCmd creates the click command.
func NewClickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "click <file>",
		Short: "Simulate a click on a link and answer the confirmation",
		Long: `Click loads an HTML document, annotates it and clicks the first link whose
href matches --href. External links show the confirmation message on the
terminal and wait for an answer; the command then reports whether the
navigation would happen.

Examples:
  linkguard click index.html --base-url https://example.org/ --href https://other.org/page`,
		Args: cobra.ExactArgs(1),
		RunE: runClickCmd,
	}

	cmd.Flags().StringP("base-url", "u", "",
		"URL the documents are served from")
	cmd.Flags().String("href", "",
		"href attribute of the link to click, as written in the document")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .linkguard in current or home directory)")
	_ = cmd.MarkFlagRequired("href") //nolint:errcheck // flag is defined above

	return cmd
}

// runClickCmd executes the click command.
func runClickCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	if path == pipeline.StdinPath {
		return errors.New("click reads the answer from stdin, so the document must be a file")
	}

	logger, err := newCommandLogger(cmd)
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
		return err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return err
	}
	href, err := cmd.Flags().GetString("href")
	if err != nil {
		return err
	}
	if err := applyConfigFile(cfg); err != nil {
		return err
	}
	cfg.Inputs = []string{path}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	location, err := pipeline.ResolveLocation(cfg.BaseURL, path)
	if err != nil {
		return err
	}

	f, err := os.Open(path) //nolint:gosec // Input file is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := dom.Load(f, location)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a := annotator.New(
		annotator.NewPromptConfirmer(cmd.InOrStdin(), out),
		annotator.WithLogger(logger),
		annotator.WithMessage(annotator.NewMessage(cfg.Organization, cfg.Abbreviation)),
	)
	a.Attach(doc, nil)
	doc.Ready()

	var target *dom.Anchor
	for _, anchor := range doc.Anchors() {
		if anchor.Href() == href {
			target = anchor
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no link with href %q in %s", href, path)
	}

	dest := linkclass.Classify(href, doc.Location()).URL
	if dest == "" {
		dest = href
	}

	if target.Click() {
		fmt.Fprintf(out, "navigating to %s\n", dest)
	} else {
		fmt.Fprintf(out, "navigation to %s cancelled\n", dest)
	}
	return nil
}
