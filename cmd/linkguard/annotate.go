package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/linkguard/internal/annotator"
	"github.com/nao1215/linkguard/internal/config"
	"github.com/nao1215/linkguard/internal/model"
	"github.com/nao1215/linkguard/internal/pipeline"
	"github.com/nao1215/linkguard/internal/report"
	"github.com/spf13/cobra"
)

// NewAnnotateCmd creates the annotate command.
func NewAnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate [files...]",
		Short: "Mark external links in HTML documents",
		Long: `Annotate rewrites HTML documents so that every link to another host:
- has rel="nofollow noopener noreferrer"
- ends with an external-link icon
- asks for confirmation before the reader leaves the site

Each document is located at the base URL joined with its path, and links
are compared against that host. Use "-" to read a single document from
standard input.

Examples:
  # Annotate a document and print it
  linkguard annotate --base-url https://example.org/ index.html

  # Annotate a whole site into another directory
  linkguard annotate -u https://example.org/ -d public site/*.html

  # Read from stdin, write a JSON report to a file
  cat index.html | linkguard annotate -u https://example.org/ -j -r report.json -

Configuration file (.linkguard) example:
  base_url: "https://example.org/"
  organization:
    name: "Example Society"
    abbreviation: "EXS"
  inline_confirm: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnnotateCmd,
	}

	cmd.Flags().StringP("base-url", "u", "",
		"URL the documents are served from (e.g., https://example.org/)")
	cmd.Flags().StringP("out-dir", "d", "",
		"Write annotated documents to this directory instead of stdout")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of documents processed concurrently")
	cmd.Flags().Bool("no-inline", false,
		"Do not write an onclick confirmation attribute")
	cmd.Flags().String("org", "",
		"Organisation named in the confirmation message")
	cmd.Flags().String("org-abbr", "",
		"Short organisation name used in the confirmation message")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .linkguard in current or home directory)")

	cmd.Flags().BoolP("json", "j", false,
		"Write the report as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write the report as Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("report", "r", "",
		"Write the report to this file instead of stderr")

	return cmd
}

// runAnnotateCmd executes the annotate command.
func runAnnotateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := newCommandLogger(cmd)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAnnotate(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// buildConfig creates a Config from cobra command flags and the config file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.BaseURL, err = flags.GetString("base-url"); err != nil {
		return nil, err
	}
	if cfg.OutDir, err = flags.GetString("out-dir"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.Organization, err = flags.GetString("org"); err != nil {
		return nil, err
	}
	if cfg.Abbreviation, err = flags.GetString("org-abbr"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("report"); err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	// --no-inline wins over the config file.
	noInline, err := flags.GetBool("no-inline")
	if err != nil {
		return nil, err
	}
	if noInline {
		cfg.InlineConfirm = false
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Inputs = args

	return cfg, nil
}

// applyConfigFile loads the config file, if any, into cfg.
// An explicitly given file must exist; otherwise a missing file is fine.
func applyConfigFile(cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.ApplyFile(file)
	return nil
}

// runAnnotate annotates every input and writes the report.
func runAnnotate(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) error {
	inputs := make([]pipeline.Input, 0, len(cfg.Inputs))
	for _, path := range cfg.Inputs {
		location, err := pipeline.ResolveLocation(cfg.BaseURL, path)
		if err != nil {
			return err
		}
		inputs = append(inputs, pipeline.Input{Path: path, Location: location})
	}

	logger.Info("starting annotation",
		"inputs", len(inputs),
		"baseURL", cfg.BaseURL,
		"outDir", cfg.OutDir,
		"batchSize", cfg.BatchSize,
	)

	message := annotator.NewMessage(cfg.Organization, cfg.Abbreviation)
	newAnnotator := func() *annotator.Annotator {
		// Nothing is clicked during a batch run, so the confirmer is never asked.
		return annotator.New(annotator.DeclineAll,
			annotator.WithLogger(logger),
			annotator.WithMessage(message),
			annotator.WithInlineConfirm(cfg.InlineConfirm),
		)
	}

	var outMu sync.Mutex
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			p := pipeline.New(pipeline.WithLogger(logger))
			p.AddSteps(
				pipeline.NewLoadStep(stdin),
				pipeline.NewAnnotateStep(newAnnotator, pipeline.WithAnnotateLogger(logger)),
				pipeline.NewWriteStep(cfg.OutDir, stdout, &outMu),
			)
			return p
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	startTime := time.Now()
	pages, batchErr := bp.ProcessBatch(ctx, inputs)
	logger.Info("annotation finished", "elapsed", time.Since(startTime).Round(time.Millisecond))

	result := model.NewReport(pages)
	if err := outputReport(cfg, result, stderr); err != nil {
		return err
	}

	if batchErr != nil {
		return batchErr
	}
	if result.Summary.FailedPages > 0 {
		return fmt.Errorf("%d of %d documents could not be annotated", result.Summary.FailedPages, result.Summary.Pages)
	}
	return nil
}

// outputReport writes the report in the requested format to the report
// file, or to fallback when no file is set.
func outputReport(cfg *config.Config, result *model.Report, fallback io.Writer) (err error) {
	output := fallback
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}

		f, openErr := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if openErr != nil {
			return fmt.Errorf("failed to create report file: %w", openErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err = w.Write(result)
	return err
}
