package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/linkguard/internal/model"
	"golang.org/x/sync/errgroup"
)

// Input identifies one document to process.
type Input struct {
	// Path is the file path, or "-" for stdin.
	Path string

	// Location is the absolute URL the document is served from.
	Location string
}

// BatchProcessor processes several documents concurrently.
// Documents share no state, so each one gets a fresh pipeline.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each document.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of documents processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent documents.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch runs the pipeline for every input and returns one page per
// input, in input order. A failing document is recorded in its page and
// does not stop the others. The error is non-nil only when ctx ends.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, inputs []Input) ([]*model.Page, error) {
	bp.logger.Debug("starting batch processing",
		"total_documents", len(inputs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index.
	pages := make([]*model.Page, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, in := range inputs {
		page := model.NewPage(in.Path, in.Location)
		pages[i] = page

		g.Go(func() error {
			select {
			case <-gctx.Done():
				page.Cancelled = true
				return gctx.Err()
			default:
			}

			if err := bp.pipelineFactory().Execute(gctx, page); err != nil {
				bp.logger.Warn("document failed",
					"path", in.Path,
					"error", err,
				)
				// The error is recorded in the page; other documents continue.
				return nil
			}

			bp.logger.Debug("document completed",
				"path", in.Path,
				"links", len(page.Links),
			)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		// Pipelines record cancellation in their page without failing the group.
		err = ctx.Err()
	}

	bp.logger.Debug("batch processing complete",
		"total_documents", len(inputs),
		"elapsed", time.Since(startTime),
	)

	return pages, err
}
