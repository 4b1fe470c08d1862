package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nao1215/linkguard/internal/annotator"
	"github.com/nao1215/linkguard/internal/dom"
	"github.com/nao1215/linkguard/internal/model"
)

// StdinPath is the input path that reads from the stdin reader.
const StdinPath = "-"

// ErrNoContent is returned when a step runs before the page was loaded.
var ErrNoContent = errors.New("page has no content: load step did not run")

// ErrPageTooLarge is returned for inputs larger than model.MaxPageSize.
// Partial documents are never annotated.
var ErrPageTooLarge = fmt.Errorf("document exceeds %d bytes", model.MaxPageSize)

// ResolveLocation returns the URL a document at path is served from:
// baseURL resolved with the slash-separated relative path. stdin and
// absolute paths are served at their base name.
func ResolveLocation(baseURL, filePath string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if filePath == StdinPath {
		return base.String(), nil
	}

	rel := filepath.ToSlash(filepath.Clean(filePath))
	if filepath.IsAbs(filePath) || strings.HasPrefix(rel, "../") {
		rel = path.Base(rel)
	}
	rel = strings.TrimPrefix(rel, "./")

	return base.ResolveReference(&url.URL{Path: rel}).String(), nil
}

// LoadStep reads the document into page.Raw.
type LoadStep struct {
	// stdin is read when the page path is "-".
	stdin io.Reader
}

// NewLoadStep creates a LoadStep. stdin may be nil when no input reads
// from standard input.
func NewLoadStep(stdin io.Reader) *LoadStep {
	return &LoadStep{stdin: stdin}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do reads the input. Inputs over model.MaxPageSize bytes fail with
// ErrPageTooLarge.
func (s *LoadStep) Do(_ context.Context, page *model.Page) error {
	var r io.Reader
	if page.Path == StdinPath {
		if s.stdin == nil {
			return errors.New("no stdin reader configured")
		}
		r = s.stdin
	} else {
		f, err := os.Open(page.Path) //nolint:gosec // Input files are chosen by the user
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", page.Path, err)
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(io.LimitReader(r, model.MaxPageSize+1))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", page.Path, err)
	}
	if len(raw) > model.MaxPageSize {
		return fmt.Errorf("%w: %s", ErrPageTooLarge, page.Path)
	}
	page.Raw = raw
	page.ComputeHash()
	return nil
}

// AnnotateStep parses the page, attaches the annotator, fires the ready
// event and renders the annotated document into page.Output.
type AnnotateStep struct {
	// newAnnotator returns the annotator for one document.
	newAnnotator func() *annotator.Annotator

	logger *slog.Logger
}

// AnnotateStepOption configures an AnnotateStep.
type AnnotateStepOption func(*AnnotateStep)

// WithAnnotateLogger sets a custom logger for the annotate step.
func WithAnnotateLogger(logger *slog.Logger) AnnotateStepOption {
	return func(s *AnnotateStep) {
		s.logger = logger
	}
}

// NewAnnotateStep creates an AnnotateStep using annotators built by factory.
func NewAnnotateStep(factory func() *annotator.Annotator, opts ...AnnotateStepOption) *AnnotateStep {
	s := &AnnotateStep{
		newAnnotator: factory,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *AnnotateStep) Name() string {
	return "annotate"
}

// Do annotates the page.
func (s *AnnotateStep) Do(_ context.Context, page *model.Page) error {
	if page.Raw == nil {
		return ErrNoContent
	}

	doc, err := dom.Load(bytes.NewReader(page.Raw), page.Location)
	if err != nil {
		return err
	}

	s.newAnnotator().Attach(doc, func(records []model.LinkRecord) {
		page.Links = records
	})
	doc.Ready()

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return err
	}
	page.Output = buf.Bytes()

	s.logger.Debug("document annotated",
		"path", page.Path,
		"location", page.Location,
		"links", len(page.Links),
		"external", len(page.ExternalLinks()),
	)
	return nil
}

// WriteStep writes page.Output to the output directory, keeping the input's
// relative path, or to a shared writer when no directory is set.
type WriteStep struct {
	// outDir is the output root. Empty means write to out.
	outDir string

	// out receives documents when outDir is empty.
	out io.Writer

	// mu serialises writes to out across concurrent pipelines.
	mu *sync.Mutex
}

// NewWriteStep creates a WriteStep. Steps created for the same batch must
// share mu so that documents written to out do not interleave.
func NewWriteStep(outDir string, out io.Writer, mu *sync.Mutex) *WriteStep {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &WriteStep{outDir: outDir, out: out, mu: mu}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do writes the annotated document.
func (s *WriteStep) Do(_ context.Context, page *model.Page) error {
	if page.Output == nil {
		return ErrNoContent
	}

	if s.outDir == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, err := s.out.Write(page.Output); err != nil {
			return fmt.Errorf("failed to write %s: %w", page.Path, err)
		}
		return nil
	}

	dest := OutputPath(s.outDir, page.Path)
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(dest, page.Output, 0644); err != nil { //nolint:gosec // HTML output is meant to be served
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	page.OutputPath = dest
	return nil
}

// OutputPath returns where the document at filePath is written under
// outDir. Relative inputs keep their path; absolute inputs, inputs outside
// the working directory and stdin keep only their base name.
func OutputPath(outDir, filePath string) string {
	if filePath == StdinPath {
		return filepath.Join(outDir, "index.html")
	}
	clean := filepath.Clean(filePath)
	if filepath.IsAbs(clean) || strings.HasPrefix(filepath.ToSlash(clean), "../") {
		clean = filepath.Base(clean)
	}
	return filepath.Join(outDir, clean)
}
