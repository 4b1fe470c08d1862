package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/linkguard/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, page *model.Page) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, page *model.Page) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, page)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if len(p.steps) != 0 {
			t.Errorf("expected 0 steps, got %d", len(p.steps))
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})
}

// TestPipelineExecute tests step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var executionOrder []string
		p := New()
		p.AddSteps(
			&mockStep{
				name: "step-1",
				doFunc: func(_ context.Context, _ *model.Page) error {
					executionOrder = append(executionOrder, "step-1")
					return nil
				},
			},
			&mockStep{
				name: "step-2",
				doFunc: func(_ context.Context, _ *model.Page) error {
					executionOrder = append(executionOrder, "step-2")
					return nil
				},
			},
		)

		page := model.NewPage("index.html", "https://example.org/index.html")
		if err := p.Execute(context.Background(), page); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 || executionOrder[0] != "step-1" || executionOrder[1] != "step-2" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if len(page.Steps) != 2 {
			t.Errorf("expected 2 recorded steps, got %v", page.Steps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.AddSteps(
			&mockStep{
				name: "failing-step",
				doFunc: func(_ context.Context, _ *model.Page) error {
					return expectedErr
				},
			},
			second,
		)

		page := model.NewPage("index.html", "https://example.org/")
		err := p.Execute(context.Background(), page)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if page.ErrorMessage != expectedErr.Error() {
			t.Errorf("expected error message %q, got %q", expectedErr.Error(), page.ErrorMessage)
		}
		if !page.Failed() {
			t.Error("expected page to be marked failed")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.AddSteps(step)

		page := model.NewPage("index.html", "https://example.org/")
		err := p.Execute(ctx, page)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if !page.Cancelled {
			t.Error("page.Cancelled should be true")
		}
	})
}
