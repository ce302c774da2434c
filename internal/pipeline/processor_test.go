package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tonescan/tonescan/internal/engine"
	"github.com/tonescan/tonescan/internal/model"
)

// mockEngine is a configurable engine for pipeline tests.
type mockEngine struct {
	name      string
	scoreFunc func(ctx context.Context, text string) (float64, error)
	calls     atomic.Int32

	mu   sync.Mutex
	seen []string
}

func (m *mockEngine) Name() string  { return m.name }
func (m *mockEngine) Label() string { return m.name + ": 0.0 to 1.0" }
func (m *mockEngine) Scale() model.Scale {
	return model.Scale{Min: 0, Max: 1, Description: "0.0 to 1.0"}
}

func (m *mockEngine) Score(ctx context.Context, text string) (float64, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.seen = append(m.seen, text)
	m.mu.Unlock()

	if m.scoreFunc != nil {
		return m.scoreFunc(ctx, text)
	}
	return 0.5, nil
}

func (m *mockEngine) seenTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.seen))
	copy(out, m.seen)
	return out
}

// TestProcessorRun tests validation wiring, ordering, and assembly.
func TestProcessorRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("row count equals line count in input order", func(t *testing.T) {
		t.Parallel()

		local := &mockEngine{name: "local"}
		p := New(engine.NewRegistry(local))

		raw := "alpha\nbravo\ncharlie\ndelta"
		table, err := p.Run(ctx, raw, true, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if table.RowCount() != 4 {
			t.Fatalf("expected 4 rows, got %d", table.RowCount())
		}
		want := []string{"alpha", "bravo", "charlie", "delta"}
		for i, row := range table.Rows {
			if row.Text != want[i] {
				t.Errorf("row %d: expected %q, got %q", i, want[i], row.Text)
			}
			if row.Index != i+1 {
				t.Errorf("row %d: expected display index %d, got %d", i, i+1, row.Index)
			}
		}
	})

	t.Run("order is preserved under concurrency", func(t *testing.T) {
		t.Parallel()

		// Earlier lines take longer so completion order inverts input
		// order; assembly must restore it.
		slow := &mockEngine{
			name: "slow",
			scoreFunc: func(_ context.Context, text string) (float64, error) {
				if strings.HasPrefix(text, "line-0") {
					time.Sleep(50 * time.Millisecond)
				}
				return 0.5, nil
			},
		}
		p := New(engine.NewRegistry(slow), WithConcurrency(4))

		var lines []string
		for i := range 8 {
			lines = append(lines, fmt.Sprintf("line-%d", i))
		}
		table, err := p.Run(ctx, strings.Join(lines, "\n"), true, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i, row := range table.Rows {
			if row.Text != lines[i] {
				t.Errorf("row %d: expected %q, got %q", i, lines[i], row.Text)
			}
		}
	})

	t.Run("duplicate lines are not deduplicated", func(t *testing.T) {
		t.Parallel()

		p := New(engine.NewRegistry(&mockEngine{name: "local"}))
		table, err := p.Run(ctx, "same\nsame\nsame", true, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.RowCount() != 3 {
			t.Errorf("expected 3 rows, got %d", table.RowCount())
		}
	})

	t.Run("empty lines are sanitized and scored", func(t *testing.T) {
		t.Parallel()

		local := &mockEngine{name: "local"}
		p := New(engine.NewRegistry(local))

		table, err := p.Run(ctx, "a\n\nb", true, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.RowCount() != 3 {
			t.Fatalf("expected 3 rows, got %d", table.RowCount())
		}
		cell, ok := table.Rows[1].Cell("local")
		if !ok {
			t.Fatal("expected a cell for the empty line")
		}
		if cell.IsError() {
			t.Errorf("expected a valid score for the empty line, got %v", cell)
		}
	})

	t.Run("engines receive sanitized text only", func(t *testing.T) {
		t.Parallel()

		local := &mockEngine{name: "local"}
		p := New(engine.NewRegistry(local))

		_, err := p.Run(ctx, "<script>alert(1)</script>hi <b>there</b>", true, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen := local.seenTexts()
		if len(seen) != 1 || seen[0] != "hi <b>there</b>" {
			t.Errorf("expected sanitized text, engine saw %q", seen)
		}
	})

	t.Run("validation failure starts no scoring work", func(t *testing.T) {
		t.Parallel()

		local := &mockEngine{name: "local"}
		p := New(engine.NewRegistry(local))

		_, err := p.Run(ctx, "hello", false, false)
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if local.calls.Load() != 0 {
			t.Errorf("expected no engine calls, got %d", local.calls.Load())
		}
	})

	t.Run("sixty lines reject with measured count and no table", func(t *testing.T) {
		t.Parallel()

		p := New(engine.NewRegistry(&mockEngine{name: "local"}))
		table, err := p.Run(ctx, strings.Repeat("line\n", 60), true, false)
		if table != nil {
			t.Error("expected no table on rejection")
		}
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Reason != model.ReasonTooManyLines || verr.Actual != 60 {
			t.Errorf("expected too-many-lines with actual=60, got %+v", verr)
		}
	})
}

// TestProcessorRemoteEngine tests opt-in behavior and failure isolation.
func TestProcessorRemoteEngine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("opt-out means no remote column and no remote call", func(t *testing.T) {
		t.Parallel()

		remote := &mockEngine{name: "remote"}
		p := New(engine.NewRegistry(&mockEngine{name: "local"}), WithRemoteEngine(remote))

		table, err := p.Run(ctx, "hello\nworld", true, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.HasColumn("remote") {
			t.Error("expected no remote column when opted out")
		}
		if remote.calls.Load() != 0 {
			t.Errorf("expected no remote calls, got %d", remote.calls.Load())
		}
	})

	t.Run("opt-in adds the remote column after local columns", func(t *testing.T) {
		t.Parallel()

		remote := &mockEngine{name: "remote"}
		p := New(engine.NewRegistry(&mockEngine{name: "local"}), WithRemoteEngine(remote))

		table, err := p.Run(ctx, "hello", true, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names := table.ColumnNames()
		if len(names) != 2 || names[0] != "local" || names[1] != "remote" {
			t.Errorf("unexpected columns: %v", names)
		}
	})

	t.Run("opt-in without a configured remote stays local", func(t *testing.T) {
		t.Parallel()

		p := New(engine.NewRegistry(&mockEngine{name: "local"}))
		table, err := p.Run(ctx, "hello", true, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(table.Columns) != 1 {
			t.Errorf("expected only the local column, got %v", table.ColumnNames())
		}
	})

	t.Run("remote failure on one line leaves everything else intact", func(t *testing.T) {
		t.Parallel()

		remote := &mockEngine{
			name: "remote",
			scoreFunc: func(_ context.Context, text string) (float64, error) {
				if strings.Contains(text, "poison") {
					return 0, errors.New("quota exceeded")
				}
				return 0.2, nil
			},
		}
		local := &mockEngine{name: "local"}
		p := New(engine.NewRegistry(local), WithRemoteEngine(remote))

		table, err := p.Run(ctx, "fine\npoison line\nalso fine", true, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The failing line carries a failure cell for the remote engine
		// and a valid cell for the local engine.
		failed, _ := table.Rows[1].Cell("remote")
		if !failed.IsError() {
			t.Errorf("expected remote failure cell, got %v", failed)
		}
		if !strings.Contains(failed.Err, "quota exceeded") {
			t.Errorf("expected failure cause in cell, got %q", failed.Err)
		}
		localCell, _ := table.Rows[1].Cell("local")
		if localCell.IsError() {
			t.Errorf("expected local cell to survive, got %v", localCell)
		}

		// The neighboring rows are unaffected.
		for _, i := range []int{0, 2} {
			cell, _ := table.Rows[i].Cell("remote")
			if cell.IsError() {
				t.Errorf("row %d: expected valid remote cell, got %v", i, cell)
			}
		}
	})

	t.Run("every row has one cell per enabled engine", func(t *testing.T) {
		t.Parallel()

		remote := &mockEngine{
			name: "remote",
			scoreFunc: func(_ context.Context, _ string) (float64, error) {
				return 0, errors.New("always down")
			},
		}
		p := New(engine.NewRegistry(&mockEngine{name: "local"}), WithRemoteEngine(remote))

		table, err := p.Run(ctx, "a\nb", true, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, row := range table.Rows {
			if len(row.Cells) != 2 {
				t.Errorf("row %d: expected 2 cells, got %d", i, len(row.Cells))
			}
		}
	})
}

// TestProcessorScenario runs the canonical local-only scenario end to end
// with the real engine set.
func TestProcessorScenario(t *testing.T) {
	t.Parallel()

	p := NewDefault()
	table, err := p.Run(context.Background(), "I love this!\nThis is terrible and awful.", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.RowCount())
	}
	if table.HasColumn("perspective") {
		t.Error("expected no remote column")
	}

	positive, _ := table.Rows[0].Cell("vader")
	if positive.IsError() || positive.Value < 0.5 {
		t.Errorf("expected strongly positive vader score, got %v", positive)
	}
	negative, _ := table.Rows[1].Cell("vader")
	if negative.IsError() || negative.Value > -0.5 {
		t.Errorf("expected strongly negative vader score, got %v", negative)
	}
}
