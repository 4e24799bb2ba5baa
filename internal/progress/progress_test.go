package progress

import (
	"strings"
	"testing"

	"github.com/san-kum/fitcsv/internal/table"
)

func step(t *testing.T, m Model, msg interface{}) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return out
}

func TestUpdateCounts(t *testing.T) {
	m := New(3)

	m = step(t, m, FileMsg{Index: 0, Total: 3, Path: "a.fit", Status: table.StatusWritten})
	m = step(t, m, FileMsg{Index: 1, Total: 3, Path: "b.fit", Status: table.StatusSkippedInvalid})
	m = step(t, m, FileMsg{Index: 2, Total: 3, Path: "c.fit", Status: table.StatusFailed})

	if m.done != 3 || m.rows != 1 || m.skipped != 1 || m.failed != 1 {
		t.Errorf("counts = done %d rows %d skipped %d failed %d", m.done, m.rows, m.skipped, m.failed)
	}

	m = step(t, m, DoneMsg{Summary: table.Summary{Rows: 1}})
	if !m.finished {
		t.Error("expected finished after DoneMsg")
	}
	sum, err := m.Summary()
	if err != nil || sum.Rows != 1 {
		t.Errorf("summary = %+v, err = %v", sum, err)
	}
}

func TestViewShowsProgress(t *testing.T) {
	m := New(2)
	m = step(t, m, FileMsg{Path: "a.fit", Status: table.StatusWritten})

	view := m.View()
	if !strings.Contains(view, "1/2") {
		t.Errorf("view missing progress count: %q", view)
	}
}

func TestBarBounds(t *testing.T) {
	for _, frac := range []float64{-0.5, 0, 0.5, 1, 2} {
		bar := Bar(frac, 10)
		if bar == "" {
			t.Errorf("Bar(%v) empty", frac)
		}
	}
}
