// Package progress renders a live terminal view of a running batch
// extraction.
package progress

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fitcsv/internal/table"
)

// FileMsg reports one processed file into the view.
type FileMsg table.Event

// DoneMsg ends the view when the batch finishes.
type DoneMsg struct {
	Summary table.Summary
	Err     error
}

// Model is the bubbletea model for batch progress.
type Model struct {
	total    int
	done     int
	rows     int
	skipped  int
	failed   int
	current  string
	recent   []string
	finished bool
	summary  table.Summary
	err      error
}

// New returns a progress model for a batch of the given size.
func New(total int) Model {
	return Model{total: total}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case FileMsg:
		m.done++
		m.current = msg.Path
		switch msg.Status {
		case table.StatusWritten:
			m.rows++
			m.push(okStyle.Render("row") + " " + msg.Path)
		case table.StatusSkippedInvalid:
			m.skipped++
			m.push(warnStyle.Render("invalid") + " " + msg.Path)
		case table.StatusSkippedOpen:
			m.skipped++
			m.push(warnStyle.Render("unreadable") + " " + msg.Path)
		case table.StatusSkippedDrift:
			m.skipped++
			m.push(failStyle.Render("drift") + " " + msg.Path)
		case table.StatusFailed:
			m.failed++
			m.push(failStyle.Render("error") + " " + msg.Path)
		}

	case DoneMsg:
		m.finished = true
		m.summary = msg.Summary
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("fitcsv extract"))
	b.WriteString("\n\n")

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	b.WriteString(Bar(frac, 40))
	b.WriteString(fmt.Sprintf(" %d/%d\n\n", m.done, m.total))

	b.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d\n",
		labelStyle.Render("rows"), m.rows,
		labelStyle.Render("skipped"), m.skipped,
		labelStyle.Render("failed"), m.failed))

	if m.current != "" && !m.finished {
		b.WriteString(subtleStyle.Render("processing " + m.current))
		b.WriteString("\n")
	}

	for _, line := range m.recent {
		b.WriteString("  " + line + "\n")
	}

	if m.finished {
		if m.err != nil {
			b.WriteString("\n" + failStyle.Render(m.err.Error()) + "\n")
		} else {
			b.WriteString("\n" + okStyle.Render("done") + "\n")
		}
	} else {
		b.WriteString("\n" + subtleStyle.Render("q to quit") + "\n")
	}
	return b.String()
}

// Summary returns the batch summary once finished.
func (m Model) Summary() (table.Summary, error) {
	return m.summary, m.err
}

const recentLines = 5

func (m *Model) push(line string) {
	m.recent = append(m.recent, line)
	if len(m.recent) > recentLines {
		m.recent = m.recent[len(m.recent)-recentLines:]
	}
}
