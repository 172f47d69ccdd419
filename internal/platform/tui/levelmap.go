package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
	"github.com/vovakirdan/parabola-world/internal/storage"
)

// LevelMap lists the reached levels for replay. It keeps a pointer receiver
// so the play model can share it across updates.
type LevelMap struct {
	recorder storage.Recorder
	profile  string
	table    table.Model
	width    int
	height   int
}

// NewLevelMap creates a level map. recorder may be nil.
func NewLevelMap(recorder storage.Recorder, profile string) *LevelMap {
	lm := &LevelMap{recorder: recorder, profile: profile}
	lm.table = lm.createTable()
	return lm
}

// createTable creates a new table with appropriate columns.
func (lm *LevelMap) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 18},
		{Title: "Targets", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Best", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(lm.height-8, 4)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Resize rebuilds the table for a new terminal size.
func (lm *LevelMap) Resize(width, height int) {
	lm.width = width
	lm.height = height
	rows := lm.table.Rows()
	cursor := lm.table.Cursor()
	lm.table = lm.createTable()
	lm.table.SetRows(rows)
	lm.table.SetCursor(cursor)
}

// Load fills the table with levels 0..MaxLevel and puts the cursor on the
// active level.
func (lm *LevelMap) Load(st progression.State, t *levels.Table) {
	var stats map[int]*storage.LevelStats
	if lm.recorder != nil {
		// Best effort; the map still works without history.
		stats, _ = lm.recorder.LevelStats(lm.profile)
	}

	rows := make([]table.Row, 0, st.MaxLevel+1)
	for i := 0; i <= st.MaxLevel; i++ {
		cfg, ok := t.Get(i)
		if !ok {
			break
		}
		status := "reached"
		switch {
		case i == st.Level:
			status = "current"
		case i < st.MaxLevel:
			status = "cleared"
		}
		best := "-"
		if s, ok := stats[i]; ok {
			best = fmt.Sprintf("%d", s.BestAttempts)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i),
			cfg.Name,
			targetSummary(cfg),
			status,
			best,
		})
	}
	lm.table.SetRows(rows)
	lm.table.SetCursor(min(st.Level, len(rows)-1))
}

func targetSummary(cfg levels.Config) string {
	var parts []string
	for _, p := range levels.Params {
		if cfg.Target(p).Defined {
			parts = append(parts, string(p))
		}
	}
	if len(parts) == 0 {
		return "free"
	}
	return strings.Join(parts, ",")
}

// Cursor returns the highlighted level index.
func (lm *LevelMap) Cursor() int {
	return lm.table.Cursor()
}

// Update scrolls the table.
func (lm *LevelMap) Update(msg tea.Msg) {
	lm.table, _ = lm.table.Update(msg)
}

// View renders the map.
func (lm *LevelMap) View(helpLine string) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("LEVEL MAP", lm.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(lm.width, lipgloss.Center, tableStyle.Render(lm.table.View())))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(helpLine))
	return b.String()
}
