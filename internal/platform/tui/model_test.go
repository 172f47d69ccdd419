package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/plot"
	"github.com/vovakirdan/parabola-world/internal/progression"
	"github.com/vovakirdan/parabola-world/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return nm, cmd
}

func TestBootNameEntry(t *testing.T) {
	m, err := NewModel(GameOptions{}, 80, 30)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	if !m.Session().NeedsBoot() {
		t.Fatal("fresh profile should start on the name prompt")
	}
	if !strings.Contains(m.View(), "Name:") {
		t.Error("boot view should show the name prompt")
	}

	m, _ = update(t, m, runes("Adaq"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Session().NeedsBoot() {
		t.Fatal("enter should finish boot")
	}
	if got := m.Session().State().UserName; got != "Ada" {
		t.Errorf("UserName = %q, want %q", got, "Ada")
	}
	if !strings.Contains(m.View(), "Level 0") {
		t.Error("play view should show the level header")
	}
}

func TestBootNameLimit(t *testing.T) {
	m, err := NewModel(GameOptions{}, 80, 30)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	m, _ = update(t, m, runes(strings.Repeat("x", maxNameLen+5)))
	if len(m.name) != maxNameLen {
		t.Errorf("name length = %d, want %d", len(m.name), maxNameLen)
	}
}

func TestQuitClosesSession(t *testing.T) {
	m, err := NewModel(GameOptions{}, 80, 30)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Session().Pollers() == 0 {
		t.Fatal("pollers should be armed after the first tick")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if m.Session().Pollers() != 0 {
		t.Errorf("Pollers() = %d after quit, want 0", m.Session().Pollers())
	}
	if m.View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestLevelMapToggle(t *testing.T) {
	m, err := NewModel(GameOptions{}, 80, 30)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, runes("m"))
	if !m.showMap {
		t.Fatal("m should open the level map")
	}
	if !strings.Contains(m.View(), "LEVEL MAP") {
		t.Error("map view should show its title")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showMap {
		t.Error("esc should close the level map")
	}
}

func TestOpenSessionRestoresProfile(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	saved := progression.Persisted{Level: 2, MaxLevel: 2, BootComplete: true, UserName: "Ada"}
	if err := store.SaveProgress("ada", saved); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	sess, err := OpenSession(GameOptions{Backend: store, Profile: "ada"}, time.Now())
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	defer sess.Close()

	if sess.NeedsBoot() {
		t.Error("restored profile should skip the name prompt")
	}
	if got := sess.State().Level; got != 2 {
		t.Errorf("Level = %d, want 2", got)
	}

	// Other profiles start fresh.
	other, err := OpenSession(GameOptions{Backend: store, Profile: "bob"}, time.Now())
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	defer other.Close()
	if !other.NeedsBoot() || other.State().Level != 0 {
		t.Error("unknown profile should start at boot on level 0")
	}
}

func TestTargetCurve(t *testing.T) {
	table := levels.Default()

	tests := []struct {
		name      string
		level     int
		story     bool
		wantA     float64
		wantH     float64
		wantK     float64
		sacrifice bool
	}{
		{"curvature only", 0, false, 0.005, 400, 300, false},
		{"lift", 1, false, 0.003, 400, 450, false},
		{"drift", 2, false, 0.003, 600, 300, false},
		{"sacrifice", 3, true, 10, 400, 450, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := progression.New(table)
			for range tt.level {
				store.AdvanceLevel()
			}
			store.SetStoryMode(tt.story)

			c, ok := targetCurve(store.Snapshot(), store.Config(), tt.sacrifice)
			if !ok {
				t.Fatal("targetCurve() ok = false, want true")
			}
			if c.A != tt.wantA || c.H != tt.wantH || c.K != tt.wantK {
				t.Errorf("targetCurve() = %+v, want a=%v h=%v k=%v", c, tt.wantA, tt.wantH, tt.wantK)
			}
		})
	}
}

func TestTargetCurveFreeLevel(t *testing.T) {
	table := levels.NewTable(levels.Config{Name: "Free", A: 0.001, H: 400, K: 300})
	store := progression.New(table)
	if _, ok := targetCurve(store.Snapshot(), store.Config(), false); ok {
		t.Error("a level without targets should have no ghost curve")
	}
}

func TestAnswerIndex(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1", 0, true},
		{"4", 3, true},
		{"0", 0, false},
		{"a", 0, false},
		{"12", 0, false},
	}
	for _, tt := range tests {
		got, ok := answerIndex(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("answerIndex(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRenderCanvasKeepsRunes(t *testing.T) {
	c := plot.NewCanvas(5, 2)
	c.DrawText(0, 0, "ab", plot.ColorTarget)
	c.DrawText(2, 0, "cde", plot.ColorSolved)
	c.DrawText(0, 1, "xy", plot.ColorDefault)

	out := RenderCanvas(c)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderCanvas() has %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cde") {
		t.Errorf("line 0 = %q, want runes ab and cde", lines[0])
	}
	if !strings.Contains(lines[1], "xy") {
		t.Errorf("line 1 = %q, want runes xy", lines[1])
	}
}
