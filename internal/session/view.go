package session

import (
	"github.com/vovakirdan/parabola-world/internal/content"
	"github.com/vovakirdan/parabola-world/internal/dialogue"
	"github.com/vovakirdan/parabola-world/internal/evaluate"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
	"github.com/vovakirdan/parabola-world/internal/registry"
)

// State returns a snapshot of the store.
func (s *Session) State() progression.State {
	return s.store.Snapshot()
}

// Level returns the active level config.
func (s *Session) Level() levels.Config {
	return s.store.Config()
}

// Table returns the level table.
func (s *Session) Table() *levels.Table {
	return s.store.Table()
}

// Mode returns the play mode.
func (s *Session) Mode() registry.Mode {
	return s.mode
}

// Verdict evaluates the current curve without side effects.
func (s *Session) Verdict() evaluate.Verdict {
	return s.evaluator.Verdict()
}

// PlayerName returns the name used for the {player} placeholder.
func (s *Session) PlayerName() string {
	if name := s.store.Snapshot().UserName; name != "" {
		return name
	}
	return dialogue.DefaultPlayerName
}

// Line is a dialogue node ready for display.
type Line struct {
	ID       string
	Speaker  dialogue.Speaker
	Emotion  dialogue.Emotion
	Text     string
	Terminal bool
}

// Line returns the current dialogue line with placeholders filled.
func (s *Session) Line() (Line, bool) {
	n, ok := s.engine.Current()
	if !ok {
		return Line{}, false
	}
	return Line{
		ID:       n.ID,
		Speaker:  n.Speaker,
		Emotion:  n.Emotion,
		Text:     dialogue.Substitute(n.Text, s.store.Snapshot().UserName),
		Terminal: n.Terminal(),
	}, true
}

// DialogueOpen reports whether a dialogue is showing.
func (s *Session) DialogueOpen() bool {
	return s.engine.IsOpen()
}

// Panel returns the open mind palace, nil when closed.
func (s *Session) Panel() *content.Panel {
	return s.panel
}

// ControlsEnabled reports whether the player has been handed the controls.
func (s *Session) ControlsEnabled() bool {
	return s.controls
}

// FormulaVisible reports whether the vertex-form formula has been revealed.
func (s *Session) FormulaVisible() bool {
	return s.formula
}

// SacrificeMode reports whether the finale's widened controls are active.
func (s *Session) SacrificeMode() bool {
	return s.sacrifice
}

// GameComplete reports whether the ending is showing.
func (s *Session) GameComplete() bool {
	return s.store.Snapshot().GameComplete
}

// Pollers returns the number of armed pollers.
func (s *Session) Pollers() int {
	return s.sched.len()
}
