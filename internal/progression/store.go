// Package progression implements the single source of truth for puzzle
// parameters and level sequencing.
//
// Out-of-range operations never fail: they are silent no-ops, or, when
// advancing past the final level, a transition into the terminal
// "game complete" state.
package progression

import "github.com/vovakirdan/parabola-world/internal/levels"

// Store owns the tunable parameters, per-level targets and level index.
// It is not safe for concurrent use; one Store belongs to one session.
type Store struct {
	table     *levels.Table
	state     State
	persister Persister
	onError   func(error)
}

// Option configures a Store.
type Option func(*Store)

// WithPersister saves the persisted fields after every change to them.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithErrorHandler receives persistence failures. They are otherwise dropped.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Store) {
		s.onError = fn
	}
}

// New creates a store positioned on level 0 of the table.
func New(table *levels.Table, opts ...Option) *Store {
	s := &Store{table: table}
	for _, opt := range opts {
		opt(s)
	}
	s.load(0)
	return s
}

// Table returns the level table the store walks through.
func (s *Store) Table() *levels.Table {
	return s.table
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	return s.state
}

// Config returns the config of the active level.
func (s *Store) Config() levels.Config {
	cfg, _ := s.table.Get(s.state.Level)
	return cfg
}

// Epoch identifies the current level instance. It changes on every load.
func (s *Store) Epoch() uint64 {
	return s.state.Epoch
}

// Restore applies a persisted blob, typically right after New. Levels that no
// longer exist in the table fall back to level 0. Transient fields are rebuilt
// from the level config.
func (s *Store) Restore(p Persisted) {
	level := p.Level
	if !s.table.Exists(level) {
		level = 0
	}
	maxLevel := p.MaxLevel
	if maxLevel > s.table.Last() {
		maxLevel = s.table.Last()
	}
	if maxLevel < level {
		maxLevel = level
	}

	s.state.MaxLevel = maxLevel
	s.state.MusicMuted = p.MusicMuted
	s.state.BootComplete = p.BootComplete
	s.state.UserName = p.UserName
	s.load(level)
}

// SetParam overwrites one coefficient. Locked params are not rejected here;
// the controls for them are simply not offered.
func (s *Store) SetParam(p levels.Param, v float64) {
	switch p {
	case levels.ParamA:
		s.state.A = v
	case levels.ParamH:
		s.state.H = v
	case levels.ParamK:
		s.state.K = v
	}
}

// IncrementAttempts counts one committed interaction.
func (s *Store) IncrementAttempts() {
	s.state.Attempts++
}

// ResetLevel reloads the active level for a retry.
func (s *Store) ResetLevel() {
	s.load(s.state.Level)
}

// CompleteLevel latches the active level as complete. Idempotent.
func (s *Store) CompleteLevel() {
	s.state.LevelComplete = true
}

// AdvanceLevel loads the next level. At the final level it sets the terminal
// game complete flag instead and leaves everything else untouched. It returns
// true when a new level was loaded.
func (s *Store) AdvanceLevel() bool {
	next := s.state.Level + 1
	if !s.table.Exists(next) {
		s.state.GameComplete = true
		return false
	}

	s.load(next)
	s.state.MaxLevel = max(s.state.MaxLevel, next)
	s.persist()
	return true
}

// JumpToLevel replays an already reached level. Indices beyond the high-water
// mark or outside the table are ignored. It returns true when accepted.
func (s *Store) JumpToLevel(idx int) bool {
	if !s.table.Exists(idx) || idx > s.state.MaxLevel {
		return false
	}
	s.load(idx)
	s.persist()
	return true
}

// ResetProgress starts a new game from level 0.
func (s *Store) ResetProgress() {
	s.state.MaxLevel = 0
	s.load(0)
	s.persist()
}

// SetStoryMode switches the story-mode rules on or off.
func (s *Store) SetStoryMode(enabled bool) {
	s.state.StoryMode = enabled
}

// ToggleMusic flips the persisted mute flag.
func (s *Store) ToggleMusic() {
	s.state.MusicMuted = !s.state.MusicMuted
	s.persist()
}

// SetUserName stores the player name used for text placeholders.
func (s *Store) SetUserName(name string) {
	s.state.UserName = name
	s.persist()
}

// CompleteSystemBoot marks onboarding as done.
func (s *Store) CompleteSystemBoot() {
	s.state.BootComplete = true
	s.persist()
}

// load rebuilds the transient fields from the config at idx.
func (s *Store) load(idx int) {
	cfg, ok := s.table.Get(idx)
	if !ok {
		return
	}

	s.state.Level = idx
	s.state.A = cfg.A
	s.state.H = cfg.H
	s.state.K = cfg.K
	// Every target is overwritten, undefined ones included, so nothing
	// leaks from the previous level.
	s.state.TargetA = cfg.TargetA
	s.state.TargetH = cfg.TargetH
	s.state.TargetK = cfg.TargetK
	s.state.Locked = cfg.Locked
	s.state.LevelComplete = false
	s.state.GameComplete = false
	s.state.Attempts = 0
	s.state.MaxLevel = max(s.state.MaxLevel, idx)
	s.state.Epoch++
}

func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveProgress(s.state.Persisted()); err != nil && s.onError != nil {
		s.onError(err)
	}
}
