package progression

import "github.com/vovakirdan/parabola-world/internal/levels"

// State is a read-only snapshot of the progression store.
type State struct {
	// Transient fields, always rebuilt from the level config on (re)load.
	A, H, K  float64
	TargetA  levels.Target
	TargetH  levels.Target
	TargetK  levels.Target
	Locked   levels.ParamSet
	Attempts int

	LevelComplete bool // one-way latch per level instance
	GameComplete  bool // set when advancing past the last level

	Level    int
	MaxLevel int // high-water mark, never below Level

	UserName     string
	MusicMuted   bool
	BootComplete bool
	StoryMode    bool

	// Epoch changes every time a level is (re)loaded.
	Epoch uint64
}

// Param returns the current value of p.
func (s State) Param(p levels.Param) float64 {
	switch p {
	case levels.ParamA:
		return s.A
	case levels.ParamH:
		return s.H
	case levels.ParamK:
		return s.K
	}
	return 0
}

// Target returns the active level's target for p.
func (s State) Target(p levels.Param) levels.Target {
	switch p {
	case levels.ParamA:
		return s.TargetA
	case levels.ParamH:
		return s.TargetH
	case levels.ParamK:
		return s.TargetK
	}
	return levels.Target{}
}

// Editable reports whether the player may change p on the active level.
func (s State) Editable(p levels.Param) bool {
	return !s.Locked.Has(p)
}

// Persisted is the subset of the state that survives a restart.
type Persisted struct {
	Level        int    `yaml:"level"`
	MaxLevel     int    `yaml:"max_level"`
	MusicMuted   bool   `yaml:"music_muted"`
	BootComplete bool   `yaml:"boot_complete"`
	UserName     string `yaml:"user_name"`
}

// Persisted extracts the persisted fields from the snapshot.
func (s State) Persisted() Persisted {
	return Persisted{
		Level:        s.Level,
		MaxLevel:     s.MaxLevel,
		MusicMuted:   s.MusicMuted,
		BootComplete: s.BootComplete,
		UserName:     s.UserName,
	}
}

// Persister saves the persisted blob. Implemented by the storage backends.
type Persister interface {
	SaveProgress(p Persisted) error
}
