// Package hint implements the advisor that watches for a stalled or erring
// player and pushes one-shot dialogue hints.
package hint

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/parabola-world/internal/dialogue"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
)

// Advisor pushes hints into a dialogue engine. It is driven by Check on the
// configured interval and never acts while the engine is open.
type Advisor struct {
	store  *progression.Store
	engine *dialogue.Engine
	lib    Library
	cfg    Config

	cog CognitiveState

	lastHint time.Time
	hinted   bool

	// directional enables the attempt-count rules.
	directional     bool
	checkedAttempts int

	newID func() string
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithDirectionalRules enables the every-Nth-attempt sign and magnitude checks.
func WithDirectionalRules(enabled bool) Option {
	return func(a *Advisor) {
		a.directional = enabled
	}
}

// WithIDSource overrides the hint script id generator.
func WithIDSource(fn func() string) Option {
	return func(a *Advisor) {
		a.newID = fn
	}
}

// New creates an advisor whose interaction clock starts at now.
func New(store *progression.Store, engine *dialogue.Engine, lib Library, cfg Config, now time.Time, opts ...Option) *Advisor {
	a := &Advisor{
		store:  store,
		engine: engine,
		lib:    lib,
		cfg:    cfg,
		cog:    newCognitiveState(now, cfg.StruggleThreshold),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the advisor tuning.
func (a *Advisor) Config() Config {
	return a.cfg
}

// Cognitive returns the tracked player state.
func (a *Advisor) Cognitive() *CognitiveState {
	return &a.cog
}

// Touch records a player interaction.
func (a *Advisor) Touch(now time.Time) {
	a.cog.touch(now)
}

// Reset starts tracking a new level instance. The hint cooldown clock is
// kept.
func (a *Advisor) Reset(now time.Time) {
	a.cog = newCognitiveState(now, a.cfg.StruggleThreshold)
	a.checkedAttempts = 0
}

// Check runs one poll and pushes at most one hint. It returns the kind of
// the pushed hint.
func (a *Advisor) Check(now time.Time) (Kind, bool) {
	st := a.store.Snapshot()
	if st.LevelComplete || st.GameComplete || a.engine.IsOpen() {
		return 0, false
	}

	if kind, ok := a.directionalHint(st, now); ok {
		return kind, a.push(kind, st, now)
	}

	idle := a.cog.Idle(now)
	if idle > a.cfg.Hesitation && a.cooledDown(now, a.cfg.HesitationCooldown) {
		return KindHesitation, a.push(KindHesitation, st, now)
	}
	if st.Editable(levels.ParamA) && st.A == 0 &&
		idle > a.cfg.Stuck && a.cooledDown(now, a.cfg.StuckCooldown) {
		return KindZeroA, a.push(KindZeroA, st, now)
	}
	return 0, false
}

// directionalHint evaluates the attempt rules once per qualifying attempt
// count, in priority order.
func (a *Advisor) directionalHint(st progression.State, now time.Time) (Kind, bool) {
	every := a.cfg.AttemptEvery
	if !a.directional || every <= 0 || st.Attempts == 0 || st.Attempts%every != 0 {
		return 0, false
	}
	if st.Attempts == a.checkedAttempts {
		return 0, false
	}
	a.checkedAttempts = st.Attempts

	// The rules judge curvature only; a locked a says nothing about progress.
	if !st.Editable(levels.ParamA) || !st.TargetA.Defined || st.TargetA.Value == 0 {
		return 0, false
	}
	if !a.cooledDown(now, a.cfg.StuckCooldown) {
		return 0, false
	}

	target := st.TargetA.Value
	switch {
	case st.A*target < 0:
		return KindWrongDirection, true
	case math.Abs(st.A) > math.Abs(target)*a.cfg.SteepFactor:
		return KindTooSteep, true
	case math.Abs(st.A-target) < a.cfg.AlmostTolerance:
		return KindAlmostThere, true
	}
	return 0, false
}

func (a *Advisor) cooledDown(now time.Time, cooldown time.Duration) bool {
	return !a.hinted || now.Sub(a.lastHint) > cooldown
}

func (a *Advisor) push(kind Kind, st progression.State, now time.Time) bool {
	text := a.lib.Text(kind, st.Level)
	if text == "" {
		return false
	}

	if kind.Corrective() {
		a.cog.record(kind)
	}
	emotion := dialogue.EmotionNeutral
	if a.cog.IsStruggling() {
		emotion = dialogue.EmotionWorry
	}

	speaker := a.lib.Speaker
	if speaker == "" {
		speaker = dialogue.SpeakerDeer
	}
	a.engine.Start(dialogue.OneShot("hint-"+a.newID(), text, speaker, emotion), "")
	a.lastHint = now
	a.hinted = true
	return true
}
