// Package session orchestrates one player's game: it owns the progression
// store, the dialogue engine, the win-condition evaluator and the hint
// advisor, interprets dialogue actions and drives the pollers from Tick.
//
// A Session is single-threaded. The front end calls Tick on its frame
// clock and forwards player input through the methods below; every call
// carries the current time so tests can drive the clock.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/parabola-world/internal/config"
	"github.com/vovakirdan/parabola-world/internal/content"
	"github.com/vovakirdan/parabola-world/internal/dialogue"
	"github.com/vovakirdan/parabola-world/internal/evaluate"
	"github.com/vovakirdan/parabola-world/internal/hint"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
	"github.com/vovakirdan/parabola-world/internal/registry"
	"github.com/vovakirdan/parabola-world/internal/scripts"
)

// EventKind classifies session events.
type EventKind int

const (
	EventLevelLoaded EventKind = iota
	EventSolved
	EventHint
	EventQuizWrong
	EventGameComplete
)

func (k EventKind) String() string {
	switch k {
	case EventLevelLoaded:
		return "level_loaded"
	case EventSolved:
		return "solved"
	case EventHint:
		return "hint"
	case EventQuizWrong:
		return "quiz_wrong"
	case EventGameComplete:
		return "game_complete"
	}
	return "unknown"
}

// Event is a cue for the front end (sound, flash, status line).
type Event struct {
	Kind  EventKind
	Level int
	Text  string
}

// scriptKind is the role of the script running in the engine.
type scriptKind int

const (
	scriptNone scriptKind = iota
	scriptIntro
	scriptHint
	scriptCompletion
)

// panelPurpose is why the mind palace is open.
type panelPurpose int

const (
	panelIntro panelPurpose = iota // opened by a dialogue node, resumes it
	panelQuiz                      // completion quiz, advances the level
)

// Session is one player's game.
type Session struct {
	store     *progression.Store
	engine    *dialogue.Engine
	evaluator *evaluate.Evaluator
	advisor   *hint.Advisor

	mode      registry.Mode
	rules     registry.Rules
	scripts   *scripts.Library
	knowledge *content.Library
	cfg       config.GameConfig
	logger    *log.Logger
	onEvent   func(Event)

	sched scheduler
	armed Scope
	ready bool // pollers armed at least once

	running scriptKind
	lastSeq uint64 // engine seq handled by the last sync

	controls  bool
	formula   bool
	sacrifice bool
	selected  levels.Param

	panel        *content.Panel
	panelPurpose panelPurpose

	// completionPending is set by the evaluator cue and consumed once the
	// dialogue is free.
	completionPending bool

	dirty      bool
	lastAdjust time.Time

	booting bool
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithMode selects the play mode. The default is the classic rules.
func WithMode(m registry.Mode) Option {
	return func(s *Session) {
		s.mode = m
	}
}

// WithScripts overrides the script library.
func WithScripts(l *scripts.Library) Option {
	return func(s *Session) {
		s.scripts = l
	}
}

// WithContent overrides the knowledge library.
func WithContent(l *content.Library) Option {
	return func(s *Session) {
		s.knowledge = l
	}
}

// WithConfig overrides the game tuning.
func WithConfig(cfg config.GameConfig) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithEventHandler receives session events.
func WithEventHandler(fn func(Event)) Option {
	return func(s *Session) {
		s.onEvent = fn
	}
}

// defaultMode is used when no mode is given.
type defaultMode struct{}

func (defaultMode) ID() string    { return "classic" }
func (defaultMode) Title() string { return "Classic" }
func (defaultMode) Rules() registry.Rules {
	return registry.Rules{DirectionalHints: true, QuizOnCompletion: true}
}

// New creates a session over store. Call Start to begin.
func New(store *progression.Store, opts ...Option) *Session {
	s := &Session{
		store:  store,
		engine: dialogue.NewEngine(),
		mode:   defaultMode{},
		cfg:    config.DefaultGameConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scripts == nil {
		s.scripts = scripts.Default()
	}
	if s.knowledge == nil {
		s.knowledge = content.Default()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.rules = s.mode.Rules()

	s.evaluator = evaluate.New(store, s.cfg.Win, evaluate.WithCue(s.onSolved))
	return s
}

// Start begins the game at now: the name prompt on first launch, the
// active level otherwise.
func (s *Session) Start(now time.Time) {
	s.advisor = hint.New(s.store, s.engine, s.scripts.Hints(), s.cfg.Hints, now,
		hint.WithDirectionalRules(s.rules.DirectionalHints))

	if !s.store.Snapshot().BootComplete {
		s.booting = true
		s.logger.Info("awaiting player name")
		return
	}
	s.beginLevel(now)
}

// NeedsBoot reports whether the name prompt is showing.
func (s *Session) NeedsBoot() bool {
	return s.booting
}

// SubmitName finishes onboarding.
func (s *Session) SubmitName(name string, now time.Time) {
	if !s.booting {
		return
	}
	s.store.SetUserName(name)
	s.store.CompleteSystemBoot()
	s.booting = false
	s.logger.Info("boot complete", "user", s.PlayerName())
	s.beginLevel(now)
}

// Close tears down every poller and the dialogue. The session ignores all
// calls afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.sched.cancelAll()
	s.engine.Close()
	s.panel = nil
	s.closed = true
	s.logger.Debug("session closed")
}

// Scope returns the current level and script identity.
func (s *Session) Scope() Scope {
	return Scope{Level: s.store.Epoch(), Script: s.engine.Epoch()}
}

// Tick advances the cooperative clock: it dispatches dialogue actions,
// re-arms pollers whose scope changed, ends idle gestures and runs due
// pollers.
func (s *Session) Tick(now time.Time) {
	if s.closed || s.booting || s.advisor == nil {
		return
	}

	s.sync(now)

	if s.dirty && now.Sub(s.lastAdjust) >= s.cfg.CommitDelay {
		s.Commit(now)
	}

	if cur := s.Scope(); !s.ready || cur != s.armed {
		s.rearm(cur, now)
	}
	s.sched.run(s.Scope, now)

	s.sync(now)
}

// rearm drops every poller of the previous scope and arms fresh ones.
func (s *Session) rearm(scope Scope, now time.Time) {
	s.sched.cancelAll()
	s.sched.arm("win", scope, s.cfg.Win.Interval, now, s.pollWin)
	s.sched.arm("hint", scope, s.cfg.Hints.Interval, now, s.pollHint)
	s.armed = scope
	s.ready = true
}

func (s *Session) pollWin(time.Time) {
	s.evaluator.Check()
}

func (s *Session) pollHint(now time.Time) {
	if !s.cfg.HintsEnabled || !s.controls || s.panel != nil || s.completionPending {
		return
	}
	kind, ok := s.advisor.Check(now)
	if !ok {
		return
	}
	s.running = scriptHint
	node, _ := s.engine.Current()
	s.logger.Info("hint", "kind", kind, "level", s.store.Snapshot().Level,
		"struggling", s.advisor.Cognitive().IsStruggling())
	s.emit(Event{Kind: EventHint, Text: node.Text})
}

func (s *Session) onSolved(st progression.State) {
	s.completionPending = true
	s.logger.Info("level complete", "level", st.Level, "attempts", st.Attempts,
		"a", st.A, "h", st.H, "k", st.K)
	s.emit(Event{Kind: EventSolved})
}

func (s *Session) emit(e Event) {
	e.Level = s.store.Snapshot().Level
	if s.onEvent != nil {
		s.onEvent(e)
	}
}
