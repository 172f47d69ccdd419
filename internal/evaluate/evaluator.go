package evaluate

import "github.com/vovakirdan/parabola-world/internal/progression"

// Evaluator is the polling win-condition process for one store.
type Evaluator struct {
	store *progression.Store
	cfg   Config
	cue   func(progression.State)
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCue registers the success cue, called once when a level completes.
func WithCue(fn func(progression.State)) Option {
	return func(e *Evaluator) {
		e.cue = fn
	}
}

// New creates an evaluator over store.
func New(store *progression.Store, cfg Config, opts ...Option) *Evaluator {
	e := &Evaluator{store: store, cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the evaluator tuning.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Verdict evaluates the store without side effects.
func (e *Evaluator) Verdict() Verdict {
	return Evaluate(e.store.Snapshot(), e.store.Config(), e.cfg)
}

// Check runs one poll. On the first satisfied poll of a level instance it
// completes the level and plays the cue; later polls only report. It returns
// the verdict and whether this poll completed the level.
func (e *Evaluator) Check() (Verdict, bool) {
	v := e.Verdict()
	if !v.Solved || e.store.Snapshot().LevelComplete {
		return v, false
	}

	e.store.CompleteLevel()
	if e.cue != nil {
		e.cue(e.store.Snapshot())
	}
	return v, true
}
