// Package evaluate decides whether the player's coefficients satisfy the
// active level and fires completion exactly once per level instance.
package evaluate

import (
	"math"
	"time"

	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
)

// Config holds the win-check tuning.
type Config struct {
	Interval           time.Duration `yaml:"interval"`            // polling cadence
	ToleranceA         float64       `yaml:"tolerance_a"`         // curvature, absolute
	ToleranceShift     float64       `yaml:"tolerance_shift"`     // h and k, canvas units
	SacrificeTolerance float64       `yaml:"sacrifice_tolerance"` // story-mode finale, on a alone
	Inclusive          bool          `yaml:"inclusive"`           // |d| <= tol instead of |d| < tol
}

// DefaultConfig returns the default win-check tuning.
func DefaultConfig() Config {
	return Config{
		Interval:           100 * time.Millisecond,
		ToleranceA:         0.001,
		ToleranceShift:     30,
		SacrificeTolerance: 0.5,
		Inclusive:          true,
	}
}

// Tolerance returns the tolerance used for p.
func (c Config) Tolerance(p levels.Param) float64 {
	if p == levels.ParamA {
		return c.ToleranceA
	}
	return c.ToleranceShift
}

func (c Config) within(delta, tol float64) bool {
	if c.Inclusive {
		return delta <= tol
	}
	return delta < tol
}

// Axis is the check of one coefficient against its target.
type Axis struct {
	Param   levels.Param
	Defined bool    // false when the level does not constrain this axis
	Delta   float64 // absolute difference, zero when undefined
	Within  bool    // true for undefined axes
}

// Verdict is the result of one evaluation.
type Verdict struct {
	Solved    bool
	Sacrifice bool // the story-mode finale override decided the verdict
	Axes      [3]Axis
	// Score is the sum of per-axis deltas in units of their tolerance.
	Score float64
}

// Evaluate checks a state against the level it was loaded from. A level is
// solved when every defined target is within tolerance; undefined targets
// never block completion.
func Evaluate(st progression.State, lvl levels.Config, c Config) Verdict {
	var v Verdict

	if st.StoryMode && lvl.Sacrifice.Defined {
		d := math.Abs(st.A - lvl.Sacrifice.Value)
		v.Sacrifice = true
		v.Solved = c.within(d, c.SacrificeTolerance)
		v.Axes[0] = Axis{Param: levels.ParamA, Defined: true, Delta: d, Within: v.Solved}
		v.Axes[1] = Axis{Param: levels.ParamH, Within: true}
		v.Axes[2] = Axis{Param: levels.ParamK, Within: true}
		v.Score = ratio(d, c.SacrificeTolerance)
		return v
	}

	v.Solved = true
	for i, p := range levels.Params {
		target := st.Target(p)
		if !target.Defined {
			v.Axes[i] = Axis{Param: p, Within: true}
			continue
		}
		tol := c.Tolerance(p)
		d := math.Abs(st.Param(p) - target.Value)
		ok := c.within(d, tol)
		v.Axes[i] = Axis{Param: p, Defined: true, Delta: d, Within: ok}
		v.Score += ratio(d, tol)
		if !ok {
			v.Solved = false
		}
	}
	return v
}

func ratio(d, tol float64) float64 {
	if tol <= 0 {
		if d == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return d / tol
}

// Heat is the hot/cold feedback shown on the curve.
type Heat int

const (
	HeatFar Heat = iota
	HeatClose
	HeatSolved
)

// closeScore is the tolerance-normalised score under which a curve counts
// as close.
const closeScore = 3.0

// Heat grades the verdict using the same tolerances as the win check.
func (v Verdict) Heat() Heat {
	switch {
	case v.Solved:
		return HeatSolved
	case v.Score < closeScore:
		return HeatClose
	default:
		return HeatFar
	}
}

func (h Heat) String() string {
	switch h {
	case HeatSolved:
		return "solved"
	case HeatClose:
		return "close"
	default:
		return "far"
	}
}
