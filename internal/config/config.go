// Package config provides YAML-based game tuning for the puzzle: win
// tolerances, hint timings and control ranges, plus assist presets.
package config

import (
	"math"
	"time"

	"github.com/vovakirdan/parabola-world/internal/evaluate"
	"github.com/vovakirdan/parabola-world/internal/hint"
	"github.com/vovakirdan/parabola-world/internal/levels"
)

// GameConfig contains all tuning for one play session.
type GameConfig struct {
	// CommitDelay is the quiet period after the last adjustment that ends a
	// gesture and counts one attempt.
	CommitDelay  time.Duration   `yaml:"commit_delay"`
	HintsEnabled bool            `yaml:"hints_enabled"`
	Win          evaluate.Config `yaml:"win"`
	Hints        hint.Config     `yaml:"hints"`
	Controls     ControlsConfig  `yaml:"controls"`
}

// ControlsConfig defines the adjustable range of every coefficient.
type ControlsConfig struct {
	A Range `yaml:"a"`
	H Range `yaml:"h"`
	K Range `yaml:"k"`
	// SacrificeA replaces A once sacrifice mode is on.
	SacrificeA Range `yaml:"sacrifice_a"`
}

// Range is a slider: bounds, a fine step and a coarse step.
type Range struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Step   float64 `yaml:"step"`
	Coarse float64 `yaml:"coarse"`
}

// For returns the range of p, honouring sacrifice mode for a.
func (c ControlsConfig) For(p levels.Param, sacrifice bool) Range {
	switch p {
	case levels.ParamA:
		if sacrifice {
			return c.SacrificeA
		}
		return c.A
	case levels.ParamH:
		return c.H
	case levels.ParamK:
		return c.K
	}
	return Range{}
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	return clampF(v, r.Min, r.Max)
}

// Nudge moves v by n steps (coarse steps when coarse is set), snaps to the
// step grid and clamps the result.
func (r Range) Nudge(v float64, n int, coarse bool) float64 {
	step := r.Step
	if coarse && r.Coarse > 0 {
		step = r.Coarse
	}
	if step <= 0 {
		return r.Clamp(v)
	}
	next := v + float64(n)*step
	// Snap to the fine grid so repeated float steps land on exact values.
	if r.Step > 0 {
		next = math.Round(next/r.Step) * r.Step
	}
	return r.Clamp(next)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
