// Package levels defines the puzzle level table: the initial vertex-form
// coefficients of every level, the targets the player has to match and the
// coefficients that stay fixed while the level is active.
package levels

import "strings"

// Param names one coefficient of the vertex form y = a(x-h)^2 + k.
type Param string

const (
	ParamA Param = "a" // curvature
	ParamH Param = "h" // horizontal shift
	ParamK Param = "k" // vertical shift
)

// Params lists every coefficient in display order.
var Params = []Param{ParamA, ParamH, ParamK}

// ParseParam converts a name such as "a" into a Param.
func ParseParam(s string) (Param, bool) {
	switch Param(strings.ToLower(strings.TrimSpace(s))) {
	case ParamA:
		return ParamA, true
	case ParamH:
		return ParamH, true
	case ParamK:
		return ParamK, true
	}
	return "", false
}

func (p Param) bit() ParamSet {
	switch p {
	case ParamA:
		return 1 << 0
	case ParamH:
		return 1 << 1
	case ParamK:
		return 1 << 2
	}
	return 0
}

// ParamSet is a small set of coefficients.
type ParamSet uint8

// NewParamSet builds a set from the given params.
func NewParamSet(ps ...Param) ParamSet {
	var s ParamSet
	for _, p := range ps {
		s |= p.bit()
	}
	return s
}

// Has reports whether p is in the set.
func (s ParamSet) Has(p Param) bool {
	b := p.bit()
	return b != 0 && s&b != 0
}

// List returns the members in display order.
func (s ParamSet) List() []Param {
	var out []Param
	for _, p := range Params {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Complement returns the params that are not in the set.
func (s ParamSet) Complement() []Param {
	var out []Param
	for _, p := range Params {
		if !s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s ParamSet) String() string {
	names := make([]string, 0, 3)
	for _, p := range s.List() {
		names = append(names, string(p))
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Target is an optional per-level goal for one coefficient. The zero value is
// an undefined target, which never blocks completion.
type Target struct {
	Value   float64
	Defined bool
}

// At returns a defined target.
func At(v float64) Target {
	return Target{Value: v, Defined: true}
}

// Config is the immutable definition of one level.
type Config struct {
	Name string

	// Initial coefficients, reloaded on every level (re)load.
	A, H, K float64

	TargetA Target
	TargetH Target
	TargetK Target

	// Locked coefficients are not player-editable for this level.
	Locked ParamSet

	// Sacrifice is the scripted curvature of the story-mode finale. When
	// defined, the story-mode win check uses it instead of the targets.
	Sacrifice Target
}

// Initial returns the configured starting value of p.
func (c Config) Initial(p Param) float64 {
	switch p {
	case ParamA:
		return c.A
	case ParamH:
		return c.H
	case ParamK:
		return c.K
	}
	return 0
}

// Target returns the target of p for this level.
func (c Config) Target(p Param) Target {
	switch p {
	case ParamA:
		return c.TargetA
	case ParamH:
		return c.TargetH
	case ParamK:
		return c.TargetK
	}
	return Target{}
}

// HasTargets reports whether the level constrains any coefficient.
func (c Config) HasTargets() bool {
	return c.TargetA.Defined || c.TargetH.Defined || c.TargetK.Defined
}

// Editable returns the coefficients the player may change.
func (c Config) Editable() []Param {
	return c.Locked.Complement()
}
