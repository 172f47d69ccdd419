package hint

import "github.com/vovakirdan/parabola-world/internal/dialogue"

// Kind identifies the rule that produced a hint.
type Kind int

const (
	KindHesitation Kind = iota
	KindZeroA
	KindWrongDirection
	KindTooSteep
	KindAlmostThere
)

func (k Kind) String() string {
	switch k {
	case KindHesitation:
		return "hesitation"
	case KindZeroA:
		return "zero_a"
	case KindWrongDirection:
		return "wrong_direction"
	case KindTooSteep:
		return "too_steep"
	case KindAlmostThere:
		return "almost_there"
	}
	return "unknown"
}

// Corrective reports whether the hint answers a player error.
func (k Kind) Corrective() bool {
	return k == KindZeroA || k == KindWrongDirection || k == KindTooSteep
}

// Library holds the hint lines.
type Library struct {
	Speaker dialogue.Speaker

	// Hesitation lines by level index; Default covers missing levels.
	Hesitation map[int]string
	Default    string

	ZeroA          string
	WrongDirection string
	TooSteep       string
	AlmostThere    string
}

// Text returns the line for kind on level.
func (l Library) Text(kind Kind, level int) string {
	switch kind {
	case KindHesitation:
		if s, ok := l.Hesitation[level]; ok && s != "" {
			return s
		}
		return l.Default
	case KindZeroA:
		return l.ZeroA
	case KindWrongDirection:
		return l.WrongDirection
	case KindTooSteep:
		return l.TooSteep
	case KindAlmostThere:
		return l.AlmostThere
	}
	return l.Default
}
