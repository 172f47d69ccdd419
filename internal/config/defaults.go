package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/parabola-world/internal/evaluate"
	"github.com/vovakirdan/parabola-world/internal/hint"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		CommitDelay:  400 * time.Millisecond,
		HintsEnabled: true,
		Win:          evaluate.DefaultConfig(),
		Hints:        hint.DefaultConfig(),
		Controls: ControlsConfig{
			A:          Range{Min: -0.02, Max: 0.02, Step: 0.0005, Coarse: 0.0025},
			H:          Range{Min: 0, Max: 800, Step: 10, Coarse: 50},
			K:          Range{Min: 0, Max: 600, Step: 10, Coarse: 50},
			SacrificeA: Range{Min: -12, Max: 12, Step: 0.25, Coarse: 1},
		},
	}
}
