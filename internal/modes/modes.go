// Package modes registers the built-in play modes.
package modes

import "github.com/vovakirdan/parabola-world/internal/registry"

// Story is the narrative campaign: mind palace panels during the intro and
// the sacrifice finale.
type Story struct{}

func (Story) ID() string    { return "story" }
func (Story) Title() string { return "Story" }
func (Story) Rules() registry.Rules {
	return registry.Rules{Story: true}
}

// Classic is the puzzle campaign: directional hints and a quiz after each
// level.
type Classic struct{}

func (Classic) ID() string    { return "classic" }
func (Classic) Title() string { return "Classic" }
func (Classic) Rules() registry.Rules {
	return registry.Rules{DirectionalHints: true, QuizOnCompletion: true}
}

func init() {
	registry.Register("story", func() registry.Mode { return Story{} })
	registry.Register("classic", func() registry.Mode { return Classic{} })
}
