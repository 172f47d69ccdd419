// Package scripts provides the dialogue script libraries selected by play
// mode and level, the hint lines and the completion dialogues.
package scripts

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/parabola-world/internal/content"
	"github.com/vovakirdan/parabola-world/internal/dialogue"
	"github.com/vovakirdan/parabola-world/internal/hint"
)

//go:embed defaults/scripts.yaml
var defaultScriptsYAML []byte

type yamlFile struct {
	Completion map[string]yamlRoles          `yaml:"completion"`
	Modes      map[string]map[int][]yamlNode `yaml:"modes"`
	Hints      yamlHints                     `yaml:"hints"`
}

type yamlRoles struct {
	RoleA string `yaml:"role_a"`
	RoleB string `yaml:"role_b"`
}

type yamlNode struct {
	ID      string `yaml:"id"`
	Text    string `yaml:"text"`
	Speaker string `yaml:"speaker"`
	Emotion string `yaml:"emotion"`
	Next    string `yaml:"next"`
	Action  string `yaml:"action"`
}

type yamlHints struct {
	Speaker        string         `yaml:"speaker"`
	Hesitation     map[int]string `yaml:"hesitation"`
	Default        string         `yaml:"default"`
	ZeroA          string         `yaml:"zero_a"`
	WrongDirection string         `yaml:"wrong_direction"`
	TooSteep       string         `yaml:"too_steep"`
	AlmostThere    string         `yaml:"almost_there"`
}

// Roles names the speakers of a completion dialogue.
type Roles struct {
	A, B dialogue.Speaker
}

// Library holds every script of the game.
type Library struct {
	scripts    map[string]map[int]*dialogue.Script
	completion map[string]Roles
	hints      hint.Library

	// fallback is started for levels without a script of their own.
	fallback *dialogue.Script
}

// Parse decodes a YAML script file. Unknown speakers, emotions and action
// tokens are errors, as are links to missing nodes.
func Parse(data []byte) (*Library, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scripts: yaml unmarshal: %w", err)
	}

	l := &Library{
		scripts:    make(map[string]map[int]*dialogue.Script, len(f.Modes)),
		completion: make(map[string]Roles, len(f.Completion)),
	}

	for mode, byLevel := range f.Modes {
		l.scripts[mode] = make(map[int]*dialogue.Script, len(byLevel))
		for level, ynodes := range byLevel {
			s, err := buildScript(ynodes)
			if err != nil {
				return nil, fmt.Errorf("scripts: %s level %d: %w", mode, level, err)
			}
			l.scripts[mode][level] = s
		}
	}

	for mode, r := range f.Completion {
		a, okA := dialogue.ParseSpeaker(r.RoleA)
		b, okB := dialogue.ParseSpeaker(r.RoleB)
		if !okA || !okB {
			return nil, fmt.Errorf("scripts: completion %s: unknown speaker", mode)
		}
		l.completion[mode] = Roles{A: a, B: b}
	}

	hs := dialogue.SpeakerDeer
	if f.Hints.Speaker != "" {
		sp, ok := dialogue.ParseSpeaker(f.Hints.Speaker)
		if !ok {
			return nil, fmt.Errorf("scripts: hints: unknown speaker %q", f.Hints.Speaker)
		}
		hs = sp
	}
	l.hints = hint.Library{
		Speaker:        hs,
		Hesitation:     f.Hints.Hesitation,
		Default:        f.Hints.Default,
		ZeroA:          f.Hints.ZeroA,
		WrongDirection: f.Hints.WrongDirection,
		TooSteep:       f.Hints.TooSteep,
		AlmostThere:    f.Hints.AlmostThere,
	}
	return l, nil
}

func buildScript(ynodes []yamlNode) (*dialogue.Script, error) {
	nodes := make([]dialogue.Node, 0, len(ynodes))
	for _, yn := range ynodes {
		sp, ok := dialogue.ParseSpeaker(yn.Speaker)
		if !ok {
			return nil, fmt.Errorf("node %q: unknown speaker %q", yn.ID, yn.Speaker)
		}
		em, ok := dialogue.ParseEmotion(yn.Emotion)
		if !ok {
			return nil, fmt.Errorf("node %q: unknown emotion %q", yn.ID, yn.Emotion)
		}
		act, err := dialogue.ParseAction(yn.Action)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", yn.ID, err)
		}
		nodes = append(nodes, dialogue.Node{
			ID:      yn.ID,
			Text:    yn.Text,
			Speaker: sp,
			Emotion: em,
			Next:    yn.Next,
			Action:  act,
		})
	}

	s, err := dialogue.NewScript(nodes...)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Default returns the embedded library, or a minimal builtin one if the
// embedded file is broken.
func Default() *Library {
	l, err := Parse(defaultScriptsYAML)
	if err != nil {
		return Builtin()
	}
	return l
}

// Builtin returns a library that only hands over the controls.
func Builtin() *Library {
	handover := dialogue.MustScript(dialogue.Node{
		ID:      "controls",
		Text:    "Controls online.",
		Speaker: dialogue.SpeakerSystem,
		Action:  dialogue.EnableControls{},
	})
	return &Library{
		scripts:    map[string]map[int]*dialogue.Script{},
		completion: map[string]Roles{},
		hints: hint.Library{
			Speaker: dialogue.SpeakerSystem,
			Default: "Try moving one of the controls.",
			ZeroA:   "a must not be zero.",
		},
		fallback: handover,
	}
}

// Load reads a script file, falling back to the embedded library when path
// is empty.
func Load(path string) (*Library, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripts: cannot read %s: %w", path, err)
	}
	return Parse(data)
}

// Script returns the intro script of level in mode.
func (l *Library) Script(mode string, level int) (*dialogue.Script, bool) {
	if s, ok := l.scripts[mode][level]; ok {
		return s, true
	}
	if l.fallback != nil {
		return l.fallback, true
	}
	return nil, false
}

// Modes returns the modes that have scripts, sorted.
func (l *Library) Modes() []string {
	out := make([]string, 0, len(l.scripts))
	for m := range l.scripts {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Hints returns the hint lines.
func (l *Library) Hints() hint.Library {
	return l.hints
}

// Completion builds the dialogue played when a level completes. It returns
// nil when there are no lines.
func (l *Library) Completion(mode string, level int, c *content.Completion) *dialogue.Script {
	if c == nil {
		return nil
	}
	roles, ok := l.completion[mode]
	if !ok {
		roles = Roles{A: dialogue.SpeakerSystem, B: dialogue.SpeakerSystem}
	}

	prefix := fmt.Sprintf("complete_%s_%d_", mode, level)
	lines := []dialogue.Node{
		{ID: prefix + "a", Text: c.RoleA, Speaker: roles.A, Emotion: dialogue.EmotionHappy},
		{ID: prefix + "b", Text: c.RoleB, Speaker: roles.B, Emotion: dialogue.EmotionSurprised},
		{ID: prefix + "player", Text: c.Player, Speaker: dialogue.SpeakerPlayer},
	}

	nodes := make([]dialogue.Node, 0, len(lines))
	for _, n := range lines {
		if n.Text == "" {
			continue
		}
		if len(nodes) > 0 {
			nodes[len(nodes)-1].Next = n.ID
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return nil
	}
	return dialogue.MustScript(nodes...)
}
