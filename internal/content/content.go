// Package content provides the per-level knowledge entries shown in the mind
// palace: concept text, an optional quiz and the completion lines.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/knowledge.yaml
var defaultKnowledgeYAML []byte

// Quiz is a multiple-choice question.
type Quiz struct {
	Question      string         `yaml:"question"`
	Options       []string       `yaml:"options"`
	CorrectIndex  int            `yaml:"correct_index"`
	Explanation   string         `yaml:"explanation,omitempty"`
	Hint          string         `yaml:"hint,omitempty"`
	WrongFeedback map[int]string `yaml:"wrong_feedback,omitempty"`
}

// Completion holds the lines played when a level completes.
type Completion struct {
	RoleA  string `yaml:"role_a"`
	RoleB  string `yaml:"role_b"`
	Player string `yaml:"player,omitempty"`
}

// Entry is the knowledge for one level.
type Entry struct {
	Title      string      `yaml:"title"`
	Concept    string      `yaml:"concept"`
	Body       string      `yaml:"body"`
	Quiz       *Quiz       `yaml:"quiz,omitempty"`
	Completion *Completion `yaml:"completion,omitempty"`
}

type yamlFile struct {
	FallbackFeedback string        `yaml:"fallback_feedback"`
	Entries          map[int]Entry `yaml:"entries"`
}

// Library maps level indices to entries.
type Library struct {
	entries  map[int]Entry
	fallback string
}

// Parse decodes and validates a YAML knowledge file.
func Parse(data []byte) (*Library, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("content: yaml unmarshal: %w", err)
	}
	for level, e := range f.Entries {
		if e.Quiz == nil {
			continue
		}
		if len(e.Quiz.Options) == 0 {
			return nil, fmt.Errorf("content: level %d: quiz has no options", level)
		}
		if e.Quiz.CorrectIndex < 0 || e.Quiz.CorrectIndex >= len(e.Quiz.Options) {
			return nil, fmt.Errorf("content: level %d: correct_index %d out of range", level, e.Quiz.CorrectIndex)
		}
	}
	if f.Entries == nil {
		f.Entries = make(map[int]Entry)
	}
	return &Library{entries: f.Entries, fallback: f.FallbackFeedback}, nil
}

// Default returns the embedded library. It is empty if the embedded file is
// broken; missing entries render nothing.
func Default() *Library {
	l, err := Parse(defaultKnowledgeYAML)
	if err != nil {
		return &Library{entries: make(map[int]Entry)}
	}
	return l
}

// Load reads a knowledge file, falling back to the embedded library when
// path is empty.
func Load(path string) (*Library, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: cannot read %s: %w", path, err)
	}
	return Parse(data)
}

// Entry returns the entry of level.
func (l *Library) Entry(level int) (Entry, bool) {
	e, ok := l.entries[level]
	return e, ok
}

// Levels returns the levels that have an entry, ascending.
func (l *Library) Levels() []int {
	out := make([]int, 0, len(l.entries))
	for k := range l.entries {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Answer is the outcome of one quiz answer.
type Answer struct {
	Correct  bool
	Feedback string // explanation when correct, error feedback otherwise
}

// Check grades an answer. Out-of-range indices are wrong answers.
func (q *Quiz) Check(idx int, fallback string) Answer {
	if idx == q.CorrectIndex {
		return Answer{Correct: true, Feedback: q.Explanation}
	}
	if fb, ok := q.WrongFeedback[idx]; ok && fb != "" {
		return Answer{Feedback: fb}
	}
	return Answer{Feedback: fallback}
}

// Fallback returns the feedback for wrong answers without specific feedback.
func (l *Library) Fallback() string {
	return l.fallback
}
