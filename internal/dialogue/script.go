package dialogue

import (
	"errors"
	"fmt"
)

// Script is a set of nodes addressed by id. Nodes link through Next, which
// in authored content forms a chain or a short branch.
type Script struct {
	nodes map[string]Node
	order []string
}

// NewScript builds a script. The first node is the default start.
func NewScript(nodes ...Node) (*Script, error) {
	if len(nodes) == 0 {
		return nil, errors.New("dialogue: script has no nodes")
	}

	s := &Script{
		nodes: make(map[string]Node, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}
	for i, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("dialogue: node %d has no id", i)
		}
		if _, dup := s.nodes[n.ID]; dup {
			return nil, fmt.Errorf("dialogue: duplicate node id %q", n.ID)
		}
		s.nodes[n.ID] = n
		s.order = append(s.order, n.ID)
	}
	return s, nil
}

// MustScript is NewScript for hardcoded scripts. It panics on error.
func MustScript(nodes ...Node) *Script {
	s, err := NewScript(nodes...)
	if err != nil {
		panic(err)
	}
	return s
}

// OneShot builds a throwaway single-node script.
func OneShot(id, text string, speaker Speaker, emotion Emotion) *Script {
	return MustScript(Node{ID: id, Text: text, Speaker: speaker, Emotion: emotion})
}

// First returns the id of the default start node.
func (s *Script) First() string {
	return s.order[0]
}

// Node looks up a node by id.
func (s *Script) Node(id string) (Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (s *Script) Len() int {
	return len(s.order)
}

// Nodes returns the nodes in authoring order.
func (s *Script) Nodes() []Node {
	out := make([]Node, len(s.order))
	for i, id := range s.order {
		out[i] = s.nodes[id]
	}
	return out
}

// Validate reports links to ids that are not in the script. The engine does
// not check links at runtime; loaders call this to catch authoring errors.
func (s *Script) Validate() error {
	for _, id := range s.order {
		n := s.nodes[id]
		if n.Next == "" {
			continue
		}
		if _, ok := s.nodes[n.Next]; !ok {
			return fmt.Errorf("dialogue: node %q links to missing node %q", n.ID, n.Next)
		}
	}
	return nil
}
