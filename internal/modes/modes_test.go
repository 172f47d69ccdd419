package modes

import (
	"testing"

	"github.com/vovakirdan/parabola-world/internal/registry"
)

func TestBuiltinModesRegistered(t *testing.T) {
	tests := []struct {
		id    string
		rules registry.Rules
	}{
		{"story", registry.Rules{Story: true}},
		{"classic", registry.Rules{DirectionalHints: true, QuizOnCompletion: true}},
	}
	for _, tt := range tests {
		m, err := registry.Create(tt.id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", tt.id, err)
		}
		if m.ID() != tt.id || m.Rules() != tt.rules {
			t.Errorf("mode %q = %s %+v", tt.id, m.ID(), m.Rules())
		}
	}
}
