package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// yamlFile is the on-disk shape of a level table.
type yamlFile struct {
	Levels []yamlLevel `yaml:"levels"`
}

type yamlLevel struct {
	Name      string     `yaml:"name"`
	A         float64    `yaml:"a"`
	H         float64    `yaml:"h"`
	K         float64    `yaml:"k"`
	Target    yamlTarget `yaml:"target"`
	Locked    []string   `yaml:"locked"`
	Sacrifice *float64   `yaml:"sacrifice,omitempty"`
}

type yamlTarget struct {
	A *float64 `yaml:"a,omitempty"`
	H *float64 `yaml:"h,omitempty"`
	K *float64 `yaml:"k,omitempty"`
}

func optional(v *float64) Target {
	if v == nil {
		return Target{}
	}
	return At(*v)
}

// Parse decodes and validates a YAML level table.
func Parse(data []byte) (*Table, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, fmt.Errorf("levels: table has no levels")
	}

	cfgs := make([]Config, 0, len(f.Levels))
	for i, yl := range f.Levels {
		var locked ParamSet
		for _, name := range yl.Locked {
			p, ok := ParseParam(name)
			if !ok {
				return nil, fmt.Errorf("levels: level %d: unknown param %q", i, name)
			}
			locked |= p.bit()
		}

		name := yl.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i)
		}

		cfgs = append(cfgs, Config{
			Name:      name,
			A:         yl.A,
			H:         yl.H,
			K:         yl.K,
			TargetA:   optional(yl.Target.A),
			TargetH:   optional(yl.Target.H),
			TargetK:   optional(yl.Target.K),
			Locked:    locked,
			Sacrifice: optional(yl.Sacrifice),
		})
	}
	return NewTable(cfgs...), nil
}

// Default returns the embedded level table.
func Default() *Table {
	t, err := Parse(defaultLevelsYAML)
	if err != nil {
		return Builtin() // Fallback to hardcoded if embed fails
	}
	return t
}

// Builtin returns the hardcoded four-level campaign.
func Builtin() *Table {
	return NewTable(
		Config{Name: "The Origin", A: 0, H: 400, K: 300,
			TargetA: At(0.005), Locked: NewParamSet(ParamH, ParamK)},
		Config{Name: "The Elevator", A: 0.003, H: 400, K: 0,
			TargetA: At(0.003), TargetK: At(450), Locked: NewParamSet(ParamH, ParamA)},
		Config{Name: "The Drift", A: 0.003, H: 0, K: 300,
			TargetA: At(0.003), TargetH: At(600), Locked: NewParamSet(ParamK, ParamA)},
		Config{Name: "The Architect", A: -0.001, H: 400, K: 450,
			TargetA: At(0.004), Sacrifice: At(10)},
	)
}

// Load loads the level table.
// Search order: customPath -> ~/.parabola/configs/levels.yaml -> ./configs/levels.yaml -> embedded default
func Load(customPath string) (*Table, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read levels %s: %w", customPath, err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse levels %s: %w", customPath, err)
		}
		return t, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, ".parabola", "configs", "levels.yaml")); err == nil {
			if t, err := Parse(data); err == nil {
				return t, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/levels.yaml"); err == nil {
		if t, err := Parse(data); err == nil {
			return t, nil
		}
	}

	return Default(), nil
}
