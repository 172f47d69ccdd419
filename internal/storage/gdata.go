package storage

import (
	"encoding/hex"
	"fmt"
	"slices"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/parabola-world/internal/progression"
)

// DefaultAppName is the gdata application directory.
const DefaultAppName = "parabola_world"

const (
	progressObject = "progress"
	indexObject    = "profiles"
	indexProperty  = "index"
)

// GdataStore keeps progress as YAML properties in the platform data directory.
// It has no completion history.
type GdataStore struct {
	mu sync.Mutex // guards the profile index
	m  *gdata.Manager
}

// OpenGdata opens the gdata store for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata: %w", err)
	}
	return &GdataStore{m: m}, nil
}

// propKey maps a profile to a key that is safe as a file name. The mapping
// is injective, so distinct profiles never share a blob.
func propKey(profile string) string {
	return "p" + hex.EncodeToString([]byte(profile))
}

// SaveProgress writes the blob and records the profile in the index.
func (g *GdataStore) SaveProgress(profile string, p progression.Persisted) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: cannot encode progress: %w", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.m.SaveObjectProp(progressObject, propKey(profile), data); err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}

	names, err := g.profiles()
	if err != nil {
		return err
	}
	if !slices.Contains(names, profile) {
		return g.saveIndex(append(names, profile))
	}
	return nil
}

// LoadProgress reads the blob of a profile.
func (g *GdataStore) LoadProgress(profile string) (progression.Persisted, bool, error) {
	key := propKey(profile)
	if !g.m.ObjectPropExists(progressObject, key) {
		return progression.Persisted{}, false, nil
	}
	data, err := g.m.LoadObjectProp(progressObject, key)
	if err != nil {
		return progression.Persisted{}, false, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	// A reset profile is stored as an empty document.
	if len(data) == 0 {
		return progression.Persisted{}, false, nil
	}

	var p progression.Persisted
	if err := yaml.Unmarshal(data, &p); err != nil {
		return progression.Persisted{}, false, fmt.Errorf("storage: cannot decode progress: %w", err)
	}
	return p, true, nil
}

// ResetProgress blanks the blob and drops the profile from the index.
func (g *GdataStore) ResetProgress(profile string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.m.SaveObjectProp(progressObject, propKey(profile), []byte{}); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	names, err := g.profiles()
	if err != nil {
		return err
	}
	return g.saveIndex(slices.DeleteFunc(names, func(n string) bool { return n == profile }))
}

// Profiles lists the profiles in name order.
func (g *GdataStore) Profiles() ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.profiles()
}

func (g *GdataStore) profiles() ([]string, error) {
	if !g.m.ObjectPropExists(indexObject, indexProperty) {
		return nil, nil
	}
	data, err := g.m.LoadObjectProp(indexObject, indexProperty)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load profile index: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("storage: cannot decode profile index: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

func (g *GdataStore) saveIndex(names []string) error {
	slices.Sort(names)
	data, err := yaml.Marshal(names)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile index: %w", err)
	}
	if err := g.m.SaveObjectProp(indexObject, indexProperty, data); err != nil {
		return fmt.Errorf("storage: cannot save profile index: %w", err)
	}
	return nil
}

// Close is a no-op; gdata writes through.
func (g *GdataStore) Close() error {
	return nil
}

var _ Backend = (*GdataStore)(nil)
