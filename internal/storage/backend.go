package storage

import (
	"fmt"

	"github.com/vovakirdan/parabola-world/internal/progression"
)

// Backend names accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendGdata  = "gdata"
)

// DefaultProfile is used when no profile is given.
const DefaultProfile = "local"

// Backend stores one progress blob per profile.
type Backend interface {
	SaveProgress(profile string, p progression.Persisted) error
	LoadProgress(profile string) (progression.Persisted, bool, error)
	ResetProgress(profile string) error
	Profiles() ([]string, error)
	Close() error
}

// Recorder is implemented by backends that keep a completion history.
type Recorder interface {
	RecordCompletion(profile, mode string, level, attempts int) (int64, error)
	Completions(profile string, limit int) ([]CompletionEntry, error)
	LevelStats(profile string) (map[int]*LevelStats, error)
}

// OpenBackend opens the named backend. path is the database file for sqlite
// and the application name for gdata.
func OpenBackend(kind, path string) (Backend, error) {
	switch kind {
	case "", BackendSQLite:
		s, err := Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendGdata:
		g, err := OpenGdata(path)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", kind)
	}
}

// Profile binds a backend to one profile. It satisfies progression.Persister.
type Profile struct {
	backend Backend
	name    string
}

// ForProfile returns the view of b for the named profile.
func ForProfile(b Backend, name string) *Profile {
	if name == "" {
		name = DefaultProfile
	}
	return &Profile{backend: b, name: name}
}

// Name returns the profile key.
func (p *Profile) Name() string {
	return p.name
}

// SaveProgress implements progression.Persister.
func (p *Profile) SaveProgress(v progression.Persisted) error {
	return p.backend.SaveProgress(p.name, v)
}

// Load returns the saved blob, if any.
func (p *Profile) Load() (progression.Persisted, bool, error) {
	return p.backend.LoadProgress(p.name)
}

// Reset forgets the profile.
func (p *Profile) Reset() error {
	return p.backend.ResetProgress(p.name)
}

// RecordCompletion logs a solved level when the backend keeps a history.
func (p *Profile) RecordCompletion(mode string, level, attempts int) error {
	r, ok := p.backend.(Recorder)
	if !ok {
		return nil
	}
	_, err := r.RecordCompletion(p.name, mode, level, attempts)
	return err
}

var _ progression.Persister = (*Profile)(nil)
