package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/parabola-world/internal/config"
	"github.com/vovakirdan/parabola-world/internal/content"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
	"github.com/vovakirdan/parabola-world/internal/registry"
	"github.com/vovakirdan/parabola-world/internal/scripts"
	"github.com/vovakirdan/parabola-world/internal/session"
	"github.com/vovakirdan/parabola-world/internal/storage"
)

// GameOptions holds everything needed to start one player's session.
type GameOptions struct {
	FPS     int
	Mode    registry.Mode
	Table   *levels.Table
	Scripts *scripts.Library
	Content *content.Library
	Config  config.GameConfig

	// Backend persists progress. Nil keeps progress in memory only.
	Backend storage.Backend
	Profile string

	Logger *log.Logger

	// OnEvent receives session events after they are recorded.
	OnEvent func(session.Event)
}

// OpenSession restores the profile's progress and starts a session.
func OpenSession(opts GameOptions, now time.Time) (*session.Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	table := opts.Table
	if table == nil {
		table = levels.Default()
	}

	var profile *storage.Profile
	storeOpts := []progression.Option{
		progression.WithErrorHandler(func(err error) {
			logger.Warn("could not save progress", "error", err)
		}),
	}
	if opts.Backend != nil {
		profile = storage.ForProfile(opts.Backend, opts.Profile)
		storeOpts = append(storeOpts, progression.WithPersister(profile))
	}

	store := progression.New(table, storeOpts...)
	if profile != nil {
		saved, ok, err := profile.Load()
		if err != nil {
			return nil, fmt.Errorf("cannot load progress for %s: %w", profile.Name(), err)
		}
		if ok {
			store.Restore(saved)
		}
	}

	sessOpts := []session.Option{session.WithLogger(logger)}
	if opts.Config != (config.GameConfig{}) {
		sessOpts = append(sessOpts, session.WithConfig(opts.Config))
	}
	if opts.Mode != nil {
		sessOpts = append(sessOpts, session.WithMode(opts.Mode))
	}
	if opts.Scripts != nil {
		sessOpts = append(sessOpts, session.WithScripts(opts.Scripts))
	}
	if opts.Content != nil {
		sessOpts = append(sessOpts, session.WithContent(opts.Content))
	}
	var handlers []func(session.Event)
	if profile != nil {
		modeID := "classic"
		if opts.Mode != nil {
			modeID = opts.Mode.ID()
		}
		handlers = append(handlers, completionRecorder(profile, store, modeID, logger))
	}
	if opts.OnEvent != nil {
		handlers = append(handlers, opts.OnEvent)
	}
	if len(handlers) > 0 {
		sessOpts = append(sessOpts, session.WithEventHandler(func(e session.Event) {
			for _, h := range handlers {
				h(e)
			}
		}))
	}

	sess := session.New(store, sessOpts...)
	sess.Start(now)
	return sess, nil
}

// completionRecorder logs every solved level into the profile's history.
func completionRecorder(profile *storage.Profile, store *progression.Store, mode string, logger *log.Logger) func(session.Event) {
	return func(e session.Event) {
		if e.Kind != session.EventSolved {
			return
		}
		if err := profile.RecordCompletion(mode, e.Level, store.Snapshot().Attempts); err != nil {
			logger.Warn("could not record completion", "level", e.Level, "error", err)
		}
	}
}
