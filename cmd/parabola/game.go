package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/parabola-world/internal/config"
	"github.com/vovakirdan/parabola-world/internal/content"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/platform/tui"
	"github.com/vovakirdan/parabola-world/internal/scripts"
	"github.com/vovakirdan/parabola-world/internal/storage"
)

// openBackend opens the progress backend named by --backend. For gdata the
// --db flag is the application name unless left at its default.
func openBackend(cmd *cobra.Command) (storage.Backend, error) {
	path := flagDBPath
	if flagBackend == storage.BackendGdata && !cmd.Flags().Changed("db") {
		path = storage.DefaultAppName
	}
	return storage.OpenBackend(flagBackend, path)
}

// loadGameOptions reads the tuning, level table, scripts and content.
func loadGameOptions(assist string) (tui.GameOptions, error) {
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		return tui.GameOptions{}, err
	}
	if assist != "" {
		preset, ok := config.ParseAssistPreset(assist)
		if !ok {
			return tui.GameOptions{}, fmt.Errorf("unknown assist preset %q (want full, normal or off)", assist)
		}
		config.ApplyAssistPreset(&cfg, preset)
	}

	table, err := levels.Load(flagLevels)
	if err != nil {
		return tui.GameOptions{}, err
	}

	return tui.GameOptions{
		FPS:     flagFPS,
		Table:   table,
		Scripts: scripts.Default(),
		Content: content.Default(),
		Config:  cfg,
		Profile: flagProfile,
	}, nil
}

// openLogFile returns a logger writing to ~/.parabola/parabola.log so the
// alt screen stays clean. The closer must be called on exit.
func openLogFile() (*log.Logger, io.Closer) {
	dir := config.DataDir()
	if dir == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)
	f, err := os.OpenFile(filepath.Join(dir, "parabola.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "parabola",
	}), f
}
