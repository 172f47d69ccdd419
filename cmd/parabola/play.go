package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/parabola-world/internal/platform/tui"
	"github.com/vovakirdan/parabola-world/internal/registry"
)

var (
	flagMode   string
	flagAssist string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Parabola World",
	Long: `Start the game. Without --mode a mode picker is shown first.

Controls:
  Enter/Space    - Next line / commit
  S              - Skip dialogue
  Tab/Shift+Tab  - Select coefficient
  Up/Down        - Adjust (PgUp/PgDn for bigger steps)
  C              - Commit attempt
  R              - Retry level
  M              - Level map
  1-6            - Answer quiz
  Q/Ctrl+C       - Quit

Assist presets:
  full   - Hints come twice as fast
  normal - Default hint timing
  off    - No hints

Examples:
  parabola play
  parabola play --mode classic
  parabola play --mode story --assist full
  parabola play --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Play mode: story, classic")
	playCmd.Flags().StringVar(&flagAssist, "assist", "", "Hint preset: full, normal, off")
}

func runPlay(cmd *cobra.Command, _ []string) {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts, err := loadGameOptions(flagAssist)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	modeID := flagMode
	if modeID == "" {
		modeID, err = tui.RunMenu(width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User quit the picker
		if modeID == "" {
			return
		}
	}

	mode, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'parabola modes' to see available modes.")
		os.Exit(1)
	}
	opts.Mode = mode

	logger, logFile := openLogFile()
	defer logFile.Close()
	opts.Logger = logger

	backend, err := openBackend(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress storage: %v\n", err)
		// Continue without storage - progress is kept for this run only
	}
	opts.Backend = backend

	runErr := tui.Run(opts, width, height)

	if backend != nil {
		backend.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		logFile.Close()
		os.Exit(1)
	}
}
