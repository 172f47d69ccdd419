// parabola is a terminal puzzle game about shaping the curve y = a(x-h)^2 + k.
//
// Usage:
//
//	parabola play             - Play (mode picker unless --mode is given)
//	parabola levels           - List the level table
//	parabola modes            - List play modes
//	parabola progress show    - Show saved progress for a profile
//	parabola progress reset   - Forget a profile's progress
//	parabola serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--db <path>         - Set progress database path (default: ~/.parabola/progress.db)
//	--backend <name>    - Progress backend: sqlite or gdata
//	--config <path>     - Game tuning YAML
//	--levels <path>     - Level table YAML
//	--profile <name>    - Progress profile (default: local)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/parabola-world/internal/modes"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagBackend string
	flagConfig  string
	flagLevels  string
	flagProfile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parabola",
	Short: "Parabola World - bend the curve to fit the world",
	Long: `Parabola World is a terminal puzzle game. Each level shows a parabola
in vertex form, y = a(x-h)^2 + k, and a target to match. Tune a, h and k
until the curve lands on the target.

Available commands:
  play      - Start a game
  levels    - Show the level table
  modes     - Show play modes
  progress  - Inspect or reset saved progress
  serve     - Start SSH server for remote play

Examples:
  parabola play
  parabola play --mode story
  parabola progress show --profile alice
  parabola serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.parabola/progress.db", "Path to progress database (sqlite) or app name (gdata)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "sqlite", "Progress backend: sqlite, gdata")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to custom level table YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Progress profile name")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}
