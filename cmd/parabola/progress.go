package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/storage"
)

var flagAllProfiles bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or reset saved progress",
	Long: `Show or reset the progress saved for a profile.

Examples:
  parabola progress show
  parabola progress show --all
  parabola progress show --profile alice
  parabola progress reset --profile alice`,
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved progress",
	Args:  cobra.NoArgs,
	Run:   runProgressShow,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget a profile's progress",
	Args:  cobra.NoArgs,
	Run:   runProgressReset,
}

func init() {
	progressShowCmd.Flags().BoolVar(&flagAllProfiles, "all", false, "List every saved profile")
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}

func runProgressShow(cmd *cobra.Command, _ []string) {
	backend, err := openBackend(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	if flagAllProfiles {
		names, err := backend.Profiles()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing profiles: %v\n", err)
			return
		}
		if len(names) == 0 {
			fmt.Println("No saved profiles.")
			return
		}
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return
	}

	table, err := levels.Load(flagLevels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		return
	}

	profile := storage.ForProfile(backend, flagProfile)
	p, ok, err := profile.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading progress: %v\n", err)
		return
	}

	fmt.Printf("Progress - %s\n", profile.Name())
	fmt.Println()

	if !ok {
		fmt.Println("No progress saved yet.")
		fmt.Println()
		fmt.Println("Run 'parabola play' to start.")
		return
	}

	name := p.UserName
	if name == "" {
		name = "(not set)"
	}
	current := "?"
	if cfg, ok := table.Get(p.Level); ok {
		current = cfg.Name
	}
	fmt.Printf("  Player:   %s\n", name)
	fmt.Printf("  Level:    %d (%s)\n", p.Level, current)
	fmt.Printf("  Reached:  %d of %d\n", p.MaxLevel+1, table.Count())
	fmt.Printf("  Muted:    %t\n", p.MusicMuted)

	recorder, ok := backend.(storage.Recorder)
	if !ok {
		return
	}
	entries, err := recorder.Completions(profile.Name(), 10)
	if err != nil || len(entries) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent completions:")
	fmt.Printf("  %-8s  %-5s  %-8s  %s\n", "Mode", "Level", "Attempts", "Date")
	fmt.Printf("  %-8s  %-5s  %-8s  %s\n", "----", "-----", "--------", "----")
	for _, e := range entries {
		fmt.Printf("  %-8s  %-5d  %-8d  %s\n", e.Mode, e.Level, e.Attempts, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runProgressReset(cmd *cobra.Command, _ []string) {
	backend, err := openBackend(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	profile := storage.ForProfile(backend, flagProfile)
	if err := profile.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
		return
	}
	fmt.Printf("Progress for %s reset.\n", profile.Name())
}
