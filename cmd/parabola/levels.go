package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parabola-world/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table",
	Long: `Display every level with its starting curve, targets and locked
coefficients. Uses --levels when given.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	table, err := levels.Load(flagLevels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-3s  %-16s  %-26s  %-24s  %s\n", "#", "Name", "Start (a, h, k)", "Target", "Locked")
	fmt.Printf("  %-3s  %-16s  %-26s  %-24s  %s\n", "-", "----", "---------------", "------", "------")

	for i := range table.Count() {
		cfg, _ := table.Get(i)
		start := fmt.Sprintf("%.4f, %.0f, %.0f", cfg.A, cfg.H, cfg.K)
		fmt.Printf("  %-3d  %-16s  %-26s  %-24s  %s\n", i, cfg.Name, start, describeTargets(cfg), cfg.Locked)
	}
}

func describeTargets(cfg levels.Config) string {
	var parts []string
	for _, p := range levels.Params {
		if t := cfg.Target(p); t.Defined {
			parts = append(parts, fmt.Sprintf("%s=%g", p, t.Value))
		}
	}
	if cfg.Sacrifice.Defined {
		parts = append(parts, fmt.Sprintf("story a=%g", cfg.Sacrifice.Value))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
