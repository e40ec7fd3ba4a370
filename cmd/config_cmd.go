// Package cmd implements the selforge CLI commands.
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/selforge/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Store:        %s\n", config.StorePath(cfg))
	fmt.Printf("    Default days: %d\n", cfg.General.DefaultDays)
	fmt.Println()

	fmt.Println("  [Profile]")
	fmt.Printf("    Body weight: %.1f kg\n", cfg.Profile.BodyWeightKg)
	if cfg.Profile.Age > 0 {
		fmt.Printf("    Age:         %d\n", cfg.Profile.Age)
	}
	fmt.Println()

	fmt.Println("  [AI]")
	if key := config.GetAIKey(cfg); key != "" {
		fmt.Printf("    API key:  %s\n", maskAPIKey(key))
	} else {
		fmt.Println("    API key:  not configured (keyword parser and tables only)")
	}
	fmt.Printf("    Endpoint: %s\n", cfg.AI.BaseURL)
	fmt.Printf("    Model:    %s\n", cfg.AI.Model)
	fmt.Println()

	fmt.Println("  [Online]")
	fmt.Printf("    Open Food Facts: %v\n", cfg.Online.Enabled)
	fmt.Printf("    Tier timeout:    %ds\n", cfg.Resolver.TierTimeoutSec)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Printf("    Origins: %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	foods, skipped := config.Foods(cfg)
	if len(foods) > 0 || len(skipped) > 0 {
		fmt.Println("  [Foods]")
		names := make([]string, 0, len(foods))
		for name := range foods {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			v := foods[name]
			fmt.Printf("    %-20s %.0f kcal  %.1fg protein  %.1fg sugar /100g\n", name, v.Calories, v.Protein, v.Sugar)
		}
		for _, s := range skipped {
			fmt.Printf("    skipped %s\n", s)
		}
		fmt.Println()
	}

	fmt.Println("  Run `selforge setup` to reconfigure.")
	return nil
}
