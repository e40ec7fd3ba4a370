package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/selforge/internal/config"
	"github.com/theirongolddev/selforge/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	st := s.tracker.State()
	if existing := config.GetAIKey(cfg); existing != "" {
		fmt.Printf("  Current AI key: %s\n", maskAPIKey(existing))
	}

	v := tui.SetupValuesFrom(cfg, st.Profile)
	if err := tui.NewSetupForm(&v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg, profile, err := v.Apply(cfg)
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := s.tracker.SetProfile(profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	if profile.Name != "" {
		fmt.Printf("  Welcome, %s. Log your first entry with `selforge log`.\n", profile.Name)
	}
	fmt.Println("  Run `selforge setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
