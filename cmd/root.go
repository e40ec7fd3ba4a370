package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/theirongolddev/selforge/internal/ai"
	"github.com/theirongolddev/selforge/internal/burn"
	"github.com/theirongolddev/selforge/internal/config"
	"github.com/theirongolddev/selforge/internal/nutrition"
	"github.com/theirongolddev/selforge/internal/openfoodfacts"
	"github.com/theirongolddev/selforge/internal/parser"
	"github.com/theirongolddev/selforge/internal/pipeline"
	"github.com/theirongolddev/selforge/internal/store"
	"github.com/theirongolddev/selforge/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	flagDays    int
	flagDBPath  string
	flagQuiet   bool
	flagOffline bool
	flagEnvFile string
)

var rootCmd = &cobra.Command{
	Use:   "selforge",
	Short: "Daily habit tracker",
	Long:  "Log food, workouts and study in plain language and keep your streak alive.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadEnv(flagEnvFile)
	},
	RunE: runToday,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite store")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "Skip the AI and Open Food Facts tiers")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Read KEY=value pairs from this file")
}

// session is an open tracker plus the store behind it.
type session struct {
	cfg     config.Config
	tracker *tracker.Tracker
	store   *store.Store
}

func (s *session) Close() {
	_ = s.store.Close()
}

// openSession is the shared wiring used by all commands: config, the
// resolution tiers, the store and the tracker.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger()

	foods, skipped := config.Foods(cfg)
	for _, s := range skipped {
		logger.Printf("skipping food override %s", s)
	}
	custom := make(map[string]nutrition.Per100g, len(foods))
	for name, v := range foods {
		custom[name] = nutrition.Per100g{Calories: v.Calories, Protein: v.Protein, Sugar: v.Sugar}
	}

	timeout := time.Duration(cfg.Resolver.TierTimeoutSec) * time.Second
	nopts := nutrition.Options{Custom: custom, TierTimeout: timeout, Logger: logger}
	// The tracker is created below; until then no measured weight exists.
	var t *tracker.Tracker
	bopts := burn.Options{
		BodyWeightKg: cfg.Profile.BodyWeightKg,
		WeightSource: func() float64 {
			if t == nil {
				return 0
			}
			return t.BodyWeightKg()
		},
		TierTimeout: timeout,
		Logger:      logger,
	}
	var asker ai.Asker
	if !flagOffline {
		// A nil *Client must not become a non-nil interface.
		if c := ai.NewClient(config.GetAIKey(cfg), cfg.AI.BaseURL, cfg.AI.Model); c != nil {
			asker = c
			nopts.AI = c
			bopts.AI = c
		}
		if cfg.Online.Enabled {
			nopts.Online = openfoodfacts.NewClient(cfg.Online.BaseURL, cfg.Online.UserAgent)
		}
	}

	p := pipeline.New(nutrition.NewResolver(nopts), burn.NewEstimator(bopts))

	path := flagDBPath
	if path == "" {
		path = config.StorePath(cfg)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	t, err = tracker.New(st, parser.New(asker, logger), p, tracker.WithLogger(logger))
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return &session{cfg: cfg, tracker: t, store: st}, nil
}

func newLogger() *log.Logger {
	var w io.Writer = os.Stderr
	if flagQuiet {
		w = io.Discard
	}
	return log.New(w, "selforge: ", 0)
}

// windowDays returns --days or the configured default.
func windowDays(cfg config.Config) int {
	if flagDays > 0 {
		return flagDays
	}
	if cfg.General.DefaultDays > 0 {
		return cfg.General.DefaultDays
	}
	return 7
}

func progress(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
	}
}
