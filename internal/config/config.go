package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all selforge configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Profile    ProfileConfig    `toml:"profile"`
	AI         AIConfig         `toml:"ai"`
	Online     OnlineConfig     `toml:"online"`
	Resolver   ResolverConfig   `toml:"resolver"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Foods      FoodOverrides    `toml:"foods"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	StorePath   string `toml:"store_path,omitempty"`
	DefaultDays int    `toml:"default_days"`
}

// ProfileConfig holds body measurements used by the burn formulas.
type ProfileConfig struct {
	BodyWeightKg float64 `toml:"body_weight_kg"`
	HeightCm     float64 `toml:"height_cm,omitempty"`
	Age          int     `toml:"age,omitempty"`
}

// AIConfig holds the chat-completions endpoint settings.
type AIConfig struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
}

// OnlineConfig holds the public food database settings.
type OnlineConfig struct {
	Enabled   bool   `toml:"enabled"`
	BaseURL   string `toml:"base_url,omitempty"`
	UserAgent string `toml:"user_agent,omitempty"`
}

// ResolverConfig bounds each resolution tier.
type ResolverConfig struct {
	TierTimeoutSec int `toml:"tier_timeout_sec"`
}

// ServerConfig holds the local HTTP API settings.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 7,
		},
		Profile: ProfileConfig{
			BodyWeightKg: 80,
		},
		AI: AIConfig{
			BaseURL: "https://api.deepseek.com/v1",
			Model:   "deepseek-chat",
		},
		Online: OnlineConfig{
			Enabled: true,
			BaseURL: "https://world.openfoodfacts.org",
		},
		Resolver: ResolverConfig{
			TierTimeoutSec: 8,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8788",
			AllowedOrigins: []string{"*"},
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "selforge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "selforge")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "selforge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "selforge")
}

// StorePath returns the configured store path or the default under DataDir.
func StorePath(cfg Config) string {
	if p := strings.TrimSpace(cfg.General.StorePath); p != "" {
		return p
	}
	return filepath.Join(DataDir(), "selforge.db")
}

// LoadEnv reads KEY=value pairs from a .env file into the process
// environment without overriding variables already set. A missing file is
// not an error.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path with owner-only permissions.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's own config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetAIKey returns the AI key from env vars or config, in that order.
func GetAIKey(cfg Config) string {
	for _, env := range []string{"SELFORGE_AI_KEY", "DEEPSEEK_API_KEY"} {
		if key := strings.TrimSpace(os.Getenv(env)); key != "" {
			return key
		}
	}
	return cfg.AI.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
