package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvCatalog = "SIENNA_CATALOG"
	EnvPriceDB = "SIENNA_PRICE_DB"
	EnvAddr    = "SIENNA_ADDR"
	EnvTier    = "SIENNA_TIER"
)

// Config holds all sienna configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Catalog CatalogConfig `toml:"catalog"`
	Server  ServerConfig  `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultTier string `toml:"default_tier"`
	OutputDir   string `toml:"output_dir,omitempty"`
}

// CatalogConfig selects the unit-price source and per-key price overrides.
type CatalogConfig struct {
	Path      string                   `toml:"path,omitempty"`
	PriceDB   string                   `toml:"price_db,omitempty"`
	Overrides map[string]PriceOverride `toml:"overrides,omitempty"`
}

// PriceOverride replaces the unit price of one catalog key.
type PriceOverride struct {
	UnitPrice *float64 `toml:"unit_price,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultTier: "medium",
			OutputDir:   ".",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sienna")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sienna")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultPriceDB is where `catalog import` stores the price book when no
// path is configured.
func DefaultPriceDB() string {
	return filepath.Join(ConfigDir(), "prices.db")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides.
func Load() (Config, error) {
	cfg, err := LoadFrom(ConfigPath())
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFrom reads the config file at path without consulting the
// environment.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
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

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set are kept. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with SIENNA_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvCatalog); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv(EnvPriceDB); v != "" {
		cfg.Catalog.PriceDB = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvTier); v != "" {
		cfg.General.DefaultTier = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
