// Package config loads and saves CLI configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the application configuration
type Config struct {
	SheetURL     string
	CacheTTL     time.Duration
	DefaultLimit int
}

// Load loads configuration from config files, environment and .env files
func Load() (*Config, error) {
	// Find home directory
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	// Set config file paths
	viper.SetConfigName(".sheetdb")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "sheetdb"))

	// Set environment variable prefix
	viper.SetEnvPrefix("SHEETDB")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("cache_ttl", "5m")
	viper.SetDefault("default_limit", 0)

	// Try to read config file (ignore if not found)
	_ = viper.ReadInConfig()

	// Load .env file if it exists
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	// Load .env.local if it exists (higher priority)
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		SheetURL:     viper.GetString("sheet_url"),
		CacheTTL:     viper.GetDuration("cache_ttl"),
		DefaultLimit: viper.GetInt("default_limit"),
	}

	// SHEET_URL from the environment wins over config files
	if url := os.Getenv("SHEET_URL"); url != "" {
		cfg.SheetURL = url
	}

	return cfg, nil
}

// Save writes configuration to .sheetdb.yaml in the working directory
func Save(cfg *Config) error {
	viper.SetFs(AppFs)
	viper.Set("sheet_url", cfg.SheetURL)
	viper.Set("cache_ttl", cfg.CacheTTL.String())
	viper.Set("default_limit", cfg.DefaultLimit)
	return viper.WriteConfigAs(".sheetdb.yaml")
}
