package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API struct {
		BaseURL string
		Timeout time.Duration
	}
	State struct {
		Path string
	}
}

// Load reads config from environment (RECIPE_ prefix) and optional
// recipe-club.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RECIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("recipe-club")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("api.timeout", "15s")

	cfg := &Config{}
	cfg.API.BaseURL = v.GetString("api.base_url")
	cfg.State.Path = v.GetString("state.path")

	timeout, err := time.ParseDuration(v.GetString("api.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECIPE_API_TIMEOUT: %w", err)
	}
	cfg.API.Timeout = timeout

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("RECIPE_API_BASE_URL is required")
	}
	if cfg.State.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("RECIPE_STATE_PATH is required when no home directory is available")
		}
		cfg.State.Path = filepath.Join(home, ".recipe-club", "state.db")
	}

	return cfg, nil
}
