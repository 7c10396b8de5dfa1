// Package config resolves client configuration from, in increasing
// precedence: built-in defaults, a .env file in the working directory, an
// optional YAML file, and environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIBase is the root URL of the book service, no trailing slash needed.
	APIBase string `yaml:"api_base"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	// Path of the JSON log file. Empty disables logging entirely; the TUI
	// owns the terminal, so there is no console fallback.
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

func defaults() Config {
	return Config{
		APIBase: "http://localhost:5000",
		Log:     LogConfig{Level: "info"},
	}
}

// Load resolves the effective configuration. A missing .env and a missing
// config file are both fine; a present-but-broken config file is not.
func Load() (Config, error) {
	cfg := defaults()

	// .env sits below the YAML file, so its values are applied to cfg
	// directly instead of being exported into the process environment,
	// where the later override pass would read them back.
	dotenv, _ := godotenv.Read()
	if base := dotenv["BOOKDECK_API_BASE"]; base != "" {
		cfg.APIBase = base
	}
	if path := dotenv["BOOKDECK_LOG_PATH"]; path != "" {
		cfg.Log.Path = path
	}
	if level := dotenv["BOOKDECK_LOG_LEVEL"]; level != "" {
		cfg.Log.Level = level
	}

	path := os.Getenv("BOOKDECK_CONFIG_PATH")
	if path == "" {
		path = dotenv["BOOKDECK_CONFIG_PATH"]
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if base := os.Getenv("BOOKDECK_API_BASE"); base != "" {
		cfg.APIBase = base
	}
	if path := os.Getenv("BOOKDECK_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if level := os.Getenv("BOOKDECK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}
