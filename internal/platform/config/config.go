// Package config loads CLI configuration from a YAML file and the
// environment so main stays lean. Environment variables override file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CLI is everything the command line tool needs to build an API client.
type CLI struct {
	AccessToken  string        `yaml:"access_token"`
	Sandbox      bool          `yaml:"sandbox"`
	BaseURL      string        `yaml:"base_url"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Load reads path (when non-empty) and then applies environment overrides.
func Load(path string) (CLI, error) {
	var cfg CLI
	if path != "" {
		loaded, err := FromFile(path)
		if err != nil {
			return CLI{}, err
		}
		cfg = loaded
	}
	applyEnv(&cfg)
	return cfg, nil
}

// FromFile parses a YAML config file.
func FromFile(path string) (CLI, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return CLI{}, fmt.Errorf("read config: %w", err)
	}

	var cfg CLI
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return CLI{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a CLI config from environment variables alone.
func FromEnv() CLI {
	var cfg CLI
	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *CLI) {
	if token := os.Getenv("STARLING_ACCESS_TOKEN"); token != "" {
		cfg.AccessToken = token
	}
	if os.Getenv("STARLING_SANDBOX") == "true" {
		cfg.Sandbox = true
	}
	if base := os.Getenv("STARLING_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
}
