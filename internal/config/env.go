// Package config loads process configuration from the environment and
// tree schemas from disk.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the environment configuration shared by the CLI commands. Flags
// override these values.
type Env struct {
	// Locale is the preferred locale list, in Accept-Language form.
	Locale string `env:"UNIFACE_LOCALE" envDefault:"en-US"`
	// OverlayDir holds extra locale bundles layered over the embedded ones.
	OverlayDir string `env:"UNIFACE_OVERLAY_DIR"`
	// Schema is the default tree schema file.
	Schema string `env:"UNIFACE_SCHEMA"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env from the environment.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	return cfg, nil
}
