package config

import (
	"os"
	"strings"
)

// applyLocalDefaults fills the docker-compose defaults so a bare local run
// works without a .env file. Explicit env vars always win.
func applyLocalDefaults(cfg *Config) {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = strings.TrimSpace(os.Getenv("POSTGRES_URL"))
	}
	if cfg.Artifact.AccessKey == "" {
		cfg.Artifact.AccessKey = "flowlens"
	}
	if cfg.Artifact.SecretKey == "" {
		cfg.Artifact.SecretKey = "flowlens123"
	}
}
