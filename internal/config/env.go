package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds SSH server settings read from the environment. Command
// line flags override them.
type ServerEnv struct {
	Address     string        `env:"BLOCKFALL_SSH_ADDR"     envDefault:":23234"`
	HostKeyPath string        `env:"BLOCKFALL_HOST_KEY"`
	DBPath      string        `env:"BLOCKFALL_DB"           envDefault:"~/.blockfall/sessions.db"`
	IdleTimeout time.Duration `env:"BLOCKFALL_IDLE_TIMEOUT" envDefault:"30m"`
	ConfigPath  string        `env:"BLOCKFALL_CONFIG"`
	Difficulty  string        `env:"BLOCKFALL_DIFFICULTY"`
}

// LoadServerEnv parses ServerEnv from the process environment.
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.Parse(&cfg); err != nil {
		return ServerEnv{}, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.IdleTimeout <= 0 {
		return ServerEnv{}, fmt.Errorf("config: BLOCKFALL_IDLE_TIMEOUT must be positive, got %v", cfg.IdleTimeout)
	}
	if cfg.Difficulty != "" {
		if _, err := ParsePreset(cfg.Difficulty); err != nil {
			return ServerEnv{}, err
		}
	}
	return cfg, nil
}
