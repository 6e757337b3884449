package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds SSH server settings read from the environment. The serve
// command uses them as flag defaults.
type ServerEnv struct {
	Addr        string        `env:"AETHERIA_SSH_ADDR"     envDefault:":23234"`
	HostKeyPath string        `env:"AETHERIA_HOST_KEY"`
	DBPath      string        `env:"AETHERIA_DB"           envDefault:"~/.aetheria/aetheria.db"`
	IdleTimeout time.Duration `env:"AETHERIA_IDLE_TIMEOUT" envDefault:"30m"`
}

// LoadServerEnv loads server settings from environment variables.
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.Parse(&cfg); err != nil {
		return ServerEnv{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}
