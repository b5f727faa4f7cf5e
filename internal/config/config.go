package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full configuration surface shared by the storedesk CLI and the mock API.
type Config interface {
	EnvConfig
	ClientConfig
	StateConfig
	ServerConfig
	TokenConfig
	CorsConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Client
	State
	Server
	Token
	Cors
}

var loadDotEnv sync.Once

// New loads an optional .env file and parses the environment into a Config.
func New() (Config, error) {
	loadDotEnv.Do(func() {
		// The .env file is optional
		_ = godotenv.Load()
	})

	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config.New] parse environment: %w", err)
	}
	return c, nil
}
