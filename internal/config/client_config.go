package config

import (
	"os"
	"path/filepath"
	"time"
)

type ClientConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type StateConfig interface {
	GetStateBackend() string
	GetStateDir() string
	GetRedisURL() string
	GetRedisPrefix() string
}

const (
	StateBackendFile   = "file"
	StateBackendRedis  = "redis"
	StateBackendMemory = "memory"
)

type Client struct {
	APIBaseURL     string        `env:"STOREDESK_API_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"STOREDESK_TIMEOUT" envDefault:"10s"`
}

var _ ClientConfig = Client{}

func (c Client) GetAPIBaseURL() string {
	return c.APIBaseURL
}

func (c Client) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

type State struct {
	Backend     string `env:"STOREDESK_STATE_BACKEND" envDefault:"file"`
	Dir         string `env:"STOREDESK_STATE_DIR"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix string `env:"STOREDESK_REDIS_PREFIX" envDefault:"storedesk:"`
}

var _ StateConfig = State{}

func (s State) GetStateBackend() string {
	return s.Backend
}

// GetStateDir defaults to ~/.storedesk, falling back to a relative directory when
// the home directory cannot be resolved.
func (s State) GetStateDir() string {
	if s.Dir != "" {
		return s.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storedesk"
	}
	return filepath.Join(home, ".storedesk")
}

func (s State) GetRedisURL() string {
	return s.RedisURL
}

func (s State) GetRedisPrefix() string {
	return s.RedisPrefix
}
