package config

import (
	"fmt"
	"time"
)

type ServerConfig interface {
	GetPort() string
	GetSeedPassword() string
}

type TokenConfig interface {
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetIssuer() string
}

type Server struct {
	Port         string `env:"PORT" envDefault:"8080"`
	SeedPassword string `env:"SEED_PASSWORD" envDefault:"Password123"`
}

var _ ServerConfig = Server{}

func (s Server) GetPort() string {
	port := s.Port
	if port == "" {
		port = "8080"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

// GetSeedPassword is the password given to every seeded demo user of the mock API.
func (s Server) GetSeedPassword() string {
	return s.SeedPassword
}

type Token struct {
	JWTSecret         string        `env:"JWT_SECRET" envDefault:"storedesk-dev-secret"`
	AccessTokenExpiry time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"1h"`
	Issuer            string        `env:"JWT_ISSUER" envDefault:"storedesk-mockapi"`
}

var _ TokenConfig = Token{}

func (t Token) GetJWTSecret() string {
	return t.JWTSecret
}

func (t Token) GetAccessTokenExpiry() time.Duration {
	return t.AccessTokenExpiry
}

func (t Token) GetIssuer() string {
	return t.Issuer
}
