// Package server is the storedesk mock REST API. It serves the envelope API
// the client talks to, backed by in-memory repositories seeded with demo data.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/storedesk/internal/config"
	"github.com/jrsteele09/storedesk/stores"
	"github.com/jrsteele09/storedesk/token"
	"github.com/jrsteele09/storedesk/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Users   users.UserRepo
	Stores  stores.Repo
	Catalog *Catalog
}

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	repos   Repos
	tokens  *token.Manager
	nowFunc func() time.Time
	seed    bool
}

type Option func(*Server)

// WithNowFunc overrides the clock used for issued tokens and seeded data.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Server) {
		s.nowFunc = now
	}
}

// WithoutSeed skips loading the demo data.
func WithoutSeed() Option {
	return func(s *Server) {
		s.seed = false
	}
}

func New(cfg config.Config, repos Repos, options ...Option) (*Server, error) {
	if repos.Users == nil || repos.Stores == nil || repos.Catalog == nil {
		return nil, errors.New("[Server New] users, stores and catalog repos are required")
	}

	s := &Server{
		env:     cfg.GetEnv(),
		mux:     http.NewServeMux(),
		config:  cfg,
		repos:   repos,
		nowFunc: time.Now,
		seed:    true,
	}
	for _, opt := range options {
		opt(s)
	}

	tokens, err := token.NewManager(
		token.NewHMACSigner(cfg.GetJWTSecret()),
		token.WithIssuer(cfg.GetIssuer()),
		token.WithAccessTokenExpiry(cfg.GetAccessTokenExpiry()),
		token.WithNowFunc(s.nowFunc),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] token manager")
	}
	s.tokens = tokens

	if s.seed {
		if err := s.InitialiseSystem(context.Background()); err != nil {
			return nil, errors.Wrap(err, "[Server New] failed to initialise the system")
		}
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Tokens exposes the token manager, mainly for tests that need a token without logging in.
func (s *Server) Tokens() *token.Manager {
	return s.tokens
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
