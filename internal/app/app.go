// Package app wires the storedesk client from configuration. It is the only
// place the state containers are constructed; everything else receives them.
package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/storedesk/api"
	"github.com/jrsteele09/storedesk/auth"
	"github.com/jrsteele09/storedesk/internal/config"
	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/jrsteele09/storedesk/kvstore/filestore"
	"github.com/jrsteele09/storedesk/kvstore/redisstore"
	"github.com/jrsteele09/storedesk/kvstore/repofake"
	"github.com/jrsteele09/storedesk/selection"
	"github.com/jrsteele09/storedesk/session"
	"github.com/jrsteele09/storedesk/theme"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	redisConnectAttempts = 3
	redisConnectInterval = 500 * time.Millisecond
)

type App struct {
	Credential *session.Credential
	Session    *session.Store
	Selection  *selection.Store
	Theme      *theme.Store
	Auth       *auth.Service
	Client     *api.Client
	AuthAPI    *api.AuthAPI
	Resources  *api.ResourceAPI

	closer io.Closer
}

type Option func(*options)

type options struct {
	repo       kvstore.Repo
	httpClient *http.Client
}

// WithRepo replaces the configured state backend.
func WithRepo(repo kvstore.Repo) Option {
	return func(o *options) {
		o.repo = repo
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{}
	repo := o.repo
	if repo == nil {
		var err error
		repo, a.closer, err = openRepo(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	a.Credential = session.NewCredential(repo)

	var err error
	if a.Session, err = session.New(ctx, repo); err != nil {
		return nil, errors.Wrap(err, "[app.New] restore session")
	}
	a.Session.Subscribe(func(s session.State) {
		log.Debug().Bool("authenticated", s.IsAuthenticated).Str("role", string(s.Role())).Msg("session changed")
	})

	clientOpts := []api.ClientOption{
		api.WithTimeout(cfg.GetRequestTimeout()),
		api.WithRequestMiddleware(api.RequestID(), api.BearerToken(a.Credential)),
		api.WithResponseMiddleware(api.LogResponses()),
	}
	if o.httpClient != nil {
		clientOpts = append([]api.ClientOption{api.WithHTTPClient(o.httpClient)}, clientOpts...)
	}
	if a.Client, err = api.NewClient(cfg.GetAPIBaseURL(), clientOpts...); err != nil {
		return nil, errors.Wrap(err, "[app.New] api client")
	}
	a.AuthAPI = api.NewAuthAPI(a.Client)
	a.Resources = api.NewResourceAPI(a.Client)

	a.Selection, err = selection.New(ctx, repo, selection.Deps{
		Refresher:  a.AuthAPI,
		Credential: a.Credential,
		Session:    a.Session,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[app.New] restore store selection")
	}
	a.Selection.Subscribe(func(s selection.State) {
		if s.CurrentStore != nil {
			log.Debug().Str("store_id", s.CurrentStore.ID).Msg("store selection changed")
		}
	})

	if a.Theme, err = theme.New(ctx, repo); err != nil {
		return nil, errors.Wrap(err, "[app.New] restore theme")
	}

	a.Auth, err = auth.NewService(auth.Deps{API: a.AuthAPI, Credential: a.Credential, Session: a.Session})
	if err != nil {
		return nil, errors.Wrap(err, "[app.New] auth service")
	}
	return a, nil
}

// Close releases the state backend connection, if any.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func openRepo(ctx context.Context, cfg config.StateConfig) (kvstore.Repo, io.Closer, error) {
	switch backend := cfg.GetStateBackend(); backend {
	case config.StateBackendFile, "":
		repo, err := filestore.New(cfg.GetStateDir())
		if err != nil {
			return nil, nil, errors.Wrap(err, "[app.openRepo] file backend")
		}
		return repo, nil, nil
	case config.StateBackendRedis:
		client, err := redisstore.Connect(ctx, cfg.GetRedisURL(), redisConnectAttempts, redisConnectInterval)
		if err != nil {
			return nil, nil, errors.Wrap(err, "[app.openRepo] redis backend")
		}
		return redisstore.New(client, cfg.GetRedisPrefix()), client, nil
	case config.StateBackendMemory:
		log.Warn().Msg("memory state backend: the session is lost when the process exits")
		return repofake.NewFakeRepo(), nil, nil
	default:
		return nil, nil, errors.Errorf("[app.openRepo] unknown state backend %q", backend)
	}
}
