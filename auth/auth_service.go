// Package auth runs the login and logout flows of the client. It is the only
// writer of a fresh credential: the token returned by the API is written to the
// durable credential slot and the session in that order.
package auth

import (
	"context"
	stderrors "errors"

	"github.com/jrsteele09/storedesk/api"
	"github.com/jrsteele09/storedesk/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Authenticator is the login endpoint of the API.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
}

// CredentialStore is the durable bearer token slot.
type CredentialStore interface {
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SessionStore is the part of the session the flows write.
type SessionStore interface {
	SetAuth(ctx context.Context, user *users.Profile, token string) error
	Logout(ctx context.Context) error
}

// Deps holds the collaborators of the Service.
type Deps struct {
	API        Authenticator
	Credential CredentialStore
	Session    SessionStore
}

type Service struct {
	deps Deps
}

func NewService(deps Deps) (*Service, error) {
	if deps.API == nil {
		return nil, errors.New("[NewService] API is required")
	}
	if deps.Credential == nil {
		return nil, errors.New("[NewService] Credential is required")
	}
	if deps.Session == nil {
		return nil, errors.New("[NewService] Session is required")
	}
	return &Service{deps: deps}, nil
}

// Login authenticates against the API and establishes the session.
func (s *Service) Login(ctx context.Context, email, password string) (*users.Profile, error) {
	email, err := ValidateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	resp, err := s.deps.API.Login(ctx, email, password)
	if err != nil {
		return nil, errors.Wrap(err, "[Login] api login")
	}
	user := resp.User

	if err := s.deps.Credential.Set(ctx, resp.AccessToken); err != nil {
		return nil, errors.Wrap(err, "[Login] storing credential")
	}
	if err := s.deps.Session.SetAuth(ctx, &user, resp.AccessToken); err != nil {
		return nil, errors.Wrap(err, "[Login] storing session")
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("logged in")
	return &user, nil
}

// Logout drops the credential and the session. It is safe to call when
// already logged out. The store selection is left to the caller.
func (s *Service) Logout(ctx context.Context) error {
	credErr := s.deps.Credential.Clear(ctx)
	sessionErr := s.deps.Session.Logout(ctx)
	if err := stderrors.Join(credErr, sessionErr); err != nil {
		return errors.Wrap(err, "[Logout]")
	}
	log.Info().Msg("logged out")
	return nil
}
