// Package selection owns the store the client is currently working against.
//
// A store may only become current through Switch once the API has issued a
// token scoped to it. The new token is committed to the credential slot and the
// session before the store itself, so any request that observes the new store
// also carries the new token.
package selection

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/jrsteele09/storedesk/api"
	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/jrsteele09/storedesk/session"
	"github.com/jrsteele09/storedesk/stores"
	"github.com/jrsteele09/storedesk/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// State is a snapshot of the selection. It is also the persisted record.
type State struct {
	CurrentStore *stores.Store `json:"currentStore"`
}

// TokenRefresher exchanges the current credential for one scoped to storeID.
type TokenRefresher interface {
	RefreshStoreToken(ctx context.Context, storeID string) (string, error)
}

// CredentialWriter is the durable token slot read by the HTTP client.
type CredentialWriter interface {
	Set(ctx context.Context, token string) error
}

// SessionStore is the part of the session Switch needs.
type SessionStore interface {
	State() session.State
	SetAuth(ctx context.Context, user *users.Profile, token string) error
}

// Deps holds the collaborators used by Switch.
type Deps struct {
	Refresher  TokenRefresher
	Credential CredentialWriter
	Session    SessionStore
}

type Store struct {
	deps      Deps
	slot      kvstore.Slot[State]
	lock      sync.RWMutex
	state     State
	listeners []func(State)
}

// New restores the selection from repo. A missing record means no current store.
func New(ctx context.Context, repo kvstore.Repo, deps Deps) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[selection.New] repo is nil")
	}
	if deps.Refresher == nil || deps.Credential == nil || deps.Session == nil {
		return nil, errors.New("[selection.New] refresher, credential and session are required")
	}

	s := &Store{deps: deps, slot: kvstore.NewSlot[State](repo, kvstore.KeySelection)}
	restored, _, err := s.slot.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[selection.New] restore")
	}
	s.state = State{CurrentStore: restored.CurrentStore.Clone()}
	return s, nil
}

// Current returns a copy of the current store, or nil.
func (s *Store) Current() *stores.Store {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.CurrentStore.Clone()
}

// Subscribe registers fn to be called with the new state after every commit.
func (s *Store) Subscribe(fn func(State)) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetCurrent makes store current without touching the credential. Use it only
// when the credential in effect is already scoped to store.
func (s *Store) SetCurrent(ctx context.Context, store *stores.Store) error {
	if store == nil {
		return ErrNoStore
	}
	return s.commit(ctx, State{CurrentStore: store.Clone()})
}

// Clear leaves the client with no current store.
func (s *Store) Clear(ctx context.Context) error {
	return s.commit(ctx, State{})
}

// Switch obtains a token scoped to store and then commits, in order, the
// credential slot, the session and the current store. If the token cannot be
// obtained nothing is committed and the returned error matches ErrSwitchFailed.
func (s *Store) Switch(ctx context.Context, store *stores.Store) error {
	if store == nil {
		return ErrNoStore
	}
	current := s.deps.Session.State()
	if !current.IsAuthenticated {
		return session.ErrNotAuthenticated
	}

	token, err := s.deps.Refresher.RefreshStoreToken(ctx, store.ID)
	if err == nil && token == "" {
		err = api.ErrMissingAccessToken
	}
	if err != nil {
		log.Err(err).Str("store_id", store.ID).Msg("store switch failed")
		return errors.WithMessagef(fmt.Errorf("%w: %w", ErrSwitchFailed, err), "[Store.Switch] store %s", store.ID)
	}

	if err := s.deps.Credential.Set(ctx, token); err != nil {
		log.Err(err).Str("store_id", store.ID).Msg("store switch failed writing credential")
		return errors.WithMessagef(fmt.Errorf("%w: %w", ErrSwitchFailed, err), "[Store.Switch] store %s", store.ID)
	}

	// From here the in-memory state is committed even when persisting fails.
	sessionErr := s.deps.Session.SetAuth(ctx, current.User, token)
	storeErr := s.commit(ctx, State{CurrentStore: store.Clone()})

	log.Info().Str("store_id", store.ID).Str("store", store.Name).Msg("switched store")
	if err := stderrors.Join(sessionErr, storeErr); err != nil {
		return errors.Wrap(err, "[Store.Switch] persisting switch")
	}
	return nil
}

func (s *Store) commit(ctx context.Context, next State) error {
	s.lock.Lock()
	s.state = next
	err := s.slot.Save(ctx, next)
	listeners := append([]func(State){}, s.listeners...)
	s.lock.Unlock()

	if err != nil {
		log.Err(err).Msg("persisting store selection")
	}
	for _, fn := range listeners {
		fn(State{CurrentStore: next.CurrentStore.Clone()})
	}
	return err
}
