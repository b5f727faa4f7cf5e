// Package session holds the authenticated principal of the running client.
//
// The Store is an explicit state container: it is constructed once by the
// application wiring, restored from its persisted slot, and injected into the
// components that read or change the session. Every mutation replaces user and
// token together so no reader ever observes a partially authenticated session.
package session

import (
	"context"
	"sync"

	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/jrsteele09/storedesk/users"
	"github.com/rs/zerolog/log"
)

// State is a snapshot of the session. It is also the persisted record.
type State struct {
	User            *users.Profile `json:"user"`
	Token           string         `json:"token"`
	IsAuthenticated bool           `json:"isAuthenticated"`
}

// Role returns the user's role, or "" when logged out.
func (s State) Role() users.RoleType {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// normalise drops records that do not satisfy the user+token invariant.
func (s State) normalise() State {
	if s.User == nil || s.Token == "" {
		return State{}
	}
	s.IsAuthenticated = true
	return s
}

type Store struct {
	slot      kvstore.Slot[State]
	lock      sync.RWMutex
	state     State
	listeners []func(State)
}

// New restores the session from repo. A missing record yields an empty session.
func New(ctx context.Context, repo kvstore.Repo) (*Store, error) {
	s := &Store{slot: kvstore.NewSlot[State](repo, kvstore.KeySession)}

	restored, found, err := s.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		s.state = restored.normalise()
		if restored.IsAuthenticated && !s.state.IsAuthenticated {
			log.Warn().Str("slot", kvstore.KeySession).Msg("discarding partial persisted session")
		}
	}
	return s, nil
}

// State returns a copy of the current session.
func (s *Store) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to be called with the new state after every mutation.
func (s *Store) Subscribe(fn func(State)) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetAuth replaces user and token together and marks the session authenticated.
// The token is not validated here; the API rejects it at use time if it is bad.
func (s *Store) SetAuth(ctx context.Context, user *users.Profile, token string) error {
	if user == nil || token == "" {
		return ErrIncompleteAuth
	}
	return s.commit(ctx, State{User: user, Token: token}.clone().normalise())
}

// Logout clears user and token together. Calling it again is harmless.
func (s *Store) Logout(ctx context.Context) error {
	return s.commit(ctx, State{})
}

// commit swaps the in-memory state and persists it. The in-memory state is
// committed even when persisting fails; the error is returned to the caller.
func (s *Store) commit(ctx context.Context, next State) error {
	s.lock.Lock()
	s.state = next
	err := s.slot.Save(ctx, next)
	listeners := append([]func(State){}, s.listeners...)
	s.lock.Unlock()

	if err != nil {
		log.Err(err).Msg("persisting session")
	}
	for _, fn := range listeners {
		fn(next.clone())
	}
	return err
}
