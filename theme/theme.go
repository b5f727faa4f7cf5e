// Package theme persists the display preference of the client.
package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/rs/zerolog/log"
)

type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

var ErrUnknownMode = errors.New("unknown theme mode")

// ParseMode accepts light, dark or system.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Light, Dark, System:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type record struct {
	Mode Mode `json:"mode"`
}

type Store struct {
	slot kvstore.Slot[record]
	lock sync.RWMutex
	mode Mode
}

// New restores the preference. A missing or unrecognised record yields System.
func New(ctx context.Context, repo kvstore.Repo) (*Store, error) {
	s := &Store{slot: kvstore.NewSlot[record](repo, kvstore.KeyTheme), mode: System}
	r, found, err := s.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		if m, err := ParseMode(string(r.Mode)); err == nil {
			s.mode = m
		} else {
			log.Warn().Str("mode", string(r.Mode)).Msg("ignoring persisted theme")
		}
	}
	return s, nil
}

func (s *Store) Current() Mode {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.mode
}

func (s *Store) Set(ctx context.Context, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.mode = mode
	return s.slot.Save(ctx, record{Mode: mode})
}

// Toggle flips between light and dark. System toggles to dark.
func (s *Store) Toggle(ctx context.Context) (Mode, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	next := Dark
	if s.mode == Dark {
		next = Light
	}
	s.mode = next
	return next, s.slot.Save(ctx, record{Mode: next})
}
