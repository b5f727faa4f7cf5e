// Package filestore keeps kvstore records as one JSON file per key inside a
// state directory, the desktop equivalent of browser local storage.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jrsteele09/storedesk/kvstore"
)

var _ kvstore.Repo = (*Repo)(nil)

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

type Repo struct {
	dir  string
	lock sync.RWMutex
}

// New creates the state directory if needed.
func New(dir string) (*Repo, error) {
	if dir == "" {
		return nil, errors.New("[filestore.New] dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("[filestore.New] create %s: %w", dir, err)
	}
	return &Repo{dir: dir}, nil
}

func (r *Repo) Dir() string {
	return r.dir
}

func (r *Repo) path(key string) (string, error) {
	if key == "" {
		return "", kvstore.ErrEmptyKey
	}
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", kvstore.ErrInvalidKey, key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *Repo) Load(_ context.Context, key string) ([]byte, bool, error) {
	p, err := r.path(key)
	if err != nil {
		return nil, false, err
	}
	r.lock.RLock()
	defer r.lock.RUnlock()

	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Save writes to a temporary file and renames it over the record so a reader
// never observes a half-written document.
func (r *Repo) Save(_ context.Context, key string, value []byte) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, p)
}

func (r *Repo) Delete(_ context.Context, key string) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
