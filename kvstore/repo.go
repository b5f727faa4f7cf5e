// Package kvstore is the durable key-value layer behind every persisted state
// container. Records are JSON documents stored under named slots.
package kvstore

import (
	"context"
	"errors"
)

var (
	ErrEmptyKey   = errors.New("key cannot be empty")
	ErrInvalidKey = errors.New("invalid key")
)

// Repo persists raw records under named slots. Writes are last-write-wins and
// there is no transaction spanning more than one key.
type Repo interface {
	// Load returns the record stored under key. found is false when nothing is stored.
	Load(ctx context.Context, key string) (value []byte, found bool, err error)

	// Save replaces the record stored under key.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes the record. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Slot names used by storedesk.
const (
	KeyCredential = "token"
	KeySession    = "auth-storage"
	KeySelection  = "store-storage"
	KeyTheme      = "theme-storage"
)
