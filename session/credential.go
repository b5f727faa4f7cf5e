package session

import (
	"context"

	"github.com/jrsteele09/storedesk/kvstore"
)

// Credential is the durable bearer token slot. The HTTP client reads it on every
// request; login and store switching write it.
type Credential struct {
	slot kvstore.Slot[string]
}

func NewCredential(repo kvstore.Repo) *Credential {
	return &Credential{slot: kvstore.NewSlot[string](repo, kvstore.KeyCredential)}
}

// Token returns the stored token, or "" when none is stored.
func (c *Credential) Token(ctx context.Context) (string, error) {
	token, _, err := c.slot.Load(ctx)
	return token, err
}

func (c *Credential) Set(ctx context.Context, token string) error {
	return c.slot.Save(ctx, token)
}

func (c *Credential) Clear(ctx context.Context) error {
	return c.slot.Clear(ctx)
}
