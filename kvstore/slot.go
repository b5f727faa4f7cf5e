package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Slot is a typed handle on a single key of a Repo.
type Slot[T any] struct {
	repo Repo
	key  string
}

func NewSlot[T any](repo Repo, key string) Slot[T] {
	return Slot[T]{repo: repo, key: key}
}

func (s Slot[T]) Key() string {
	return s.key
}

// Load decodes the stored record. A missing record returns the zero value and found=false.
func (s Slot[T]) Load(ctx context.Context) (T, bool, error) {
	var v T
	raw, found, err := s.repo.Load(ctx, s.key)
	if err != nil {
		return v, false, fmt.Errorf("load %s: %w", s.key, err)
	}
	if !found {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return v, true, nil
}

func (s Slot[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.repo.Save(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

func (s Slot[T]) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("delete %s: %w", s.key, err)
	}
	return nil
}
