// Package redisstore keeps kvstore records in Redis so several storedesk
// terminals can share one persisted session.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/storedesk/kvstore"
	"github.com/redis/go-redis/v9"
)

var _ kvstore.Repo = (*Repo)(nil)

var ErrRedisNotReady = errors.New("redis is not ready")

type Repo struct {
	client redis.UniversalClient
	prefix string
}

func New(client redis.UniversalClient, prefix string) *Repo {
	return &Repo{client: client, prefix: prefix}
}

// Connect parses the connection URL and pings the server, retrying until
// attempts are exhausted or ctx is done.
func Connect(ctx context.Context, url string, attempts int, interval time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("[redisstore.Connect] parse url: %w", err)
	}
	if attempts < 1 {
		attempts = 1
	}

	for range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(interval):
		}
	}
	return nil, ErrRedisNotReady
}

func (r *Repo) key(key string) (string, error) {
	if key == "" {
		return "", kvstore.ErrEmptyKey
	}
	return r.prefix + key, nil
}

func (r *Repo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	k, err := r.key(key)
	if err != nil {
		return nil, false, err
	}
	b, err := r.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Repo) Save(ctx context.Context, key string, value []byte) error {
	k, err := r.key(key)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, k, value, 0).Err()
}

func (r *Repo) Delete(ctx context.Context, key string) error {
	k, err := r.key(key)
	if err != nil {
		return err
	}
	return r.client.Del(ctx, k).Err()
}
