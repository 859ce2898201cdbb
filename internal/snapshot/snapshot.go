// Package snapshot keeps the last listed copy of each collection in Redis
// so the CLI can print it without reaching the backend.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client from a redis:// URL or a bare host:port and
// pings it.
func Connect(ctx context.Context, url string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	if db != 0 {
		opts.DB = db
	}
	opts.PoolSize = 4

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("snapshot: redis ping: %w", err)
	}
	slog.Debug("connected to redis", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}

type Store struct {
	rdb redis.Cmdable
	ttl time.Duration
	now func() time.Time
}

func New(rdb redis.Cmdable, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl, now: time.Now}
}

// Snapshot is one saved collection.
type Snapshot[T any] struct {
	SavedAt time.Time `json:"saved_at"`
	Items   []T       `json:"items"`
}

func key(name string) string {
	return "snapshot:" + name
}

// Save stores items under name, replacing any previous snapshot.
func Save[T any](ctx context.Context, s *Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(Snapshot[T]{SavedAt: s.now().UTC(), Items: items})
	if err != nil {
		return fmt.Errorf("snapshot: marshal %s: %w", name, err)
	}
	if err := s.rdb.Set(ctx, key(name), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", name, err)
	}
	return nil
}

// Load returns the snapshot saved under name. found is false when there is
// none or it expired.
func Load[T any](ctx context.Context, s *Store, name string) (snap Snapshot[T], found bool, err error) {
	data, err := s.rdb.Get(ctx, key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("snapshot: load %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return snap, false, fmt.Errorf("snapshot: decode %s: %w", name, err)
	}
	return snap, true, nil
}

func (s *Store) Clear(ctx context.Context, name string) error {
	if err := s.rdb.Del(ctx, key(name)).Err(); err != nil {
		return fmt.Errorf("snapshot: clear %s: %w", name, err)
	}
	return nil
}
