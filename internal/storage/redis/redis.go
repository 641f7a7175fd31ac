// Package redis provides a Redis-backed implementation of the
// storage.SnapshotStore interface, for deployments where several server
// processes share one roster.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/mmynk/dropin/internal/models"
	"github.com/mmynk/dropin/internal/storage"
)

var _ storage.SnapshotStore = (*RedisStore)(nil)

// Options configures the connection.
type Options struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, e.g. "dropin:".
	Prefix string
}

// RedisStore keeps each item as a plain string key.
type RedisStore struct {
	client *goredis.Client
	prefix string
}

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, opts Options) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: client, prefix: opts.Prefix}, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// GetItem returns the value stored under key. ok is false if the key does
// not exist.
func (s *RedisStore) GetItem(ctx context.Context, key string) (value string, ok bool, err error) {
	value, err = s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value under key with no expiry.
func (s *RedisStore) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set item %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key.
func (s *RedisStore) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove item %s: %w", key, err)
	}
	return nil
}

// LoadRoster reads the roster snapshot.
func (s *RedisStore) LoadRoster(ctx context.Context) ([]models.Participant, error) {
	value, _, err := s.GetItem(ctx, storage.RosterKey)
	if err != nil {
		return nil, err
	}
	return storage.DecodeRoster(value)
}

// SaveRoster overwrites the roster snapshot.
func (s *RedisStore) SaveRoster(ctx context.Context, participants []models.Participant) error {
	value, err := storage.EncodeRoster(participants)
	if err != nil {
		return err
	}
	return s.SetItem(ctx, storage.RosterKey, value)
}
