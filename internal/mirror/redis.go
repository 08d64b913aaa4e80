package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func NewRedisMirror(client *redis.Client, sessionID string) *RedisMirror {
	return &RedisMirror{
		client:    client,
		sessionID: sessionID,
	}
}

// RedisMirror keys every entry by session so concurrent storefront sessions do
// not clobber each other's checkout progress. Entries have no TTL: the cart
// survives until explicitly cleared.
type RedisMirror struct {
	client    *redis.Client
	sessionID string
}

func (m *RedisMirror) Load(ctx context.Context, key string, v any) error {
	data, err := m.client.Get(ctx, m.storageKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err2 := json.Unmarshal(data, v); err2 != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err2)
	}
	return nil
}

func (m *RedisMirror) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}

	if err2 := m.client.Set(ctx, m.storageKey(key), data, 0).Err(); err2 != nil {
		return fmt.Errorf("redis set failed: %w", err2)
	}
	return nil
}

func (m *RedisMirror) Delete(ctx context.Context, key string) error {
	if err := m.client.Del(ctx, m.storageKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (m *RedisMirror) storageKey(key string) string {
	return fmt.Sprintf("storefront:%s:%s", m.sessionID, key)
}
