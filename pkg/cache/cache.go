package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service defines the cache operations used for advisory caching of
// provider responses. A miss is never an error condition for callers;
// they fall through to the provider.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// GetTyped retrieves a key and unmarshals the JSON value into T.
func GetTyped[T any](ctx context.Context, c Service, key string) (T, bool) {
	var obj T
	if c == nil {
		return obj, false
	}
	var raw []byte
	if err := c.Get(ctx, key, &raw); err != nil {
		return obj, false
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return obj, false
	}
	return obj, true
}

// SetTyped marshals value as JSON and stores it under key.
func SetTyped(ctx context.Context, c Service, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}
