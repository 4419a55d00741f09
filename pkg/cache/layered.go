package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache reads through a fast local layer before the remote one.
// Writes and deletes go to both layers; a remote failure does not undo
// the local write since the data here is advisory.
type LayeredCache struct {
	local  Service
	remote Service
}

// NewLayeredCache combines a local and a remote cache. Remote may be nil,
// in which case the layered cache degrades to local-only.
func NewLayeredCache(local, remote Service) *LayeredCache {
	return &LayeredCache{local: local, remote: remote}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := lc.local.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	if lc.remote != nil {
		_ = lc.remote.Set(ctx, key, value, expiration)
	}
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	err := lc.local.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) || lc.remote == nil {
		return err
	}

	if err := lc.remote.Get(ctx, key, dest); err != nil {
		return err
	}

	// Promote the remote hit so the next read stays local.
	if b, ok := dest.(*[]byte); ok {
		_ = lc.local.Set(ctx, key, *b, time.Minute)
	}
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	err := lc.local.Delete(ctx, keys...)
	if lc.remote != nil {
		if rerr := lc.remote.Delete(ctx, keys...); err == nil {
			err = rerr
		}
	}
	return err
}

func (lc *LayeredCache) Close() error {
	err := lc.local.Close()
	if lc.remote != nil {
		if rerr := lc.remote.Close(); err == nil {
			err = rerr
		}
	}
	return err
}
