package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Scoped namespaces a shared cache. Every key is prefixed, and Clear
// removes only keys under the prefix.
//
// Example usage:
//
//	// Tiles of one scene, kept apart from other scenes on the same server
//	tiles := NewScoped(shared, "scene:"+Hash(sceneBytes)[:12]+":")
type Scoped struct {
	inner  Cache
	prefix string

	mu   sync.Mutex
	keys map[string]struct{}
}

// NewScoped wraps inner with a key prefix. A nil inner disables caching.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix, keys: make(map[string]struct{})}
}

// Prefix returns the scope's key prefix.
func (s *Scoped) Prefix() string { return s.prefix }

func (s *Scoped) key(k string) string {
	if strings.HasPrefix(k, s.prefix) {
		return k
	}
	return s.prefix + k
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	k := s.key(key)
	if err := s.inner.Set(ctx, k, data, ttl); err != nil {
		return err
	}
	s.mu.Lock()
	s.keys[k] = struct{}{}
	s.mu.Unlock()
	return nil
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	k := s.key(key)
	s.mu.Lock()
	delete(s.keys, k)
	s.mu.Unlock()
	return s.inner.Delete(ctx, k)
}

// Clear deletes the keys this scope has written. A backend that can clear
// by prefix does so instead, which also catches keys written by earlier
// processes.
func (s *Scoped) Clear(ctx context.Context) error {
	if pc, ok := s.inner.(interface {
		ClearPrefix(ctx context.Context, prefix string) error
	}); ok {
		s.mu.Lock()
		clear(s.keys)
		s.mu.Unlock()
		return pc.ClearPrefix(ctx, s.prefix)
	}

	s.mu.Lock()
	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	clear(s.keys)
	s.mu.Unlock()

	for _, k := range keys {
		if err := s.inner.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the shared cache.
func (s *Scoped) Close() error { return s.inner.Close() }

var _ Cache = (*Scoped)(nil)
