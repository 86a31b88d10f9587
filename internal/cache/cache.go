// Package cache provides small disk-backed key/value stores on top of gache.
package cache

import (
	"sync"
	"time"

	"github.com/liveurl/liveurl/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type entries[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// Cacher is a thread-safe map persisted as one JSON file.
// The whole file expires at once after its lifetime.
type Cacher[K comparable, T any] struct {
	internal   *gache.Cache[*entries[K, T]]
	keyWrapper func(K) K
	mu         sync.RWMutex
}

// New creates a cacher stored at path. A zero lifetime never expires.
// keyWrapper normalizes keys and may be nil.
func New[K comparable, T any](path string, lifetime time.Duration, keyWrapper func(K) K) *Cacher[K, T] {
	if keyWrapper == nil {
		keyWrapper = func(k K) K { return k }
	}

	return &Cacher[K, T]{
		internal: gache.New[*entries[K, T]](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: filesystem.Gache(),
		}),
		keyWrapper: keyWrapper,
	}
}

// Get retrieves the value stored under key.
func (c *Cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Entries[c.keyWrapper(key)]; ok {
		return mo.Some(value)
	}

	return mo.None[T]()
}

// Set stores value under key.
func (c *Cacher[K, T]) Set(key K, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Entries == nil {
		data = &entries[K, T]{Entries: make(map[K]T)}
	}

	data.Entries[c.keyWrapper(key)] = value
	return c.internal.Set(data)
}

// Delete removes key.
func (c *Cacher[K, T]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil {
		return nil
	}

	delete(data.Entries, c.keyWrapper(key))
	return c.internal.Set(data)
}
