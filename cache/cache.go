package cache

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/logger"
)

// A GenerateFunc produces the value for key on a cache miss.
// Returning false reports that key has no value; nothing is cached.
type GenerateFunc[T, X any] func(extra X, key string) (T, bool)

// A DisposeFunc releases the value paired to key as it leaves the cache.
// A DisposeFunc has exclusive access to value.
type DisposeFunc[T, X any] func(extra X, key string, value *T)

// A Cache memoizes up to a fixed number of generated values,
// evicting the least recently used one to make room.
//
// Values are generated outside of the lock guarding the structure of the Cache,
// so a slow generation only blocks callers asking for the same key.
// Concurrent misses on one key share a single generation.
type Cache[T, X any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	lru      *list.List // Front is the most recently used.

	gen   GenerateFunc[T, X]
	dis   DisposeFunc[T, X]
	extra X

	group  singleflight.Group
	logger logger.Logger
	store  Store[T]
}

var errAbsent = errors.New("absent")

// New constructs a *Cache holding at most capacity values.
//
// extra is handed to gen and dis on every call.
// dis may be nil.
// New returns ErrBadConfig if capacity is not positive or gen is nil.
func New[T, X any](capacity int, gen GenerateFunc[T, X], dis DisposeFunc[T, X], extra X, opts ...Option) (*Cache[T, X], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", writium.ErrBadConfig, capacity)
	}

	if gen == nil {
		return nil, fmt.Errorf("%w: no GenerateFunc", writium.ErrBadConfig)
	}

	s := &settings{logger: logger.Noop{}}
	for _, opt := range opts {
		opt(s)
	}

	c := &Cache[T, X]{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		lru:      list.New(),
		gen:      gen,
		dis:      dis,
		extra:    extra,
		logger:   s.logger,
	}

	if s.store != nil {
		store, ok := s.store.(Store[T])
		if !ok {
			return nil, fmt.Errorf("%w: store of %T cannot hold cached values", writium.ErrBadConfig, s.store)
		}
		c.store = store
	}

	return c, nil
}

// MustNew is like New but panics if the *Cache cannot be constructed.
func MustNew[T, X any](capacity int, gen GenerateFunc[T, X], dis DisposeFunc[T, X], extra X, opts ...Option) *Cache[T, X] {
	c, err := New(capacity, gen, dis, extra, opts...)
	if err != nil {
		panic(err)
	}

	return c
}

// Get is GetContext using context.Background.
func (c *Cache[T, X]) Get(key string) (*Handle[T], bool) {
	return c.GetContext(context.Background(), key)
}

// GetContext returns the *Handle to the value paired to key,
// generating the value if it is not cached.
//
// A hit marks key as the most recently used.
// On a miss, the configured Store is consulted before generating,
// and a generated value is saved to it.
// If the value cannot be generated, GetContext returns false and the Cache is unchanged.
func (c *Cache[T, X]) GetContext(ctx context.Context, key string) (*Handle[T], bool) {
	if h, ok := c.hit(key); ok {
		return h, true
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A flight that just finished may have inserted key.
		if h, ok := c.hit(key); ok {
			return h, nil
		}

		val, ok := c.load(ctx, key)
		if !ok {
			return nil, errAbsent
		}

		return c.insert(key, val), nil
	})
	if err != nil {
		c.logger.Debug("cache miss", &logger.LogContext{Data: map[string]any{"key": key}})
		return nil, false
	}

	return v.(*Handle[T]), true
}

// hit looks key up and bumps it to the front.
func (c *Cache[T, X]) hit(key string) (*Handle[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}

	c.lru.MoveToFront(el)
	return el.Value.(*Handle[T]), true
}

// load produces the value for key from the Store or the GenerateFunc.
func (c *Cache[T, X]) load(ctx context.Context, key string) (T, bool) {
	if c.store != nil {
		if val, ok := c.store.Get(ctx, key); ok {
			return val, true
		}
	}

	val, ok := c.gen(c.extra, key)
	if !ok {
		var zero T
		return zero, false
	}

	if c.store != nil {
		c.store.Set(ctx, key, val)
	}

	return val, true
}

// insert adds val as the most recently used value, evicting if full.
func (c *Cache[T, X]) insert(key string, val T) *Handle[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.lru.MoveToFront(el)
		h := el.Value.(*Handle[T])
		c.dispose(&Handle[T]{key: key, val: val})
		return h
	}

	for c.lru.Len() >= c.capacity {
		back := c.lru.Back()
		evicted := c.lru.Remove(back).(*Handle[T])
		delete(c.items, evicted.key)
		c.dispose(evicted)
		c.logger.Debug("cache evicted", &logger.LogContext{Data: map[string]any{"key": evicted.key}})
	}

	h := &Handle[T]{key: key, val: val}
	c.items[key] = c.lru.PushFront(h)
	return h
}

// dispose hands the value of h to the DisposeFunc with exclusive access.
func (c *Cache[T, X]) dispose(h *Handle[T]) {
	if c.dis == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c.dis(c.extra, h.key, &h.val)
}

// Capacity returns the most values c holds.
func (c *Cache[T, X]) Capacity() int { return c.capacity }

// Keys returns the cached keys, most recently used first.
func (c *Cache[T, X]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.lru.Len())
	for el := c.lru.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*Handle[T]).key)
	}

	return keys
}

// Len returns how many values c holds.
func (c *Cache[T, X]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

// Purge disposes of every cached value, least recently used first,
// then clears the Store, so values evicted before the purge are generated anew too.
// Purge returns how many values were disposed.
func (c *Cache[T, X]) Purge(ctx context.Context) int {
	c.mu.Lock()
	n := c.lru.Len()
	for el := c.lru.Back(); el != nil; el = c.lru.Back() {
		h := c.lru.Remove(el).(*Handle[T])
		delete(c.items, h.key)
		c.dispose(h)
	}
	c.mu.Unlock()

	if c.store != nil {
		c.store.Clear(ctx)
	}

	c.logger.Info("cache purged", &logger.LogContext{Data: map[string]any{"count": n}})
	return n
}
