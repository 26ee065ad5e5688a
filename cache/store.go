package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/logger"
)

// scanCount is how many keys Clear asks Redis for and deletes at a time.
const scanCount = 100

var (
	_ Store[string] = NewMapStore[string]()
	_ Store[string] = (*RedisStore[string])(nil)
)

// A Store keeps generated values beyond the lifetime of a *Cache entry,
// e.g. to share them between processes or survive restarts.
//
// A Store reports false from Get when key does not match a stored value
// or the value cannot be retrieved.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, val T)
	Delete(ctx context.Context, key string)

	// Clear removes every stored value.
	Clear(ctx context.Context)
}

// A MapStore keeps values in a map.
//
// Server restarts reset a MapStore.
type MapStore[T any] struct {
	mu   sync.Mutex
	vals map[string]T
}

// NewMapStore constructs an empty *MapStore.
func NewMapStore[T any]() *MapStore[T] {
	return &MapStore[T]{vals: make(map[string]T)}
}

// Get retrieves the value paired to key.
func (m *MapStore[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, false
	default:
		m.mu.Lock()
		defer m.mu.Unlock()

		v, ok := m.vals[key]
		return v, ok
	}
}

// Set pairs val to key.
func (m *MapStore[T]) Set(ctx context.Context, key string, val T) {
	select {
	case <-ctx.Done():
		return
	default:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.vals[key] = val
	}
}

// Delete removes the value paired to key.
func (m *MapStore[T]) Delete(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.vals, key)
}

// Clear removes every value.
func (m *MapStore[T]) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.vals = make(map[string]T)
}

// A RedisStoreOption configures a *RedisStore.
type RedisStoreOption func(*redisSettings)

type redisSettings struct {
	logger logger.Logger
}

// WithStoreLogger sets the logger.Logger a *RedisStore warns through
// when values cannot be encoded or Redis commands fail.
func WithStoreLogger(l logger.Logger) RedisStoreOption {
	return func(s *redisSettings) {
		if l != nil {
			s.logger = l
		}
	}
}

// A RedisStore connects to a Redis backend, storing values gob encoded.
type RedisStore[T any] struct {
	client *redis.Client
	logger logger.Logger
	prefix string
	ttl    time.Duration
}

// NewRedisStore constructs a *RedisStore with the options passed in.
//
// Keys are stored under prefix and expire after ttl; a ttl of zero never expires.
func NewRedisStore[T any](opts *redis.Options, prefix string, ttl time.Duration, storeOpts ...RedisStoreOption) *RedisStore[T] {
	s := &redisSettings{logger: logger.Noop{}}
	for _, opt := range storeOpts {
		opt(s)
	}

	return &RedisStore[T]{client: redis.NewClient(opts), logger: s.logger, prefix: prefix, ttl: ttl}
}

// NewRedisStoreFromURL is like NewRedisStore, parsing options from a redis:// URL.
func NewRedisStoreFromURL[T any](url, prefix string, ttl time.Duration, storeOpts ...RedisStoreOption) (*RedisStore[T], error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", writium.ErrBadConfig, err)
	}

	return NewRedisStore[T](opts, prefix, ttl, storeOpts...), nil
}

// Ping checks the connection to the Redis backend.
func (r *RedisStore[T]) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the connection to the Redis backend.
func (r *RedisStore[T]) Close() error { return r.client.Close() }

// Get retrieves the value paired to key from the Redis backend.
func (r *RedisStore[T]) Get(ctx context.Context, key string) (T, bool) {
	var val T
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		return val, false
	}

	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&val); err != nil {
		return val, false
	}

	return val, true
}

// Set saves val by pairing it to key in the Redis backend.
func (r *RedisStore[T]) Set(ctx context.Context, key string, val T) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(val); err != nil {
		r.warn("could not encode value", key, err)
		return
	}

	if err := r.client.Set(ctx, r.prefix+key, buf.Bytes(), r.ttl).Err(); err != nil {
		r.warn("could not save value to redis", key, err)
	}
}

// Delete removes the value paired to key from the Redis backend.
func (r *RedisStore[T]) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.warn("could not delete value from redis", key, err)
	}
}

// Clear removes every key under the prefix of r from the Redis backend.
func (r *RedisStore[T]) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanCount).Iterator()
	keys := make([]string, 0, scanCount)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanCount {
			r.del(ctx, keys)
			keys = keys[:0]
		}
	}

	if err := iter.Err(); err != nil {
		r.warn("could not scan redis", r.prefix+"*", err)
	}

	if len(keys) > 0 {
		r.del(ctx, keys)
	}
}

func (r *RedisStore[T]) del(ctx context.Context, keys []string) {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.warn("could not clear redis", r.prefix+"*", err)
	}
}

func (r *RedisStore[T]) warn(msg, key string, err error) {
	r.logger.Warn(msg, &logger.LogContext{Error: err, Data: map[string]any{"key": key}})
}
