package cache

import "github.com/xy-planning-network/writium/logger"

// An Option configures a *Cache.
type Option func(*settings)

type settings struct {
	logger logger.Logger
	store  any
}

// WithLogger sets the logger.Logger a *Cache reports misses, evictions and purges to.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore backs a *Cache with a Store consulted before generating a value.
// The Store must hold values of the same type as the *Cache.
func WithStore[T any](store Store[T]) Option {
	return func(s *settings) {
		if store != nil {
			s.store = store
		}
	}
}
