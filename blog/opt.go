package blog

import (
	"github.com/xy-planning-network/writium/cache"
	"github.com/xy-planning-network/writium/logger"
)

const (
	// DefaultCapacity is how many rendered pages Articles keeps by default.
	DefaultCapacity = 64

	// DefaultDigestsPerPage is how many digests an index page lists by default.
	DefaultDigestsPerPage = 10
)

// An ArticlesOptFn configures *Articles when constructing it.
type ArticlesOptFn func(*articlesConfig)

type articlesConfig struct {
	capacity int
	logger   logger.Logger
	perPage  int
	store    cache.Store[Page]
}

// WithCapacity sets how many rendered pages are cached.
// Non-positive values are ignored.
func WithCapacity(n int) ArticlesOptFn {
	return func(c *articlesConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithDigestsPerPage sets how many digests an index page lists.
// Non-positive values are ignored.
func WithDigestsPerPage(n int) ArticlesOptFn {
	return func(c *articlesConfig) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithLogger sets the logger.Logger *Articles reports failed renders to.
func WithLogger(l logger.Logger) ArticlesOptFn {
	return func(c *articlesConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStore backs the cache of rendered pages with store,
// e.g. a *cache.RedisStore shared by several writium processes.
func WithStore(store cache.Store[Page]) ArticlesOptFn {
	return func(c *articlesConfig) {
		c.store = store
	}
}
