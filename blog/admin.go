package blog

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/writium/api"
)

// A PageCache is a cache Admin can inspect and purge,
// e.g. the one returned by (*Articles).Cache.
type PageCache interface {
	Capacity() int
	Keys() []string
	Len() int
	Purge(ctx context.Context) int
}

// CacheStats describes the contents of a PageCache.
type CacheStats struct {
	Capacity int      `json:"capacity"`
	Len      int      `json:"len"`
	Keys     []string `json:"keys"`
}

// Admin manages the article cache under "/admin/cache":
//
//	GET    /admin/cache  CacheStats as JSON
//	DELETE /admin/cache  purges the cache, reporting how many pages were dropped
//
// Wrap Admin with auth.Guard in any environment reachable by the public.
type Admin struct {
	pages PageCache
}

// NewAdmin constructs an *Admin over pages.
func NewAdmin(pages PageCache) *Admin {
	return &Admin{pages: pages}
}

// Name implements api.Api.
func (ad *Admin) Name() []string { return []string{"admin", "cache"} }

// Dependencies implements api.Dependent.
func (ad *Admin) Dependencies() [][]string {
	return [][]string{{"articles"}}
}

// Get implements api.Getter.
func (ad *Admin) Get(req *api.Request) (*api.Response, error) {
	if req.Len() > 0 {
		return nil, api.ErrApiNotFound
	}

	return api.NewResponse(http.StatusOK).WithJSON(CacheStats{
		Capacity: ad.pages.Capacity(),
		Len:      ad.pages.Len(),
		Keys:     ad.pages.Keys(),
	})
}

// Delete implements api.Deleter.
func (ad *Admin) Delete(req *api.Request) (*api.Response, error) {
	if req.Len() > 0 {
		return nil, api.ErrApiNotFound
	}

	n := ad.pages.Purge(req.Context())
	return api.NewResponse(http.StatusOK).WithJSON(map[string]int{"purged": n})
}
