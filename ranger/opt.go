package ranger

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components New builds after options run,
// and thus an OptFollowup can be returned in order to be called once those exist.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithApis is an example of the second.
// The Apis are bound to the root Namespace only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithApis binds apis to the root Namespace after the blog Apis.
func WithApis(apis ...api.Api) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.root.Bind(apis...)
			for _, a := range apis {
				if a != nil {
					rng.l.Debug(fmt.Sprintf("binding api %s", api.FullName(a.Name())), nil)
				}
			}

			return nil
		}, nil
	}
}

// WithConsole reads console commands from in while the web server runs:
//
//   - close: shuts down the web server
//   - recache: purges the article cache
//   - remove_cache: same as recache
func WithConsole(in io.Reader) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			c := NewConsole(in, rng.l)
			c.Handle("close", func(context.Context) { rng.cancel() })

			purge := func(ctx context.Context) {
				n := rng.articles.Cache().Purge(ctx)
				rng.l.Info(fmt.Sprintf("purged %d articles", n), nil)
			}
			c.Handle("recache", purge)
			c.Handle("remove_cache", purge)

			rng.console = c
			return nil
		}, nil
	}
}

// WithContext sets the parent of the context.Context the *Ranger runs in.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("nil context.Context")
		}

		rng.ctx = ctx
		return nil, nil
	}
}

// WithLogger sets the logger.Logger the writium app logs through.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if l == nil {
			return nil, fmt.Errorf("nil logger.Logger")
		}

		rng.l = l
		rng.l.Debug(fmt.Sprintf("using logger %T", l), nil)
		return nil, nil
	}
}

// WithServer sets the *http.Server the writium app runs on.
// Its Handler is replaced with the router New builds.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if s == nil {
			return nil, fmt.Errorf("nil *http.Server")
		}

		rng.srv = s
		return nil, nil
	}
}
