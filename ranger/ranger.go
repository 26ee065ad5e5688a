package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/blog"
	"github.com/xy-planning-network/writium/cache"
	"github.com/xy-planning-network/writium/http/resp"
	"github.com/xy-planning-network/writium/http/router"
	"github.com/xy-planning-network/writium/logger"
)

const (
	healthPath      = "/healthz"
	shutdownTimeout = 5 * time.Second
)

var errUnhealthy = api.NewError(http.StatusServiceUnavailable, "redis unreachable")

// A Ranger manages and exposes all components of a writium app to one another.
type Ranger struct {
	cfg Config

	ctx    context.Context
	cancel context.CancelFunc

	articles  *blog.Articles
	console   *Console
	l         logger.Logger
	responder *resp.Responder
	root      *api.Namespace
	router    *router.Router
	srv       *http.Server
	store     *cache.RedisStore[blog.Page]
}

// New constructs a *Ranger from cfg and the provided options.
//
// New builds the root Namespace, binding the blog Apis:
// articles, static files and, when enabled, the cache admin.
// Options supplied to New overwrite default configurations.
// New returns writium.ErrBadConfig if any component cannot be set up
// or an Api depends on one that is not bound.
func New(cfg Config, opts ...RangerOption) (*Ranger, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	r := &Ranger{cfg: cfg, ctx: context.Background()}
	followups := make([]OptFollowup, 0)
	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", writium.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if r.l == nil {
		r.l = defaultLogger(cfg)
	}

	r.ctx, r.cancel = context.WithCancel(r.ctx)

	var err error
	r.store, err = defaultStore(r.ctx, cfg, r.l)
	if err != nil {
		r.cancel()
		return nil, err
	}

	if err := r.build(followups); err != nil {
		r.cancel()
		if r.store != nil {
			r.store.Close()
		}

		return nil, err
	}

	return r, nil
}

// build wires the Api tree, router and server.
func (r *Ranger) build(followups []OptFollowup) error {
	var err error
	r.articles, err = defaultArticles(r.cfg, r.l, r.store)
	if err != nil {
		return fmt.Errorf("%w: %s", writium.ErrBadConfig, err)
	}

	admin, err := defaultAdmin(r.cfg, r.articles.Cache(), r.l)
	if err != nil {
		return fmt.Errorf("%w: %s", writium.ErrBadConfig, err)
	}

	r.root = api.NewNamespace(nil, api.WithLogger(r.l)).Bind(
		r.articles,
		blog.NewStatic(os.DirFS(r.cfg.StaticDir)),
	)
	if admin != nil {
		r.root.Bind(admin)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return fmt.Errorf("%w: %s", writium.ErrBadConfig, err)
		}
	}

	if err := api.CheckDependencies(r.root); err != nil {
		return fmt.Errorf("%w: %s", writium.ErrBadConfig, err)
	}

	r.responder = defaultResponder(r.l)
	r.router = router.New(r.cfg.Env, r.responder)
	r.router.OnEveryRequest(defaultMiddlewares(r.cfg, r.l)...)
	r.router.Handle(router.Route{Path: healthPath, Method: http.MethodGet, Handler: r.health})
	r.router.Mount(r.root)

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, r.cfg)
	}
	r.srv.Handler = r.router

	return nil
}

// health reports whether r can serve articles, answering 503 if Redis is configured but unreachable.
func (r *Ranger) health(w http.ResponseWriter, req *http.Request) {
	if r.store != nil {
		if err := r.store.Ping(req.Context()); err != nil {
			r.l.Warn("health check failed", &logger.LogContext{Error: err, Request: req})
			r.responder.Err(w, req, errUnhealthy)
			return
		}
	}

	res, err := api.NewResponse(http.StatusOK).WithJSON(map[string]any{
		"cached": r.articles.Cache().Len(),
		"status": "ok",
	})
	r.responder.Write(w, req, res, err)
}

// Articles returns the *blog.Articles bound to the root Namespace.
func (r *Ranger) Articles() *blog.Articles { return r.articles }

// Cancel stops Guide.
func (r *Ranger) Cancel() context.CancelFunc { return r.cancel }

// Config returns the Config r was constructed with.
func (r *Ranger) Config() Config { return r.cfg }

// EmitLogger returns the logger.Logger of the writium app.
func (r *Ranger) EmitLogger() logger.Logger { return r.l }

// Handler returns the http.Handler serving the root Namespace.
func (r *Ranger) Handler() http.Handler { return r.router }

// Root returns the root Namespace.
func (r *Ranger) Root() *api.Namespace { return r.root }

// Guide begins the web server, serving HTTPS if the Config names a certificate and key.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
//   - calling the context.CancelFunc returned by (*Ranger).Cancel
//   - the "close" console command
//   - os.Interrupt
//   - syscall.SIGHUP
//   - syscall.SIGINT
//   - syscall.SIGQUIT
//   - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	if r.console != nil {
		go func() {
			if err := r.console.Run(r.ctx); err != nil {
				r.l.Error("console stopped", &logger.LogContext{Error: err})
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if r.cfg.ServesTLS() {
			r.l.Info(fmt.Sprintf("running web server at https://%s", r.srv.Addr), nil)
			err = r.srv.ListenAndServeTLS(r.cfg.TLSCertFile, r.cfg.TLSKeyFile)
		} else {
			r.l.Info(fmt.Sprintf("running web server at http://%s", r.srv.Addr), nil)
			err = r.srv.ListenAndServe()
		}

		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
			r.cancel()
		}
	}()

	<-r.ctx.Done()
	if err := r.Shutdown(); err != nil {
		return err
	}

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// Shutdown shuts down the web server and closes connections to backing services.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	r.cancel()

	err := r.srv.Shutdown(shutdownCtx)
	if r.store != nil {
		if cerr := r.store.Close(); cerr != nil {
			r.l.Warn("could not close redis", &logger.LogContext{Error: cerr})
		}
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
