package ranger

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"golang.org/x/time/rate"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/auth"
	"github.com/xy-planning-network/writium/blog"
	"github.com/xy-planning-network/writium/cache"
	"github.com/xy-planning-network/writium/http/middleware"
	"github.com/xy-planning-network/writium/http/resp"
	"github.com/xy-planning-network/writium/http/template"
	"github.com/xy-planning-network/writium/logger"
)

const (
	// AdminScope is the scope a token must grant to reach the admin Apis.
	AdminScope = "admin"

	redisPagePrefix = "writium:page:"
)

// defaultLogger constructs a logger.Logger configured for use in the application.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.New(logger.WithEnv(cfg.Env.String()), logger.WithLevel(cfg.LogLevel))
	l.Debug("setting up app logger", nil)
	if cfg.SentryDSN != "" {
		sl := logger.NewSentryLogger(l, cfg.SentryDSN)
		sl.Debug("using SentryLogger for app logger", nil)
		return sl
	}

	return l
}

// defaultParser constructs a *template.Parse rendering blog pages.
//
// Templates in the template directory override the bundled ones.
// defaultParser makes available these functions in an HTML template:
//
//   - "asset"
//   - "env"
//   - "formatDate"
//   - "isDevelopment"
//   - "nonce"
//   - "rootUrl"
func defaultParser(cfg Config) *template.Parse {
	p := template.NewParser(
		template.WithFS(os.DirFS(cfg.TemplateDir)),
		template.WithFn(template.AssetURI(os.DirFS(cfg.StaticDir), "static")),
		template.WithFn(template.Env(cfg.Env)),
		template.WithFn(template.FormatDate("")),
		template.WithFn(template.Nonce()),
		template.WithFn(template.RootUrl(cfg.BaseURL())),
	)
	p.AddFn("isDevelopment", cfg.Env.IsDevelopment)

	return p
}

// defaultStore connects to Redis if REDIS_URL is set.
// A nil *cache.RedisStore returns otherwise.
func defaultStore(ctx context.Context, cfg Config, l logger.Logger) (*cache.RedisStore[blog.Page], error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	store, err := cache.NewRedisStoreFromURL[blog.Page](cfg.RedisURL, redisPagePrefix, cfg.RedisTTL, cache.WithStoreLogger(l))
	if err != nil {
		return nil, err
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("%w: could not reach redis: %s", writium.ErrBadConfig, err)
	}

	l.Debug("using redis for article cache", nil)
	return store, nil
}

// defaultArticles constructs the *blog.Articles serving the post directory.
func defaultArticles(cfg Config, l logger.Logger, store *cache.RedisStore[blog.Page]) (*blog.Articles, error) {
	opts := []blog.ArticlesOptFn{
		blog.WithCapacity(cfg.CacheCapacity),
		blog.WithDigestsPerPage(cfg.DigestsPerPage),
		blog.WithLogger(l),
	}

	if store != nil {
		opts = append(opts, blog.WithStore(store))
	}

	return blog.NewArticles(os.DirFS(cfg.PostDir), defaultParser(cfg), opts...)
}

// defaultAdmin guards the cache admin Api with JWT_SECRET.
//
// Without JWT_SECRET, the admin Api is only bound unguarded in development;
// everywhere else no admin Api returns.
func defaultAdmin(cfg Config, pages blog.PageCache, l logger.Logger) (api.Api, error) {
	admin := blog.NewAdmin(pages)
	if cfg.JWTSecret == "" {
		if cfg.Env.IsDevelopment() {
			l.Warn("admin api is unguarded, set "+jwtSecretEnvVar+" to guard it", nil)
			return admin, nil
		}

		l.Info("admin api is disabled, set "+jwtSecretEnvVar+" to enable it", nil)
		return nil, nil
	}

	svc, err := auth.NewService(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	return auth.Guard(admin, svc, AdminScope, l), nil
}

// defaultMiddlewares constructs the stack every request passes through, outermost first.
func defaultMiddlewares(cfg Config, l logger.Logger) []middleware.Adapter {
	return []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l, "jwt"),
		middleware.ForceHTTPS(cfg.Env),
		middleware.CORS(cfg.CORSOrigins...),
		middleware.RateLimit(middleware.NewVisitors(rate.Limit(cfg.RateLimit), cfg.RateBurst)),
	}
}

// defaultResponder configures the *resp.Responder writing routing results.
func defaultResponder(l logger.Logger) *resp.Responder {
	return resp.NewResponder(
		resp.WithLogger(l),
		resp.WithInjector(resp.DefaultInjector{Keys: []writium.Key{writium.RequestIDKey, writium.IpAddrKey}}),
	)
}

// defaultServer constructs an *http.Server listening on the configured address.
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
