package ranger

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/logger"
)

const (
	defaultEnvFile = ".env"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLevel = logger.LogLevelInfo
	sentryDsnEnvVar = "SENTRY_DSN"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
	tlsCertFileEnvVar         = "TLS_CERT_FILE"
	tlsKeyFileEnvVar          = "TLS_KEY_FILE"
	corsOriginEnvVar          = "CORS_ORIGIN"
	rateLimitEnvVar           = "RATE_LIMIT"
	rateBurstEnvVar           = "RATE_BURST"

	// Blog defaults
	DefaultPostDir        = "post"
	postDirEnvVar         = "POST_DIR"
	DefaultStaticDir      = "static"
	staticDirEnvVar       = "STATIC_DIR"
	DefaultTemplateDir    = "template"
	templateDirEnvVar     = "TEMPLATE_DIR"
	digestsPerPageEnvVar  = "DIGESTS_PER_PAGE"
	cacheCapacityEnvVar   = "CACHE_CAPACITY"
	redisURLEnvVar        = "REDIS_URL"
	redisTTLEnvVar        = "REDIS_TTL"
	DefaultRedisTTL       = 24 * time.Hour
	jwtSecretEnvVar       = "JWT_SECRET"
	defaultCacheCapacity  = 64
	defaultDigestsPerPage = 10
)

// Config holds everything a writium app reads from its environment.
//
// Construct a Config with NewConfig and hand it to New.
type Config struct {
	Env      writium.Environment
	LogLevel logger.LogLevel

	// SentryDSN turns on shipping errors to Sentry.
	SentryDSN string

	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// TLSCertFile and TLSKeyFile serve HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// CORSOrigins are the origins allowed to make cross-origin requests.
	CORSOrigins []string

	// RateLimit is how many requests per second a single IP address can make,
	// in bursts of up to RateBurst.
	RateLimit int
	RateBurst int

	PostDir     string
	StaticDir   string
	TemplateDir string

	DigestsPerPage int
	CacheCapacity  int

	// RedisURL backs the article cache with Redis when set.
	RedisURL string
	RedisTTL time.Duration

	// JWTSecret guards admin Apis with bearer tokens when set.
	JWTSecret string
}

// NewConfig loads envFiles, or ".env" if it exists and none are named,
// and reads a Config from the environment.
//
// Variables already set in the environment take precedence over those in envFiles.
// NewConfig returns writium.ErrBadConfig if an env file cannot be loaded
// or the resulting Config is not valid.
func NewConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			envFiles = []string{defaultEnvFile}
		}
	}

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("%w: loading env files: %s", writium.ErrBadConfig, err)
		}
	}

	cfg := Config{
		Env:            writium.EnvVarOrEnv(environmentEnvVar, writium.Development),
		LogLevel:       envVarOrLogLevel(logLevelEnvVar, defaultLogLevel),
		SentryDSN:      os.Getenv(sentryDsnEnvVar),
		Host:           writium.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:           writium.EnvVarOrString(portEnvVar, DefaultPort),
		ReadTimeout:    writium.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout:   writium.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		IdleTimeout:    writium.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		TLSCertFile:    os.Getenv(tlsCertFileEnvVar),
		TLSKeyFile:     os.Getenv(tlsKeyFileEnvVar),
		CORSOrigins:    writium.EnvVarOrStrings(corsOriginEnvVar, nil),
		RateLimit:      writium.EnvVarOrInt(rateLimitEnvVar, 0),
		RateBurst:      writium.EnvVarOrInt(rateBurstEnvVar, 0),
		PostDir:        writium.EnvVarOrString(postDirEnvVar, DefaultPostDir),
		StaticDir:      writium.EnvVarOrString(staticDirEnvVar, DefaultStaticDir),
		TemplateDir:    writium.EnvVarOrString(templateDirEnvVar, DefaultTemplateDir),
		DigestsPerPage: writium.EnvVarOrInt(digestsPerPageEnvVar, defaultDigestsPerPage),
		CacheCapacity:  writium.EnvVarOrInt(cacheCapacityEnvVar, defaultCacheCapacity),
		RedisURL:       os.Getenv(redisURLEnvVar),
		RedisTTL:       writium.EnvVarOrDuration(redisTTLEnvVar, DefaultRedisTTL),
		JWTSecret:      os.Getenv(jwtSecretEnvVar),
	}

	if err := cfg.Valid(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Valid reports whether c can configure a writium app.
func (c Config) Valid() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: environment %q", writium.ErrBadConfig, c.Env)
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("%w: set both %s and %s to serve TLS", writium.ErrBadConfig, tlsCertFileEnvVar, tlsKeyFileEnvVar)
	}

	if c.PostDir == "" || c.StaticDir == "" || c.TemplateDir == "" {
		return fmt.Errorf("%w: post, static and template directories are required", writium.ErrBadConfig)
	}

	if c.CacheCapacity <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", writium.ErrBadConfig, cacheCapacityEnvVar, c.CacheCapacity)
	}

	if c.DigestsPerPage <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", writium.ErrBadConfig, digestsPerPageEnvVar, c.DigestsPerPage)
	}

	return nil
}

// Addr is the address the web server listens on.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Host + c.Port
	}

	return c.Host + ":" + c.Port
}

// BaseURL is the URL the web server is reached at.
func (c Config) BaseURL() *url.URL {
	scheme := "http"
	if c.ServesTLS() {
		scheme = "https"
	}

	return &url.URL{Scheme: scheme, Host: c.Addr()}
}

// ServesTLS reports whether the web server serves HTTPS.
func (c Config) ServesTLS() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// envVarOrLogLevel gets the environment variable from the provided key,
// creates a logger.LogLevel from the retrieved value,
// or returns the provided default logger.LogLevel
// if the value is an unknown logger.LogLevel.
func envVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	ll := logger.NewLogLevel(strings.ToUpper(os.Getenv(key)))
	if ll == logger.LogLevelUnk {
		return def
	}

	return ll
}
