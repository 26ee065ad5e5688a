/*
Package ranger initializes and manages a writium blog with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a [Config] read by [NewConfig].

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000).
Stop that web server with [*Ranger.Shutdown],
call the context.CancelFunc returned by [*Ranger.Cancel],
type "close" into the console set with [WithConsole],
or send a signal [*Ranger.Guide] listens for.

Besides the Api tree, the web server answers GET /healthz,
which fails with a 503 while a configured Redis cannot be reached.

# Configuration

A developer configures a writium blog through environment variables.
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - CACHE_CAPACITY: how many rendered articles to keep in memory; default: 64
  - CORS_ORIGIN: comma-separated origins allowed to make cross-origin requests
  - DIGESTS_PER_PAGE: how many articles an index page lists; default: 10
  - ENVIRONMENT: the environment the application is running in; default: DEVELOPMENT; cf. [writium.Environment]
  - HOST: the host the application is running on; default: localhost
  - JWT_SECRET: the key signing tokens for the admin Apis; without it, admin Apis are only served, unguarded, in DEVELOPMENT
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - POST_DIR: the directory holding one directory per article; default: post
  - RATE_BURST: how many requests a single IP address can burst; default: 20
  - RATE_LIMIT: how many requests per second a single IP address can make; default: 5
  - REDIS_URL: a redis:// URL backing the article cache with Redis
  - REDIS_TTL: how long - as understood by [time.ParseDuration] - articles stay in Redis; default: 24h
  - SENTRY_DSN: ships errors to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - STATIC_DIR: the directory static assets are served from under /static; default: static
  - TEMPLATE_DIR: the directory holding templates overriding the bundled ones; default: template
  - TLS_CERT_FILE: the certificate to serve HTTPS with; requires TLS_KEY_FILE
  - TLS_KEY_FILE: the private key to serve HTTPS with; requires TLS_CERT_FILE
*/
package ranger
