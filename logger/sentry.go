package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"

	"github.com/xy-planning-network/writium"
)

// sentryLevels maps the LogLevels a SentryLogger reports onto Sentry levels.
var sentryLevels = map[LogLevel]sentry.Level{
	LogLevelWarn:  sentry.LevelWarning,
	LogLevelError: sentry.LevelError,
	LogLevelFatal: sentry.LevelFatal,
}

// A SentryLogger writes logs through a SkipLogger
// and reports warnings and worse carrying an error to Sentry,
// tagged with the request ID of the request being routed.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger constructs a SentryLogger based off the provided ColorLogger.
//
// If Sentry cannot be initialized, the error is logged and tl returns unchanged.
func NewSentryLogger(tl *ColorLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  tl.env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		tl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return tl
	}

	return &SentryLogger{l: tl.AddSkip(1 + tl.Skip())}
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
func (sl *SentryLogger) AddSkip(i int) SkipLogger { return &SentryLogger{l: sl.l.AddSkip(i)} }

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.l.Info(msg, ctx) }

func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	if sl.report(LogLevelWarn, ctx) {
		sl.l.Warn(msg, ctx)
	}
}

func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	if sl.report(LogLevelError, ctx) {
		sl.l.Error(msg, ctx)
	}
}

func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	if sl.report(LogLevelFatal, ctx) {
		sl.l.Fatal(msg, ctx)
	}
}

// LogLevel returns the LogLevel set for the SentryLogger.
func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (sl *SentryLogger) Skip() int { return sl.l.Skip() }

// report sends ctx.Error to Sentry if level is enabled,
// reporting whether level is enabled at all.
func (sl *SentryLogger) report(level LogLevel, ctx *LogContext) bool {
	if sl.l.LogLevel() > level {
		return false
	}

	if ctx == nil || ctx.Error == nil {
		return true
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
			if id, ok := ctx.Request.Context().Value(writium.RequestIDKey).(string); ok {
				scope.SetTag("request_id", id)
			}
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		scope.SetLevel(sentryLevels[level])
		sentry.CaptureException(ctx.Error)
	})

	return true
}
