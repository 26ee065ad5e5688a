/*
Package logger provides logging functionality to a writium app by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2024/04/28 15:55:21 [DEBUG] writium/api/namespace.go:43 'api found: /articles' log_context: {"data":{"method":"GET"}}

The log context is a JSON-encoded [LogContext].
It allows for including additional data inessential to the message proper.

# SentryLogger

[SentryLogger] wraps a [ColorLogger] and reports the [LogContext] error of
warnings, errors and fatal messages to Sentry.
*/
package logger
