package logger

// Noop is a Logger that writes nothing.
// Packages default to it when no Logger is configured.
type Noop struct{}

func (Noop) Debug(string, *LogContext) {}
func (Noop) Error(string, *LogContext) {}
func (Noop) Fatal(string, *LogContext) {}
func (Noop) Info(string, *LogContext)  {}
func (Noop) Warn(string, *LogContext)  {}
func (Noop) LogLevel() LogLevel        { return LogLevelUnk }
