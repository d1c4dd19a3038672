package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface for Gauss. This allows users
// to provide their own logger implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for testing or when logging
// is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// OrNoOp returns l, or a NoOpLogger if l is nil. Components accept optional
// loggers and normalize through this helper.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOpLogger{}
	}
	return l
}

// LoggerConfig configures construction of a GaussLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
	SessionID string
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout}
}

// GaussLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods. It should be cheap to copy via With* methods.
type GaussLogger struct {
	logger    *slog.Logger
	level     LogLevel
	component string
	sessionID string
}

// NewLogger builds a GaussLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *GaussLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	return &GaussLogger{logger: slog.New(handler), level: cfg.Level, component: cfg.Component, sessionID: cfg.SessionID}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a copy bound to the logical component (team,
// workflow, plugin registry, agent).
func (l *GaussLogger) WithComponent(c string) *GaussLogger {
	nl := *l
	nl.component = c
	return &nl
}

// WithSession returns a copy bound to a session identifier.
func (l *GaussLogger) WithSession(sid string) *GaussLogger {
	nl := *l
	nl.sessionID = sid
	return &nl
}

func (l *GaussLogger) baseAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 2)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.sessionID != "" {
		attrs = append(attrs, slog.String("session_id", l.sessionID))
	}
	return attrs
}

func (l *GaussLogger) log(level slog.Level, allowed bool, msg string, extra ...slog.Attr) {
	if !allowed {
		return
	}
	attrs := append(l.baseAttrs(), extra...)
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Debug logs at debug level.
func (l *GaussLogger) Debug(msg string, args ...any) {
	if l.level <= LogLevelDebug {
		l.logger.Debug(msg, args...)
	}
}

// Info logs at info level.
func (l *GaussLogger) Info(msg string, args ...any) {
	if l.level <= LogLevelInfo {
		l.logger.Info(msg, args...)
	}
}

// Warn logs at warn level.
func (l *GaussLogger) Warn(msg string, args ...any) {
	if l.level <= LogLevelWarn {
		l.logger.Warn(msg, args...)
	}
}

// Error logs at error level.
func (l *GaussLogger) Error(msg string, args ...any) {
	if l.level <= LogLevelError {
		l.logger.Error(msg, args...)
	}
}

// LogTeamRun records aggregate team run metrics.
func (l *GaussLogger) LogTeamRun(team, strategy string, agents int, dur time.Duration, err error) {
	attrs := []slog.Attr{
		slog.String("team", team),
		slog.String("strategy", strategy),
		slog.Int("agent_count", agents),
		slog.Duration("duration", dur),
		slog.Bool("success", err == nil),
	}
	level, allowed := slog.LevelInfo, l.level <= LogLevelInfo
	msg := "Team run completed"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level, allowed = slog.LevelError, l.level <= LogLevelError
		msg = "Team run failed"
	}
	l.log(level, allowed, msg, attrs...)
}

// LogWorkflowRun records aggregate workflow run metrics.
func (l *GaussLogger) LogWorkflowRun(steps, completed int, dur time.Duration, err error) {
	attrs := []slog.Attr{
		slog.Int("step_count", steps),
		slog.Int("completed_count", completed),
		slog.Duration("duration", dur),
		slog.Bool("success", err == nil),
	}
	level, allowed := slog.LevelInfo, l.level <= LogLevelInfo
	msg := "Workflow run completed"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level, allowed = slog.LevelError, l.level <= LogLevelError
		msg = "Workflow run failed"
	}
	l.log(level, allowed, msg, attrs...)
}

// LogPluginInit records a plugin lifecycle transition.
func (l *GaussLogger) LogPluginInit(plugin, version string, err error) {
	attrs := []slog.Attr{
		slog.String("plugin", plugin),
		slog.String("version", version),
		slog.Bool("success", err == nil),
	}
	level, allowed := slog.LevelInfo, l.level <= LogLevelInfo
	msg := "Plugin initialized"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level, allowed = slog.LevelError, l.level <= LogLevelError
		msg = "Plugin initialization failed"
	}
	l.log(level, allowed, msg, attrs...)
}

// LogModelCall records model call latency, token usage and success.
func (l *GaussLogger) LogModelCall(model string, tokens int64, dur time.Duration, err error) {
	attrs := []slog.Attr{
		slog.String("model", model),
		slog.Int64("token_count", tokens),
		slog.Duration("duration", dur),
		slog.Bool("success", err == nil),
	}
	level, allowed := slog.LevelInfo, l.level <= LogLevelInfo
	msg := "Model call completed"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level, allowed = slog.LevelError, l.level <= LogLevelError
		msg = "Model call failed"
	}
	l.log(level, allowed, msg, attrs...)
}
