package logger

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level       string // debug, info, warn, error, fatal
	Format      string // json, console
	Output      io.Writer
	EnableColor bool
}

var base zerolog.Logger

func init() {
	// Sensible default until Initialize runs
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Initialize configures the global logger
func Initialize(cfg Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.EnableColor,
		}
	}

	base = zerolog.New(output).With().Timestamp().Logger()
	log.Logger = base
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// emit attaches the caller and optional context fields, then logs.
func emit(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	pc, file, line, _ := runtime.Caller(2)
	event = event.Str("caller", zerolog.CallerMarshalFunc(pc, file, line))
	if len(fields) > 0 {
		for k, v := range fields[0] {
			event = event.Interface(k, v)
		}
	}
	event.Msg(msg)
}

// Debug logs a debug message with optional context fields
func Debug(msg string, fields ...map[string]interface{}) {
	emit(base.Debug(), msg, fields)
}

// Info logs an info message with optional context fields
func Info(msg string, fields ...map[string]interface{}) {
	emit(base.Info(), msg, fields)
}

// Warn logs a warning message with optional context fields
func Warn(msg string, fields ...map[string]interface{}) {
	emit(base.Warn(), msg, fields)
}

// Error logs an error message with optional context fields
func Error(msg string, err error, fields ...map[string]interface{}) {
	emit(base.Error().Err(err), msg, fields)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, err error, fields ...map[string]interface{}) {
	emit(base.Fatal().Err(err), msg, fields)
}

// Logger is a scoped logger carrying preset context fields,
// typically one per HTTP request.
type Logger struct {
	zl zerolog.Logger
}

// Get returns a logger bound to the current global configuration
func Get() *Logger {
	return &Logger{zl: base}
}

// WithContext returns a logger with the given fields attached to every entry
func WithContext(fields map[string]interface{}) *Logger {
	ctx := base.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

// With returns a child logger with additional context fields
func (l *Logger) With(fields map[string]interface{}) *Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	emit(l.zl.Error().Err(err), msg, fields)
}
