// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	globalLogger = zerolog.Nop()
	once         sync.Once
)

// InitLogging configures the global logger. Log lines go to stderr so they
// never mix with command output, and to logFilePath when set. Only the first
// call has any effect.
func InitLogging(level, logFilePath string) {
	once.Do(func() {
		globalLogger = New(os.Stderr, level, logFilePath)
		log.Logger = globalLogger
	})
}

// New builds a logger writing to w (and logFilePath when set) at level.
// Unknown levels fall back to warn.
func New(w io.Writer, level, logFilePath string) zerolog.Logger {
	writers := []io.Writer{w}

	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
		if err != nil {
			// The logger is not ready yet.
			os.Stderr.WriteString("Failed to open log file: " + err.Error() + "\n")
		} else {
			writers = append(writers, file)
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	multi := zerolog.MultiLevelWriter(writers...)
	return zerolog.New(multi).With().Timestamp().Logger().Level(lvl)
}

// WithLogger returns ctx carrying the global logger tagged with fields.
// Commands install it once so every log line names the command.
func WithLogger(ctx context.Context, fields map[string]interface{}) context.Context {
	l := globalLogger.With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// FromContext returns the logger carried by ctx, or the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &globalLogger
	}
	return l
}

// Debugf logs at debug level.
func Debugf(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Debug().Msgf(format, args...)
}

// Infof logs at info level.
func Infof(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Info().Msgf(format, args...)
}

// Warnf logs at warn level with err attached. err may be nil.
func Warnf(ctx context.Context, err error, format string, args ...interface{}) {
	FromContext(ctx).Warn().Err(err).Msgf(format, args...)
}
