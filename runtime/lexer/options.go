package lexer

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// LexerOpt represents a lexer configuration option. Options only control
// observability; they never change which tokens are produced.
type LexerOpt func(*LexerConfig)

// TelemetryMode controls telemetry collection
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token counts only
	TelemetryTiming                      // Token counts + timing per type
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	telemetry TelemetryMode
	logger    *slog.Logger
}

// WithTelemetry sets the telemetry mode
func WithTelemetry(mode TelemetryMode) LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = mode
	}
}

// WithTelemetryBasic enables basic telemetry (token counts only)
func WithTelemetryBasic() LexerOpt {
	return WithTelemetry(TelemetryBasic)
}

// WithTelemetryTiming enables timing telemetry (counts + timing per type)
func WithTelemetryTiming() LexerOpt {
	return WithTelemetry(TelemetryTiming)
}

// WithLogger traces every produced token at debug level
func WithLogger(logger *slog.Logger) LexerOpt {
	return func(c *LexerConfig) {
		c.logger = logger
	}
}

// TokenTelemetry holds per-token type telemetry
type TokenTelemetry struct {
	Type      TokenType
	Count     int
	TotalTime time.Duration
	AvgTime   time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// DebugEnvVar enables debug-level lexer tracing in NewLogger when non-empty
const DebugEnvVar = "MONKEY_DEBUG_LEXER"

// NewLogger creates the lexer-friendly text logger used by the command line
// tools. Level is debug when DebugEnvVar is set, info otherwise.
func NewLogger(w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv(DebugEnvVar) != "" {
		logLevel = slog.LevelDebug
	}
	return NewLoggerWithLevel(w, logLevel)
}

// NewLoggerWithLevel is NewLogger with an explicit level
func NewLoggerWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove timestamp for cleaner output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
