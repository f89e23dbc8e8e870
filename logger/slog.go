package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/phsym/console-slog"
)

// Format selects the output encoding of the slog logger.
type Format string

const (
	// FormatJSON writes one JSON object per record. It is the default.
	FormatJSON Format = "json"
	// FormatConsole writes colored, human-readable lines.
	FormatConsole Format = "console"
)

// ParseFormat parses a case-insensitive format name; an empty name selects FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatConsole:
		return FormatConsole, nil
	default:
		return FormatJSON, fmt.Errorf("logger: unknown format %q", s)
	}
}

type slogConfig struct {
	level     Level
	format    Format
	addSource bool
	output    io.Writer
}

// Option is a functional option for New.
type Option interface {
	apply(*slogConfig)
}

type optFunc func(*slogConfig)

func (f optFunc) apply(cfg *slogConfig) { f(cfg) }

// WithLevel sets the minimum enabled level. The default is InfoLevel.
func WithLevel(level Level) Option {
	return optFunc(func(cfg *slogConfig) { cfg.level = level })
}

// WithFormat sets the output format. The default is FormatJSON, or FormatConsole when the
// ENV environment variable is "development".
func WithFormat(format Format) Option {
	return optFunc(func(cfg *slogConfig) { cfg.format = format })
}

// WithAddSource enables the source file and line in every record.
func WithAddSource(enabled bool) Option {
	return optFunc(func(cfg *slogConfig) { cfg.addSource = enabled })
}

// WithOutput sets the destination of the log records. The default is os.Stderr.
func WithOutput(w io.Writer) Option {
	return optFunc(func(cfg *slogConfig) { cfg.output = w })
}

// SlogLogger is a Logger backed by log/slog.
type SlogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

var _ Logger = (*SlogLogger)(nil)

// NewSlog create a slog instance with the given level.
func NewSlog(level Level, addSource bool) Logger {
	return New(WithLevel(level), WithAddSource(addSource))
}

// New creates a slog based logger.
func New(opts ...Option) *SlogLogger {
	cfg := slogConfig{
		level:  InfoLevel,
		format: FormatJSON,
		output: os.Stderr,
	}
	if os.Getenv("ENV") == "development" {
		cfg.format = FormatConsole
		cfg.addSource = true
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	inst := &SlogLogger{level: &slog.LevelVar{}}
	inst.level.Set(toSlogLevel(cfg.level))

	var handler slog.Handler
	if cfg.format == FormatConsole {
		handler = console.NewHandler(cfg.output, &console.HandlerOptions{
			AddSource: cfg.addSource,
			Level:     inst.level,
		})
	} else {
		handlerOpts := &slog.HandlerOptions{
			AddSource: cfg.addSource,
			Level:     inst.level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					a.Key = "ts"
				}
				return a
			},
		}
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}
	inst.logger = slog.New(handler)

	return inst
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

func (l *SlogLogger) Fatal(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
	os.Exit(1)
}

// With returns a child logger that shares the level of its parent.
func (l *SlogLogger) With(keyValues ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(keyValues...),
		level:  l.level,
	}
}

func (l *SlogLogger) Level() Level {
	switch lv := l.level.Level(); {
	case lv <= slog.LevelDebug:
		return DebugLevel
	case lv <= slog.LevelInfo:
		return InfoLevel
	case lv <= slog.LevelWarn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

func (l *SlogLogger) SetLevel(level Level) {
	l.level.Set(toSlogLevel(level))
}

// log is the low-level logging method for methods that take ...any.
// It must always be called directly by an exported logging method
// or function, because it uses a fixed call depth to obtain the pc.
func (l *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip [runtime.Callers, this function, this function's caller]
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
