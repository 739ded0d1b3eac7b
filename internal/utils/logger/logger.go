package logger

import (
	"io"
	"strings"

	"golang.org/x/exp/slog"

	"beerbasement/internal/config"
)

// New создает логгер для окружения, который пишет в w:
// local - цветной вывод, dev и prod - JSON
func New(env string, w io.Writer) *slog.Logger {
	switch config.NormalizeEnv(env) {
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return setupPrettySlog(w)
	}
}

// WithLevel как New, но с явным уровнем из LOG_LEVEL. Пустой или неизвестный уровень
// оставляет уровень окружения.
func WithLevel(env, level string, w io.Writer) *slog.Logger {
	lvl, ok := ParseLevel(level)
	if !ok {
		return New(env, w)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch config.NormalizeEnv(env) {
	case config.EnvDev, config.EnvProd:
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(NewPrettyHandler(w, PrettyHandlerOptions{SlogOpts: opts}))
	}
}

// ParseLevel разбирает debug/info/warn/error
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Discard логгер, который ничего не пишет
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func setupPrettySlog(w io.Writer) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
	}
	return slog.New(NewPrettyHandler(w, opts))
}
