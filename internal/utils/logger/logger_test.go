package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"beerbasement/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		env            string
		expectedLevel  slog.Level
		expectedPretty bool
	}{
		{
			name:           "local environment",
			env:            config.EnvLocal,
			expectedLevel:  slog.LevelDebug,
			expectedPretty: true,
		},
		{
			name:           "dev environment",
			env:            config.EnvDev,
			expectedLevel:  slog.LevelDebug,
			expectedPretty: false,
		},
		{
			name:           "prod environment",
			env:            config.EnvProd,
			expectedLevel:  slog.LevelInfo,
			expectedPretty: false,
		},
		{
			name:           "unknown environment",
			env:            "staging",
			expectedLevel:  slog.LevelDebug,
			expectedPretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env, io.Discard)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.expectedLevel <= slog.LevelInfo, logger.Enabled(ctx, slog.LevelInfo))

			_, pretty := logger.Handler().(*PrettyHandler)
			assert.Equal(t, tt.expectedPretty, pretty)
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog(io.Discard)
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestWithLevel(t *testing.T) {
	ctx := context.Background()

	// Явный уровень перекрывает уровень окружения
	l := WithLevel(config.EnvDev, "warn", io.Discard)
	assert.False(t, l.Enabled(ctx, slog.LevelInfo))
	assert.True(t, l.Enabled(ctx, slog.LevelWarn))

	// Неизвестный уровень - как New
	l = WithLevel(config.EnvProd, "verbose", io.Discard)
	assert.False(t, l.Enabled(ctx, slog.LevelDebug))
	assert.True(t, l.Enabled(ctx, slog.LevelInfo))
}

// Логи пишутся только в переданный writer, stdout остается для вывода команд
func TestNew_WritesToGivenWriter(t *testing.T) {
	color.NoColor = true

	for _, env := range []string{config.EnvLocal, config.EnvDev, config.EnvProd} {
		t.Run(env, func(t *testing.T) {
			var buf bytes.Buffer
			New(env, &buf).Info("beers fetched", "count", 1)
			assert.Contains(t, buf.String(), "beers fetched")

			buf.Reset()
			WithLevel(env, "info", &buf).Info("mutation done")
			assert.Contains(t, buf.String(), "mutation done")
		})
	}

	var buf bytes.Buffer
	New(config.EnvProd, &buf).Info("beers fetched", "count", 2)
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"), line)
}

func TestPrettyHandler_Output(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: slog.LevelInfo},
	}))

	log.With("component", "inventory").Info("beers fetched", "count", 3, "error", errors.New("boom"))
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "beers fetched")
	assert.Contains(t, out, `"component": "inventory"`)
	assert.Contains(t, out, `"count": 3`)
	assert.Contains(t, out, `"error": "boom"`)
	assert.NotContains(t, out, "hidden")
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
