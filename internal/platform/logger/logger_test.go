package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasklens/internal/config"
)

func TestSetupLevels(t *testing.T) {
	testCases := []struct {
		level       string
		debugLogged bool
	}{
		{level: "debug", debugLogged: true},
		{level: "info", debugLogged: false},
		{level: "warn", debugLogged: false},
		{level: "error", debugLogged: false},
		{level: "nonsense", debugLogged: false}, // degrades to info
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			log := Setup(config.JobConfig{LogLevel: tc.level})
			require.NotNil(t, log)
			assert.Equal(t, tc.debugLogged, log.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestSetupSetsDefault(t *testing.T) {
	log := Setup(config.JobConfig{LogLevel: "info"})
	assert.Same(t, log, slog.Default())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Same(t, slog.Default(), FromContext(ctx))

	tagged := slog.Default().With("component", "test")
	ctx = WithLogger(ctx, tagged)
	assert.Same(t, tagged, FromContext(ctx))
}
