//go:build !gcloud

package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-deadline/internal/observability/logging"
)

func TestInit_WithoutCollector(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	obs, err := Init(context.Background(), Config{
		ServiceInfo:   logging.ServiceInfo{Name: "deadline", Version: "test"},
		Environment:   logging.EnvDev,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("deadline"),
	})
	require.NoError(t, err)

	ctx := context.Background()
	assert.True(t, obs.Logger().Enabled(ctx, slog.LevelInfo))
	assert.False(t, obs.Logger().Enabled(ctx, slog.LevelDebug))

	obs.SetLogLevel(slog.LevelDebug)
	assert.True(t, obs.Logger().Enabled(ctx, slog.LevelDebug))

	assert.NoError(t, obs.Shutdown(ctx))
}
