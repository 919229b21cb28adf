package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridelens/ridelens/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	provider, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName: "ridelens-test",
		Enabled:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, provider)

	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)

	// Shutdown on a noop provider is a no-op.
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestTracerAndMeter_Global(t *testing.T) {
	assert.NotNil(t, telemetry.Tracer("ridelens-test"))
	assert.NotNil(t, telemetry.Meter("ridelens-test"))
}
