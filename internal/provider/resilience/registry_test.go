package resilience

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndHealth(t *testing.T) {
	registry := NewRegistry()
	registry.Register("openweather", NewClient(SingleAttemptConfig("openweather")))
	registry.Register("noaa", NewClient(DefaultClientConfig("noaa")))

	health := registry.Health()
	require.Len(t, health, 2)

	// Sorted by name
	assert.Equal(t, "noaa", health[0].Name)
	assert.Equal(t, "openweather", health[1].Name)

	for _, h := range health {
		assert.Equal(t, gobreaker.StateClosed, h.CircuitState)
		assert.True(t, h.Healthy())
		assert.Nil(t, h.LastSuccessAt)
		assert.Nil(t, h.LastFailureAt)
	}
}

func TestRegistry_RecordsOutcomes(t *testing.T) {
	registry := NewRegistry()
	registry.Register("openweather", NewClient(SingleAttemptConfig("openweather")))

	registry.RecordSuccess("openweather")
	registry.RecordFailure("openweather", errors.New("status 502"))

	health := registry.Health()
	require.Len(t, health, 1)

	h := health[0]
	require.NotNil(t, h.LastSuccessAt)
	require.NotNil(t, h.LastFailureAt)
	assert.Equal(t, "status 502", h.LastError)
}

func TestRegistry_IgnoresUnknownProvider(t *testing.T) {
	registry := NewRegistry()

	// Must not panic
	registry.RecordSuccess("unknown")
	registry.RecordFailure("unknown", errors.New("boom"))

	assert.Empty(t, registry.Health())
}

func TestRegistry_ReRegisterKeepsHistory(t *testing.T) {
	registry := NewRegistry()
	registry.Register("openweather", NewClient(SingleAttemptConfig("openweather")))
	registry.RecordSuccess("openweather")

	registry.Register("openweather", NewClient(SingleAttemptConfig("openweather")))

	health := registry.Health()
	require.Len(t, health, 1)
	assert.NotNil(t, health[0].LastSuccessAt)
}
