package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with DSN from env", func(t *testing.T) {
		t.Setenv("VOLTGRID_DATABASE_DSN", "postgres://localhost:5432/voltgrid")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/voltgrid", cfg.Database.DSN)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocode.Endpoint)
		assert.Equal(t, "tr", cfg.Geocode.CountryCode)
		assert.Equal(t, 100, cfg.Geocode.AddressLimit)
		assert.Equal(t, 1000, cfg.Geocode.CityBatchSize)
		assert.InDelta(t, 0.05, cfg.Geocode.JitterDegrees, 1e-9)
	})

	t.Run("missing DSN is an error", func(t *testing.T) {
		t.Setenv("VOLTGRID_DATABASE_DSN", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("VOLTGRID_DATABASE_DSN", "postgres://localhost/db")
		t.Setenv("VOLTGRID_GEOCODE_DELAY_MS", "2000")
		t.Setenv("VOLTGRID_GEOCODE_ADDRESS_LIMIT", "5")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 5, cfg.Geocode.AddressLimit)
		assert.Equal(t, 2*time.Second, cfg.RequestDelay())
	})

	t.Run("non-numeric override is an error", func(t *testing.T) {
		t.Setenv("VOLTGRID_DATABASE_DSN", "postgres://localhost/db")
		t.Setenv("VOLTGRID_GEOCODE_DELAY_MS", "soon")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDurations(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 1100*time.Millisecond, cfg.RequestDelay())
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())

	cfg.Geocode.DelayMillis = 500
	cfg.Geocode.TimeoutSeconds = 3
	assert.Equal(t, 500*time.Millisecond, cfg.RequestDelay())
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout())
}
