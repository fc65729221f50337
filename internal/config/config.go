package config

import (
	"errors"
	"strings"
	"time"
)

// DatabaseConfig carries connection settings for the Postgres store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"VOLTGRID_DATABASE_DSN"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// MigrationsConfig names the directory holding SQL migration pairs.
type MigrationsConfig struct {
	Path string `yaml:"path" env:"VOLTGRID_MIGRATIONS_PATH"`
}

// GeocodeConfig tunes both enrichment passes.
type GeocodeConfig struct {
	Endpoint       string  `yaml:"endpoint" env:"VOLTGRID_GEOCODE_ENDPOINT"`
	UserAgent      string  `yaml:"userAgent" env:"VOLTGRID_GEOCODE_USER_AGENT"`
	Country        string  `yaml:"country" env:"VOLTGRID_GEOCODE_COUNTRY"`
	CountryCode    string  `yaml:"countryCode" env:"VOLTGRID_GEOCODE_COUNTRY_CODE"`
	DelayMillis    int     `yaml:"delayMillis" env:"VOLTGRID_GEOCODE_DELAY_MS"`
	TimeoutSeconds int     `yaml:"timeoutSeconds" env:"VOLTGRID_GEOCODE_TIMEOUT"`
	AddressLimit   int     `yaml:"addressLimit" env:"VOLTGRID_GEOCODE_ADDRESS_LIMIT"`
	CityBatchSize  int     `yaml:"cityBatchSize" env:"VOLTGRID_GEOCODE_CITY_BATCH"`
	JitterDegrees  float64 `yaml:"jitterDegrees" env:"VOLTGRID_GEOCODE_JITTER"`
}

// Config is the full application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Geocode    GeocodeConfig    `yaml:"geocode"`
}

// Load reads configuration from the optional CONFIG_FILE YAML plus
// environment overrides and validates required fields.
func Load() (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level: "info",
		},
		Migrations: MigrationsConfig{
			Path: "migrations",
		},
		Geocode: GeocodeConfig{
			Endpoint:       "https://nominatim.openstreetmap.org",
			UserAgent:      "voltgrid-ingest/1.0",
			Country:        "Turkey",
			CountryCode:    "tr",
			DelayMillis:    1100,
			TimeoutSeconds: 10,
			AddressLimit:   100,
			CityBatchSize:  1000,
			JitterDegrees:  0.05,
		},
	}

	if err := hydrate(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Geocode.Endpoint) == "" {
		return nil, errors.New("config: geocode endpoint required")
	}
	return cfg, nil
}

// RequestDelay returns the pacing delay between external geocode lookups.
// Nominatim's usage policy caps clients at one request per second; the
// default stays slightly above that.
func (c *Config) RequestDelay() time.Duration {
	if c.Geocode.DelayMillis <= 0 {
		return 1100 * time.Millisecond
	}
	return time.Duration(c.Geocode.DelayMillis) * time.Millisecond
}

// HTTPTimeout returns the geocode client timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	if c.Geocode.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Geocode.TimeoutSeconds) * time.Second
}
