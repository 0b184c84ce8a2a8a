package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker = "localhost:9092"
	testZonesURL  = "http://zones.test/z_290725.dbx"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultZonesURL, cfg.ZonesURL)
	assert.Equal(t, "marine_zones.csv", cfg.OutputPath)
	assert.Zero(t, cfg.FetchTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 24*time.Hour, cfg.RefreshInterval)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "marine-zones", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("ZONES_URL", testZonesURL)
	t.Setenv("OUTPUT_PATH", "/tmp/zones.csv")
	t.Setenv("FETCH_TIMEOUT", "15s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REFRESH_INTERVAL", "6h")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "zones")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testZonesURL, cfg.ZonesURL)
	assert.Equal(t, "/tmp/zones.csv", cfg.OutputPath)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 6*time.Hour, cfg.RefreshInterval)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "zones", cfg.KafkaTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	for _, v := range []string{"bad", "-1s"} {
		t.Setenv("FETCH_TIMEOUT", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
	}
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	for _, v := range []string{"bad", "0s"} {
		t.Setenv("REFRESH_INTERVAL", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
	}
}

func TestLoad_InvalidZonesURL(t *testing.T) {
	for _, v := range []string{"ftp://zones.test/file", "not a url", "/relative/path"} {
		t.Setenv("ZONES_URL", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "ZONES_URL")
	}
}

func TestLoad_KafkaDisabledUnlessTrue(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "yes")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}
