package config

import (
	"errors"
	"net/url"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultZonesURL is the NWS public forecast zone file.
const DefaultZonesURL = "https://www.weather.gov/source/gis/ShapeFiles/z_290725.dbx"

// Config holds all settings, populated from environment variables.
type Config struct {
	ZonesURL   string
	OutputPath string

	// FetchTimeout bounds the zone file download. Zero leaves the transport defaults in charge.
	FetchTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	RefreshInterval time.Duration

	// Kafka sink configuration.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseFetchTimeout()
	if err != nil {
		return nil, err
	}

	refreshInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("REFRESH_INTERVAL", "24h"))
	if err != nil || refreshInterval <= 0 {
		return nil, errors.New("invalid REFRESH_INTERVAL")
	}

	cfg := &Config{
		ZonesURL:        sharedcfg.EnvOrDefault("ZONES_URL", DefaultZonesURL),
		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", "marine_zones.csv"),
		FetchTimeout:    fetchTimeout,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
		RefreshInterval: refreshInterval,

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "marine-zones"),
	}

	if err := validateZonesURL(cfg.ZonesURL); err != nil {
		return nil, err
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is not set")
	}

	return cfg, nil
}

func parseFetchTimeout() (time.Duration, error) {
	s := os.Getenv("FETCH_TIMEOUT")
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New("invalid FETCH_TIMEOUT")
	}
	return d, nil
}

func validateZonesURL(raw string) error {
	if raw == "" {
		return errors.New("ZONES_URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("ZONES_URL must be an absolute http(s) URL")
	}
	return nil
}
