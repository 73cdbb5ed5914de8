// Package config loads command settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

// DefaultExcludeYear is the partial year dropped from year-based trends
// unless EXCLUDE_YEAR says otherwise.
const DefaultExcludeYear = 2025

// Config holds all settings, populated from environment variables.
type Config struct {
	TrendsInput string
	MapInput    string
	OutputDir   string

	// ExcludeYear drops rows of one (usually incomplete) year. Zero disables it.
	ExcludeYear       int
	SignificanceAlpha float64
	HistogramBins     int

	DividerLongitude float64
	MapSeed          uint64
	MapZoom          int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Mapbox geocoding of missing map points.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
	MapboxRegion    string

	// Optional publishing of run reports. Empty KafkaReportTopic disables it.
	KafkaBrokers     []string
	KafkaReportTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	excludeYear, err := parseExcludeYear()
	if err != nil {
		return nil, err
	}
	if excludeYear < 0 {
		return nil, errors.New("invalid EXCLUDE_YEAR: must be a year or 0")
	}

	alpha, err := parseFloat("SIGNIFICANCE_ALPHA", 0.05)
	if err != nil {
		return nil, err
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.New("invalid SIGNIFICANCE_ALPHA: must be in (0, 1)")
	}

	bins, err := parseInt("HISTOGRAM_BINS", 20)
	if err != nil {
		return nil, err
	}
	if bins <= 0 {
		return nil, errors.New("invalid HISTOGRAM_BINS: must be positive")
	}

	divider, err := parseFloat("DIVIDER_LONGITUDE", domain.DefaultDividerLongitude)
	if err != nil {
		return nil, err
	}
	if divider < -180 || divider > 180 {
		return nil, errors.New("invalid DIVIDER_LONGITUDE: must be in [-180, 180]")
	}

	seed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("MAP_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAP_SEED: %w", err)
	}

	zoom, err := parseInt("MAP_ZOOM", 12)
	if err != nil {
		return nil, err
	}
	if zoom < 0 || zoom > 20 {
		return nil, errors.New("invalid MAP_ZOOM: must be in [0, 20]")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		TrendsInput:       sharedcfg.EnvOrDefault("TRENDS_INPUT", "philly_shooting_trends.csv"),
		MapInput:          sharedcfg.EnvOrDefault("MAP_INPUT", "philly_shooting_preprocessed.csv"),
		OutputDir:         sharedcfg.EnvOrDefault("OUTPUT_DIR", "."),
		ExcludeYear:       excludeYear,
		SignificanceAlpha: alpha,
		HistogramBins:     bins,
		DividerLongitude:  divider,
		MapSeed:           seed,
		MapZoom:           zoom,
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
		MapboxRegion:    sharedcfg.EnvOrDefault("MAPBOX_REGION", "Philadelphia, PA"),

		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic: os.Getenv("KAFKA_REPORT_TOPIC"),
	}

	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.KafkaReportTopic != "" && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_REPORT_TOPIC is set")
	}

	return cfg, nil
}

// PublishReports reports whether run reports should be sent to Kafka.
func (c *Config) PublishReports() bool {
	return c.KafkaReportTopic != ""
}

// parseExcludeYear accepts a year, 0 to disable, or "current" for the
// calendar year of the domain clock.
func parseExcludeYear() (int, error) {
	if os.Getenv("EXCLUDE_YEAR") == "current" {
		return domain.CurrentYear(), nil
	}
	return parseInt("EXCLUDE_YEAR", DefaultExcludeYear)
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
