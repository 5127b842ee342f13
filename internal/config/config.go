package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	ErrMissingCredentials = errors.New("pagerduty token and routing key must be set")
	ErrMissingWatchList   = errors.New("watch list must be set (inline or file)")
)

type Config struct {
	PagerDutyToken      string
	PagerDutyRoutingKey string
	WatchJSON           string
	WatchFile           string
	TargetNamespace     string
	KubeConfig          string
	KubeMaster          string
	Interval            time.Duration
	RequestTimeout      time.Duration
	LogLevel            string
	LogFormat           string
	HTTPPort            string
	MetricsPort         string
}

// RunOnce reports whether the process should do a single pass and exit.
func (c *Config) RunOnce() bool {
	return c.Interval == 0
}

func Load() (*Config, error) {
	cfg := &Config{
		PagerDutyToken:      getEnvWithFallback(envKeyPagerDutyToken, envKeyPagerDutyTokenFallback),
		PagerDutyRoutingKey: getEnvWithFallback(envKeyPagerDutyRoutingKey, envKeyPagerDutyRoutingKeyFallback),
		WatchJSON:           getEnvWithFallback(envKeyWatchJSON, envKeyWatchJSONFallback),
		WatchFile:           os.Getenv(envKeyWatchFile),
		TargetNamespace:     getEnvWithFallback(envKeyTargetNamespace, envKeyTargetNamespaceFallback),
		KubeConfig:          getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:          getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		LogLevel:            getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:           getEnvOrDefault(envKeyLogFormat, "json"),
		HTTPPort:            getEnvOrDefault(envKeyHTTPPort, "8080"),
		MetricsPort:         getEnvOrDefault(envKeyMetricsPort, "9090"),
	}

	if cfg.PagerDutyToken == "" || cfg.PagerDutyRoutingKey == "" {
		return nil, ErrMissingCredentials
	}

	if cfg.WatchJSON == "" && cfg.WatchFile == "" {
		return nil, ErrMissingWatchList
	}

	interval, err := getDurationEnv(envKeyInterval, 0, envMinInterval)
	if err != nil {
		return nil, err
	}

	cfg.Interval = interval

	requestTimeout, err := getDurationEnv(envKeyRequestTimeout, envDefaultRequestTimeout, envMinRequestTimeout)
	if err != nil {
		return nil, err
	}

	cfg.RequestTimeout = requestTimeout

	return cfg, nil
}

func getDurationEnv(key string, defaultValue, minValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if value != 0 && value < minValue {
		return 0, fmt.Errorf("parse %s: value %s is below minimum %s", key, value, minValue)
	}

	return value, nil
}

func getEnvWithFallback(key, fallbackKey string) string {
	value := os.Getenv(key)
	if value == "" {
		return os.Getenv(fallbackKey)
	}

	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
