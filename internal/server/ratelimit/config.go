package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit for one endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // Requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// key groups requests into one bucket: prefix rules share a bucket across paths
func (e *EndpointConfig) key(path string) string {
	if e.Path != "" {
		return e.Path
	}
	return path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the limits of the scoring endpoints.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// batch ranking evaluates up to hundreds of résumés per request
		{Path: "/rank", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/evaluate", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/calibrate", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// LoadConfig builds the configuration from RANKER_RATE_LIMIT_* environment variables.
func LoadConfig(getenv func(string) string) *Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := DefaultConfig()

	cfg.Enabled = envBool(getenv, "RANKER_RATE_LIMIT_ENABLED", cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}
	cfg.DefaultLimit = envInt(getenv, "RANKER_RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration(getenv, "RANKER_RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration(getenv, "RANKER_RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(getenv("RANKER_RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(getenv("RANKER_RATE_LIMIT_BLACKLIST"))

	return cfg
}

func envInt(getenv func(string) string, key string, defaultValue int) int {
	if value, err := strconv.Atoi(getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func envBool(getenv func(string) string, key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func envDuration(getenv func(string) string, key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
