// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults
const (
	DefaultPort               = 8080
	DefaultMinResumeChars     = 20
	DefaultNeutralSkillScore  = 65
	DefaultMaxExperienceYears = 45.0
)

// Config represents the ranker configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	LogJSON     bool   `json:"log_json,omitempty"`     // Emit JSON logs instead of console
	Debug       bool   `json:"debug,omitempty"`        // Enable debug logging

	// Batch ranking
	Workers        int `json:"workers,omitempty"`          // Concurrent evaluations; 0 means GOMAXPROCS
	MinResumeChars int `json:"min_resume_chars,omitempty"` // Skip résumés shorter than this

	Scoring Scoring `json:"scoring"`
}

// Scoring holds tunable scoring constants
type Scoring struct {
	NeutralSkillScore  int     `json:"neutral_skill_score,omitempty"`  // Skill score when a job lists no skills
	MaxExperienceYears float64 `json:"max_experience_years,omitempty"` // Cap on extracted experience
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           DefaultPort,
		MinResumeChars: DefaultMinResumeChars,
		Scoring: Scoring{
			NeutralSkillScore:  DefaultNeutralSkillScore,
			MaxExperienceYears: DefaultMaxExperienceYears,
		},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from the environment. RANKER_-prefixed variables win over
// the bare DATABASE_URL.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("RANKER_DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("RANKER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: RANKER_PORT must be an integer: %w", err)
		}
		c.Port = port
	}
	if v := getenv("RANKER_WORKERS"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: RANKER_WORKERS must be an integer: %w", err)
		}
		c.Workers = workers
	}

	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.MinResumeChars < 0 {
		return fmt.Errorf("config error: 'min_resume_chars' must be non-negative")
	}
	if c.Scoring.NeutralSkillScore < 0 || c.Scoring.NeutralSkillScore > 100 {
		return fmt.Errorf("config error: 'scoring.neutral_skill_score' must be between 0 and 100")
	}
	if c.Scoring.MaxExperienceYears < 0 {
		return fmt.Errorf("config error: 'scoring.max_experience_years' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.MinResumeChars == 0 {
		result.MinResumeChars = defaults.MinResumeChars
	}
	if result.Scoring.NeutralSkillScore == 0 {
		result.Scoring.NeutralSkillScore = defaults.Scoring.NeutralSkillScore
	}
	if result.Scoring.MaxExperienceYears == 0 {
		result.Scoring.MaxExperienceYears = defaults.Scoring.MaxExperienceYears
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Load reads the optional config file, fills defaults, applies environment overrides
// and validates the result.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
