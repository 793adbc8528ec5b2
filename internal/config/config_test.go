package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))
	return tmpFile
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"database_url": "postgres://localhost/ranker",
		"port": 9090,
		"workers": 4,
		"debug": true,
		"scoring": {"neutral_skill_score": 50}
	}`

	cfg, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost/ranker", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 50, cfg.Scoring.NeutralSkillScore)
	assert.Zero(t, cfg.Scoring.MaxExperienceYears)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Defaults are valid", func(*Config) {}, ""},
		{"Negative port", func(c *Config) { c.Port = -1 }, "'port'"},
		{"Port too large", func(c *Config) { c.Port = 70000 }, "'port'"},
		{"Negative workers", func(c *Config) { c.Workers = -2 }, "'workers'"},
		{"Negative min chars", func(c *Config) { c.MinResumeChars = -1 }, "'min_resume_chars'"},
		{"Neutral score above 100", func(c *Config) { c.Scoring.NeutralSkillScore = 101 }, "neutral_skill_score"},
		{"Negative max years", func(c *Config) { c.Scoring.MaxExperienceYears = -1 }, "max_experience_years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Port:    9000,
		Scoring: Scoring{NeutralSkillScore: 55},
	}

	result := cfg.MergeWithDefaults(Default())

	assert.Equal(t, 9000, result.Port)
	assert.Equal(t, 55, result.Scoring.NeutralSkillScore)
	assert.Equal(t, DefaultMinResumeChars, result.MinResumeChars)
	assert.Equal(t, DefaultMaxExperienceYears, result.Scoring.MaxExperienceYears)
	assert.Zero(t, result.Workers)
	// original untouched
	assert.Zero(t, cfg.MinResumeChars)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DATABASE_URL":        "postgres://fallback",
		"RANKER_DATABASE_URL": "postgres://ranker",
		"RANKER_PORT":         "7000",
		"RANKER_WORKERS":      "3",
	}
	cfg := Default()

	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "postgres://ranker", cfg.DatabaseURL)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 3, cfg.Workers)

	t.Run("Bare DATABASE_URL", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.ApplyEnv(func(k string) string {
			if k == "DATABASE_URL" {
				return "postgres://bare"
			}
			return ""
		}))
		assert.Equal(t, "postgres://bare", cfg.DatabaseURL)
	})

	t.Run("Invalid port", func(t *testing.T) {
		cfg := Default()
		err := cfg.ApplyEnv(func(k string) string {
			if k == "RANKER_PORT" {
				return "eighty"
			}
			return ""
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RANKER_PORT")
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("RANKER_WORKERS", "")
	t.Setenv("RANKER_PORT", "")
	t.Setenv("RANKER_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	t.Run("No file uses defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("File values and env overrides", func(t *testing.T) {
		t.Setenv("RANKER_WORKERS", "6")
		cfg, err := Load(writeConfig(t, `{"min_resume_chars": 50, "workers": 2}`))
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.MinResumeChars)
		assert.Equal(t, 6, cfg.Workers)
		assert.Equal(t, DefaultPort, cfg.Port)
	})

	t.Run("Invalid file values", func(t *testing.T) {
		_, err := Load(writeConfig(t, `{"workers": -1}`))
		require.Error(t, err)
	})
}
