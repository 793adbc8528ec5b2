package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/logger"
	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// environment is what every subcommand needs: settings, a logger and an evaluator
type environment struct {
	cfg       config.Config
	logger    *zap.Logger
	evaluator *ranking.Evaluator
}

func setup() (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(jsonLogs || cfg.LogJSON, verbose || cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tax, err := loadTaxonomy(taxonomyPath)
	if err != nil {
		return nil, err
	}

	evaluator := ranking.NewEvaluator(tax)
	evaluator.NeutralSkillScore = cfg.Scoring.NeutralSkillScore
	evaluator.MaxExperienceYears = cfg.Scoring.MaxExperienceYears

	log.Debug("environment ready",
		zap.String("taxonomy_version", tax.Version()),
		zap.Int("workers", cfg.Workers))

	return &environment{cfg: cfg, logger: log, evaluator: evaluator}, nil
}

func loadTaxonomy(path string) (*skills.Taxonomy, error) {
	if path == "" {
		return skills.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open taxonomy file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	tax, err := skills.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy %s: %w", path, err)
	}
	return tax, nil
}

// readJob loads a job file, checking it against the job schema before decoding
func readJob(path string) (types.JobRequirement, error) {
	var job types.JobRequirement
	data, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("failed to read job file %s: %w", path, err)
	}
	if err := schemas.Validate(schemas.Job, data); err != nil {
		return job, fmt.Errorf("invalid job file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &job); err != nil {
		return job, fmt.Errorf("failed to unmarshal job JSON: %w", err)
	}
	if err := job.Validate(); err != nil {
		return job, fmt.Errorf("invalid job file %s: %w", path, err)
	}
	return job, nil
}

// writeJSON writes v as indented JSON to path, or to out when path is empty
func writeJSON(out io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := out.Write(data)
		return err
	}

	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
