package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/logger"
	"github.com/jonathan/resume-ranker/internal/observability"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a single résumé against a job",
	Long:  "Scores one résumé (.txt, .md, .pdf or .docx) against a job requirement JSON file and prints the uncalibrated result.",
	RunE:  runEvaluate,
}

var (
	evaluateJob    string
	evaluateResume string
	evaluateOutput string
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateJob, "job", "j", "", "Path to job requirement JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateResume, "resume", "r", "", "Path to résumé file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	markRequired(evaluateCmd, "job", "resume")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	job, err := readJob(evaluateJob)
	if err != nil {
		return err
	}

	text, meta, err := ingestion.LoadResume(cmd.Context(), evaluateResume)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	result := env.evaluator.Evaluate(text, job)
	result.Filename = meta.Filename
	result.ResumeID = strings.TrimSuffix(meta.Filename, filepath.Ext(meta.Filename))

	env.logger.Debug("evaluated resume",
		append(logger.JobFields(job.Title, len(job.RequiredSkills)),
			zap.String("filename", meta.Filename),
			zap.String("hash", meta.Hash),
			zap.Int("raw_score", result.RawScore))...)

	if verbose && evaluateOutput == "" {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintJob(&job)
		printer.PrintCandidate(&result)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), evaluateOutput, result)
}
