package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/db"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/logger"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a directory of résumés against a job",
	Long:  "Evaluates every supported résumé in a directory against a job requirement, calibrates the pool and prints the ranking. With --save the run is stored in PostgreSQL.",
	RunE:  runRank,
}

var (
	rankJob     string
	rankResumes string
	rankOutput  string
	rankSave    bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to job requirement JSON file (required)")
	rankCmd.Flags().StringVarP(&rankResumes, "resumes", "r", "", "Directory of résumé files (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "Store the ranking run in the database")
	markRequired(rankCmd, "job", "resumes")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	if rankSave && env.cfg.DatabaseURL == "" {
		return fmt.Errorf("--save requires DATABASE_URL or database_url in the config file")
	}

	job, err := readJob(rankJob)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	resumes, unreadable, err := ingestion.LoadDirectory(ctx, rankResumes)
	if err != nil {
		return err
	}
	for _, s := range unreadable {
		env.logger.Warn("skipping unreadable resume", zap.String("filename", s.Filename), zap.String("reason", s.Reason))
	}

	log := logger.WithFields(env.logger, logger.JobFields(job.Title, len(job.RequiredSkills))...)
	if len(resumes) == 0 {
		log.Warn("no readable resumes found", zap.String("dir", rankResumes))
	}
	run, err := ranking.RankCandidates(ctx, env.evaluator, job, resumes, ranking.RankOptions{
		Workers:        env.cfg.Workers,
		MinResumeChars: env.cfg.MinResumeChars,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("failed to rank resumes: %w", err)
	}
	run.Skipped = append(unreadable, run.Skipped...)

	if rankSave {
		if err := saveRun(ctx, env, run); err != nil {
			return err
		}
	}

	if verbose && rankOutput == "" {
		observability.NewPrinter(cmd.OutOrStdout()).PrintRankingRun(run)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), rankOutput, run)
}

func saveRun(ctx context.Context, env *environment, run *types.RankingRun) error {
	database, err := db.Connect(ctx, env.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := database.SaveRankingRun(ctx, run); err != nil {
		return err
	}
	env.logger.Info("saved ranking run", zap.String("run_id", run.ID.String()), zap.Int("candidates", len(run.Results)))
	return nil
}
