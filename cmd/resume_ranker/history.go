package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/db"
	"github.com/jonathan/resume-ranker/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List stored ranking runs, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", db.DefaultListLimit, "Maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	if env.cfg.DatabaseURL == "" {
		return fmt.Errorf("history requires DATABASE_URL or database_url in the config file")
	}

	var id uuid.UUID
	if len(args) == 1 {
		if id, err = uuid.Parse(args[0]); err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, env.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if id != uuid.Nil {
		run, err := database.GetRankingRun(ctx, id)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("ranking run not found: %s", id)
		}
		if verbose {
			observability.NewPrinter(cmd.OutOrStdout()).PrintRankingRun(run)
			return nil
		}
		return writeJSON(cmd.OutOrStdout(), "", run)
	}

	runs, err := database.ListRankingRuns(ctx, historyLimit)
	if err != nil {
		return err
	}
	if !verbose {
		return writeJSON(cmd.OutOrStdout(), "", runs)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tJOB\tCANDIDATES\tCREATED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", run.ID, run.JobTitle, run.PoolSize, run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
