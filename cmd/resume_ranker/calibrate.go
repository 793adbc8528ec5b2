package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/server"
	"github.com/jonathan/resume-ranker/internal/types"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Calibrate a stored pool of evaluated candidates",
	Long:  "Runs only pool calibration over a JSON array of previously evaluated candidate results, rescaling scores and assigning comparative ranks.",
	RunE:  runCalibrate,
}

var (
	calibratePool   string
	calibrateOutput string
)

func init() {
	calibrateCmd.Flags().StringVarP(&calibratePool, "pool", "p", "", "Path to candidate pool JSON file (required)")
	calibrateCmd.Flags().StringVarP(&calibrateOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	markRequired(calibrateCmd, "pool")

	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, _ []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	data, err := os.ReadFile(calibratePool)
	if err != nil {
		return fmt.Errorf("failed to read pool file %s: %w", calibratePool, err)
	}
	if err := schemas.Validate(schemas.Pool, data); err != nil {
		return fmt.Errorf("invalid pool file %s: %w", calibratePool, err)
	}

	var pool []types.CandidateResult
	if err := json.Unmarshal(data, &pool); err != nil {
		return fmt.Errorf("failed to unmarshal pool JSON: %w", err)
	}

	results, swaps := ranking.Calibrate(pool)
	for _, swap := range swaps {
		env.logger.Info("consistency swap",
			zap.String("upper", swap.Upper),
			zap.String("lower", swap.Lower),
			zap.Int("upper_score", swap.UpperScore),
			zap.Int("lower_score", swap.LowerScore))
	}

	return writeJSON(cmd.OutOrStdout(), calibrateOutput, server.CalibrateResponse{Results: results, Swaps: swaps})
}
