// Package main provides the resume_ranker CLI for scoring and ranking résumés against a job.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	taxonomyPath string
	verbose      bool
	jsonLogs     bool
)

var rootCmd = &cobra.Command{
	Use:          "resume_ranker",
	Short:        "Résumé scoring and pool calibration",
	Long:         "resume_ranker scores résumés against a job's required skills, experience and seniority, then calibrates a pool of candidates into a comparative ranking.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&taxonomyPath, "taxonomy", "", "Path to a taxonomy JSON file (defaults to the embedded taxonomy)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable output and debug logs")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
