package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/db"
	"github.com/jonathan/resume-ranker/internal/server"
	"github.com/jonathan/resume-ranker/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for evaluating, ranking and calibrating résumés. Ranking runs are persisted when a database URL is configured.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	port := env.cfg.Port
	if servePort > 0 {
		port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// store stays a nil interface when no database is configured
	var store server.RunStore
	if env.cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, env.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		store = database
	} else {
		env.logger.Warn("no database configured; ranking runs will not be persisted")
	}

	srv := server.New(server.Options{
		Port:           port,
		Workers:        env.cfg.Workers,
		MinResumeChars: env.cfg.MinResumeChars,
		RateLimit:      ratelimit.LoadConfig(os.Getenv),
	}, env.evaluator, store, env.logger)

	env.logger.Info("starting server", zap.Int("port", port), zap.Bool("persistence", store != nil))
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
