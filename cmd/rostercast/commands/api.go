package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rostercast/internal/api"
	"github.com/wonny/rostercast/internal/api/handlers"
	"github.com/wonny/rostercast/internal/scheduler"
	"github.com/wonny/rostercast/internal/scheduler/jobs"
	"github.com/wonny/rostercast/internal/session"
	"github.com/wonny/rostercast/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET    /health                            - Health check
  GET    /api/players?q=&limit=             - Player search
  POST   /api/sessions                      - Start a roster
  GET    /api/sessions/{id}                 - Roster snapshot
  DELETE /api/sessions/{id}                 - End a roster
  POST   /api/sessions/{id}/players         - Add a player
  DELETE /api/sessions/{id}/players/{name}  - Remove a player
  DELETE /api/sessions/{id}/players         - Clear the roster
  GET    /api/sessions/{id}/stream          - Snapshot stream (websocket)
  POST   /api/projections                   - Stateless projection

Example:
  go run ./cmd/rostercast api
  go run ./cmd/rostercast api --port 8080 --scheduler`,
	RunE: runAPIServer,
}

var (
	apiPort      string
	apiScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
	apiCmd.Flags().BoolVar(&apiScheduler, "scheduler", false, "run scheduled jobs (overrides SCHEDULER_ENABLED)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config and logger
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}
	if apiScheduler {
		cfg.Scheduler.Enabled = true
	}

	ctx := cmd.Context()

	log.WithFields(map[string]interface{}{
		"port":   cfg.Port,
		"env":    cfg.Env,
		"source": cfg.Dataset.Source,
		"season": cfg.Dataset.Season,
	}).Info("Initializing API server")

	// 2. Dataset
	store, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// 3. Redis (disabled unless REDIS_ENABLED)
	rc, err := redis.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer rc.Close()
	cache := redis.NewCache(rc, "rostercast")

	// 4. Sessions and handlers
	manager := session.NewManager(store, cfg.Session.MaxSessions, log.WithField("component", "session.manager"))
	router := api.NewRouter(api.Handlers{
		Players:     handlers.NewPlayerHandler(store, cache, log),
		Sessions:    handlers.NewSessionHandler(manager, log),
		Projections: handlers.NewProjectionHandler(store, cache, log),
	}, store, log)

	// 5. Scheduler
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(log.WithField("component", "scheduler"))
		if err := sched.AddJob(jobs.NewDatasetRefreshJob(store, cfg.Scheduler.DatasetRefreshSchedule, log)); err != nil {
			return err
		}
		if err := sched.AddJob(jobs.NewSessionCleanupJob(manager, cfg.Session.IdleTTL, cfg.Scheduler.SessionCleanupSchedule, log)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	// 6. Server with graceful shutdown
	server := api.New(cfg, log, router)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	out := cmd.OutOrStdout()
	PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s", cfg.Port))
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	// Wait for interrupt signal or a startup failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
