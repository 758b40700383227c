/*
main.go - Application entry point

PURPOSE:
  crmcal serves the CRM dashboard calendars (interview scheduler and
  workday/PTO view) over HTTP, and can print a month grid in the terminal.

COMMANDS:
  serve   Load config and mock data, start the HTTP server
  grid    Print one month as a text grid

STARTUP SEQUENCE (serve):
  1. Load .env, then config (file, CRMCAL_* env, defaults)
  2. Build the zap logger
  3. Load the seed into the in-memory store
  4. Create API handler and router (rate limited if configured)
  5. Start the mock reset schedule, if any
  6. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Flush the logger
  4. Exit

EXAMPLES:
  crmcal serve --config ./config.yaml
  CRMCAL_SERVER_LISTEN=:3000 crmcal serve
  crmcal grid --month 2024-02 --week-start monday

SEE ALSO:
  - config/config.go: Settings and defaults
  - api/server.go: Router configuration
  - factory/seed.go: Mock data
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/crm-calendar/api"
	"github.com/warp/crm-calendar/config"
	"github.com/warp/crm-calendar/factory"
	"github.com/warp/crm-calendar/store"
)

var (
	configPath string
	envFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "crmcal",
		Short:         "CRM dashboard calendars",
		Long:          "Interview scheduler and workday/PTO calendar views for the CRM dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(envFile, cmd.Flags().Changed("env-file"))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File of CRMCAL_* variables to load (skipped if the default is absent)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(gridCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err := cfg.Log.NewLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return err
	}
	weekStart, err := cfg.Calendar.FirstWeekday()
	if err != nil {
		return err
	}

	seed, err := loadSeed(cfg.Seed.File)
	if err != nil {
		return err
	}
	mem := store.NewMemory()
	if err := seed.Apply(context.Background(), mem); err != nil {
		return fmt.Errorf("failed to load mock data: %w", err)
	}
	logger.Info("mock data loaded",
		zap.String("seed", seedName(cfg.Seed.File)),
		zap.Int("interviews", len(seed.Interviews)),
		zap.Int("leave_requests", len(seed.LeaveRequests)),
		zap.Int("holidays", len(seed.Holidays)))

	handler := api.NewHandler(mem, seed, api.Settings{
		Location:   loc,
		WeekStart:  weekStart,
		DisplayCap: cfg.Calendar.DisplayCap,
	}, logger)

	opts := api.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger.Named("http"),
	}
	if cfg.Server.RateLimit > 0 {
		opts.RateLimiter = api.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	}
	router := api.NewRouter(handler, opts)

	if cfg.Seed.ResetSchedule != "" {
		resets, err := api.NewResetScheduler(handler, cfg.Seed.ResetSchedule, loc, logger.Named("reset"))
		if err != nil {
			return err
		}
		resets.Start()
		defer resets.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("listen", cfg.Server.Listen),
			zap.String("timezone", loc.String()),
			zap.String("week_start", weekStart.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func loadSeed(path string) (*factory.Seed, error) {
	if path == "" {
		return factory.Default()
	}
	return factory.LoadFile(path)
}

func seedName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
