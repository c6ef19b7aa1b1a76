// Package main provides the entry point for the prop-edge scanner.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/database"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/health"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/oddsapi"
	"github.com/yourusername/prop-edge/internal/repository"
	"github.com/yourusername/prop-edge/internal/scheduler"
	"github.com/yourusername/prop-edge/internal/service"
	"github.com/yourusername/prop-edge/internal/stats"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "scanner",
	Short: "Continuously scan player prop markets for positive EV bets",
	Long: `Fetches player prop odds, builds a sharp-book consensus per prop,
scores soft-book quotes against it, and persists the opportunities that
clear the EV threshold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Prop edge scanner starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	appLog.Info("Database ready")

	gameRepo := repository.NewPostgresGameRepository(db)
	betRepo := repository.NewPostgresEVBetRepository(db, appLog)

	// Odds provider
	httpCfg := oddsapi.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.OddsAPI.TimeoutSeconds) * time.Second
	httpCfg.RateLimit = cfg.OddsAPI.RateLimit
	if cfg.OddsAPI.MaxRetries > 0 {
		httpCfg.MaxRetries = cfg.OddsAPI.MaxRetries
	}
	httpCfg.CircuitBreakerMax = cfg.OddsAPI.CircuitBreakerMax

	httpClient := oddsapi.NewRateLimitedHTTPClient(httpCfg, appLog)
	defer httpClient.Close()

	oddsClient := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL: cfg.OddsAPI.BaseURL,
		APIKey:  cfg.OddsAPI.APIKey,
		Regions: cfg.OddsAPI.Regions,
	}, httpClient, appLog)

	normalizer := oddsapi.NewNormalizer(appLog)

	// One evaluator per sport, each backed by that sport's stats file
	jobs, err := buildSportJobs(cfg, appLog)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no enabled sports configured")
	}

	refreshSvc := service.NewRefreshService(
		oddsClient,
		normalizer,
		gameRepo,
		betRepo,
		jobs,
		service.RefreshConfig{
			Bookmakers:    append(append([]string{}, cfg.Engine.SharpBooks...), cfg.Engine.SoftBooks...),
			LookaheadDays: cfg.OddsAPI.LookaheadDays,
			StaleBetAge:   time.Duration(cfg.Scheduler.StaleBetHours) * time.Hour,
		},
		appLog,
	)

	// Health server, fed by cycle completions
	healthSrv := health.NewServer(health.Config{
		ServiceName: "prop-edge-scanner",
		Version:     Version,
		Logger:      appLog,
		DB:          db,
		MaxCycleAge: 3 * time.Duration(cfg.Scheduler.IntervalMinutes) * time.Minute,
	})
	refreshSvc.OnCycleComplete(healthSrv.RecordCycle)
	if err := healthSrv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	if cfg.Metrics.Enabled {
		startMetricsServer(cfg, appLog)
	}

	// Scheduler
	sched := scheduler.NewScheduler(refreshSvc, cfg.CycleTimeout(), appLog)
	if err := sched.ScheduleRefresh(cfg.Scheduler.IntervalMinutes); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	healthSrv.SetReady(true)

	if err := sched.Start(cfg.Scheduler.RunOnStart); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	appLog.WithField("next_run", sched.NextRun().Format(time.RFC3339)).Info("Scanner running")

	<-ctx.Done()
	appLog.Info("Shutdown signal received")

	healthSrv.SetReady(false)
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Scheduler stop failed")
	}

	appLog.Info("Scanner stopped")
	return nil
}

// buildSportJobs loads each enabled sport's historical stats and wraps it
// in an evaluator carrying the shared scoring policy.
func buildSportJobs(cfg *config.Config, appLog *logrus.Logger) ([]service.SportJob, error) {
	engineCfg := engine.Config{
		SharpBooks:   cfg.Engine.SharpBooks,
		SoftBooks:    cfg.Engine.SoftBooks,
		MinEVPercent: cfg.Engine.MinEVPercent,
		Workers:      cfg.Engine.Workers,
	}

	var jobs []service.SportJob
	for _, sport := range cfg.Stats.Sports {
		if !sport.Enabled {
			continue
		}

		scheme, err := schemeForSport(sport.Sport)
		if err != nil {
			return nil, err
		}

		source, err := stats.LoadCSV(sport.File, scheme)
		if err != nil {
			return nil, fmt.Errorf("failed to load stats for %s: %w", sport.Sport, err)
		}

		cached := stats.NewCachedSource(source, cfg.StatsCacheTTL())

		appLog.WithFields(logrus.Fields{
			"sport":   sport.Sport,
			"file":    sport.File,
			"markets": sport.Markets,
		}).Info("Loaded historical stats")

		jobs = append(jobs, service.SportJob{
			SportKey:  sport.Sport,
			Markets:   sport.Markets,
			Evaluator: engine.NewEvaluator(engineCfg, cached),
		})
	}

	return jobs, nil
}

func schemeForSport(sportKey string) (stats.Scheme, error) {
	switch sportKey {
	case oddsapi.SportNFL:
		return stats.NFLScheme(), nil
	case oddsapi.SportNBA:
		return stats.NBAScheme(), nil
	default:
		return stats.Scheme{}, fmt.Errorf("no stats scheme for sport: %s", sportKey)
	}
}

// startMetricsServer exposes the Prometheus registry on its own port.
func startMetricsServer(cfg *config.Config, appLog *logrus.Logger) {
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		appLog.WithField("addr", addr).Info("Metrics server starting")

		mux := newMetricsMux(cfg.Metrics.Path)
		if err := listenAndServe(addr, mux); err != nil {
			appLog.WithError(err).Error("Metrics server error")
		}
	}()
}
