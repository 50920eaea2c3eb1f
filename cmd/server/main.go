package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/database"
	"github.com/aristath/valuator/internal/database/repositories"
	"github.com/aristath/valuator/internal/modules/companies"
	"github.com/aristath/valuator/internal/modules/report"
	"github.com/aristath/valuator/internal/scheduler"
	"github.com/aristath/valuator/internal/server"
	"github.com/aristath/valuator/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger not up yet
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Valuator")

	heuristics, err := config.LoadHeuristics(cfg.HeuristicsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load heuristics")
	}

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Wire services
	loader := companies.NewLoader(cfg.DataDir, log)
	reports := report.NewService(heuristics, log)
	valuations := repositories.NewValuationRepository(db.Conn(), log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	revalue := scheduler.NewRevalueJob(scheduler.RevalueJobConfig{
		Loader:     loader,
		Reports:    reports,
		Valuations: valuations,
		Log:        log,
	})

	if err := sched.AddJob(cfg.RevalueSchedule, revalue); err != nil {
		log.Fatal().Err(err).Msg("Failed to register revaluation job")
	}

	if cfg.RevalueOnStartup {
		go func() {
			if err := sched.RunNow(revalue); err != nil {
				log.Error().Err(err).Msg("Startup revaluation failed")
			}
		}()
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:       cfg.Port,
		Log:        log,
		Loader:     loader,
		Reports:    reports,
		Valuations: valuations,
		DevMode:    cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
