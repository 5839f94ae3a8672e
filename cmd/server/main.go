package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/internal/infrastructure/persistence"
	"farewatch-service/internal/interface/browser"
	repo "farewatch-service/internal/interface/repository"
	"farewatch-service/internal/usecase"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"
	"farewatch-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting FareWatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Group membership lives in PostgreSQL next to the rest of the
	// reference data.
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	routeRepository := repo.NewMongoRouteRepository(db)
	groupRepository := repo.NewGormGroupRepository(gormDB)
	messengerRepository := repo.NewTelegramRepository(log, cfg.TelegramAPIURL, cfg.TelegramToken)

	// Set up metrics
	m := metrics.NewMetrics("farewatch", prometheus.DefaultRegisterer)

	// Set up the monitoring cycle
	fareParser := utils.NewFareParser()
	fetcher := usecase.NewFareFetcher(fareParser, usecase.FetcherConfig{
		NavigationTimeout:  cfg.NavigationTimeout,
		ContentWaitTimeout: cfg.ContentWaitTimeout,
		RecoverySettle:     cfg.RecoverySettle,
		RouteSettle:        cfg.RouteSettle,
	}, log)
	reconciler := usecase.NewPriceReconciler(routeRepository, log)
	fanout := usecase.NewNotificationFanout(groupRepository, messengerRepository, log)
	renderClient := browser.NewChromeClient(log, cfg.ChromeExecutable)
	orchestrator := usecase.NewMonitorOrchestrator(routeRepository, renderClient, fetcher, reconciler, fanout, m, log)

	// Run scheduled cycles in a goroutine
	go func() {
		ticker := time.NewTicker(cfg.CheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Cycle scheduler stopped")
				return
			case <-ticker.C:
				if err := orchestrator.RunCycle(ctx); err != nil {
					if errors.Is(err, usecase.ErrCycleInProgress) {
						log.Warn("Skipping scheduled cycle, previous one still running")
						continue
					}
					log.Error("Monitoring cycle failed", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics and the manual trigger
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		go func() {
			if err := orchestrator.RunCycle(ctx); err != nil && !errors.Is(err, usecase.ErrCycleInProgress) {
				log.Error("Manual cycle failed", "error", err)
			}
		}()
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("Cycle triggered"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("FareWatch Service stopped")
}
