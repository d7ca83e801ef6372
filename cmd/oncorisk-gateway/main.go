package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oncorisk-client/internal/api"
	"github.com/oncorisk-client/internal/config"
	"github.com/oncorisk-client/internal/domain"
	"github.com/oncorisk-client/internal/logging"
	"github.com/oncorisk-client/internal/schema"
	"github.com/oncorisk-client/internal/service"
	"github.com/oncorisk-client/pkg/external"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := logging.NewLogger(cfg.Logging)
	logger.Infof("Starting OncoRisk gateway on %s:%d", cfg.Server.Host, cfg.Server.Port)

	registry := schema.NewRegistry()
	predictor := external.NewPredictionClient(cfg.Prediction)
	extractor := external.NewResilientExtractor(external.NewExtractionClient(cfg.Extraction), cfg.Extraction)

	var notifier domain.CareTeamNotifier
	var profiles domain.ProfileStore
	if cfg.CareTeam.Enabled {
		store, err := external.NewCareTeamStore(cfg.CareTeam)
		if err != nil {
			log.Fatalf("Failed to connect to care-team store: %v", err)
		}
		defer store.Close()
		notifier = store
		profiles = store
	}

	analysis := service.NewAnalysisService(
		logger,
		registry,
		predictor,
		extractor,
		notifier,
		cfg.Prediction.DefaultThreshold,
	)

	server := api.NewServer(logger, cfg, registry, analysis, profiles)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	logger.Info("Server stopped")
}
