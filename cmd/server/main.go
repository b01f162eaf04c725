package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/shelfaware/backend/config"
	httpDelivery "github.com/shelfaware/backend/internal/delivery/http"
	"github.com/shelfaware/backend/internal/domain"
	"github.com/shelfaware/backend/internal/infrastructure/classifier"
	"github.com/shelfaware/backend/internal/infrastructure/store"
	"github.com/shelfaware/backend/internal/infrastructure/upcdb"
	"github.com/shelfaware/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting shelfaware-backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.String("provider", cfg.UPC.Provider),
	)

	ctx := context.Background()

	// Initialize the product store
	var productStore domain.ProductStore
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := store.Connect(ctx, cfg.Store.DSN)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := store.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("failed to ensure schema", zap.Error(err))
		}
		productStore = store.NewPostgresStore(pool)
	default:
		productStore = store.NewMemoryStore()
	}

	// Initialize the barcode lookup client
	lookupClient := upcdb.NewClient(upcdb.Config{
		Provider:          domain.SourceKind(cfg.UPC.Provider),
		APIKey:            cfg.UPC.APIKey,
		BaseURL:           cfg.UPC.BaseURL,
		RequestsPerWindow: cfg.UPC.RequestsPerWindow,
		Window:            cfg.UPC.Window,
		Timeout:           cfg.UPC.Timeout,
	}, logger)

	// Initialize the Gemini classifier
	geminiClassifier, err := classifier.NewGemini(ctx, classifier.Config{
		APIKey: cfg.Classifier.APIKey,
		Model:  cfg.Classifier.Model,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create classifier", zap.Error(err))
	}

	// Initialize usecase layer
	resolver := usecase.NewResolver(
		productStore,
		lookupClient,
		geminiClassifier,
		usecase.ResolverConfig{RefreshEnrichment: cfg.Resolver.RefreshEnrichment},
		logger,
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(resolver, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
