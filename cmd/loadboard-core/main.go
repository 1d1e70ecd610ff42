package main

// @title           Loadboard Core API
// @version         1.0
// @description     Freight load listings and customer conversation records over flat JSON-file collections, with webhook ingestion of call-extraction payloads.

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey APIKeyAuth
// @in header
// @name X-API-Key
// @description Static shared-secret API key

import (
	"os"

	"go.uber.org/zap"

	"github.com/freightdesk/loadboard-core/internal/adapters/driven/jsonfile"
	"github.com/freightdesk/loadboard-core/internal/adapters/driving/http"
	"github.com/freightdesk/loadboard-core/internal/core/services"
	"github.com/freightdesk/loadboard-core/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err), zap.String("path", configPath))
	}

	// Flat-file stores
	loadStore := jsonfile.NewLoadStore(cfg.Storage.LoadsFile)
	conversationStore := jsonfile.NewConversationStore(cfg.Storage.ConversationsFile)
	logger.Info("using flat-file storage",
		zap.String("loads", cfg.Storage.LoadsFile),
		zap.String("conversations", cfg.Storage.ConversationsFile))

	// Services (core business logic)
	page := services.Pagination{
		DefaultLimit: cfg.Query.DefaultLimit,
		MaxLimit:     cfg.Query.MaxLimit,
	}
	loadService := services.NewLoadService(loadStore, page)
	conversationService := services.NewConversationService(conversationStore, page)
	ingestService := services.NewIngestService(conversationStore, logger)

	server := http.NewServer(
		http.Config{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			APIKey:         cfg.Auth.APIKey,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
		logger,
		loadService,
		conversationService,
		ingestService,
	)

	if err := server.Start(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
