package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"noion/internal/auth"
	"noion/internal/blocktypes"
	"noion/internal/config"
	"noion/internal/domain/repositories"
	"noion/internal/handler"
	"noion/internal/middleware"
	"noion/internal/repository/jsonstore"
	"noion/internal/repository/postgres"
	"noion/internal/service"
	"noion/internal/storage/jsonfile"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_backend", cfg.StorageBackend,
	)

	// Session token manager
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, logger)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// Block kind registry
	registry, err := blocktypes.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load block kind registry: %v", err)
	}

	// Create repositories over the selected storage backend
	ctx := context.Background()
	var pageRepo repositories.PageRepository
	var blockRepo repositories.BlockRepository

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		pageRepo = postgres.NewPageRepository(repoConfig)
		blockRepo = postgres.NewBlockRepository(repoConfig)

		logger.Info("database connected", "table_prefix", cfg.TablePrefix)

	default:
		store := jsonfile.New(cfg.DataFile, logger)
		pageRepo = jsonstore.NewPageRepository(store, logger)
		blockRepo = jsonstore.NewBlockRepository(store, logger)

		logger.Info("file store opened", "path", cfg.DataFile)
	}

	// Create services
	pageService := service.NewPageService(pageRepo, logger)
	blockService := service.NewBlockService(blockRepo, registry, logger)
	taskService := service.NewTaskService(pageRepo, blockRepo, logger)

	// Create handlers
	pageHandler := handler.NewPageHandler(pageService, logger)
	blockHandler := handler.NewBlockHandler(blockService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	sessionHandler := handler.NewSessionHandler(sessions, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", pageHandler.HealthCheck)

	// Page routes
	mux.HandleFunc("GET /api/pages", pageHandler.ListPages)
	mux.HandleFunc("POST /api/pages", pageHandler.CreatePage)
	mux.HandleFunc("GET /api/pages/{id}", pageHandler.GetPage)
	mux.HandleFunc("PATCH /api/pages/{id}", pageHandler.UpdateTitle)
	mux.HandleFunc("DELETE /api/pages/{id}", pageHandler.DeletePage)
	mux.HandleFunc("POST /api/pages/{id}/archive", pageHandler.ArchivePage)

	// Block routes
	mux.HandleFunc("GET /api/pages/{id}/blocks", blockHandler.ListBlocks)
	mux.HandleFunc("PUT /api/pages/{id}/blocks", blockHandler.ReplaceBlocks)

	// Task projection
	mux.HandleFunc("GET /api/tasks", taskHandler.ListTasks)

	// Session routes
	mux.HandleFunc("POST /api/auth/session", sessionHandler.SetSession)
	mux.HandleFunc("DELETE /api/auth/session", sessionHandler.ClearSession)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Session -> Routes
	h = middleware.Session(sessions)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
