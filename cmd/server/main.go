package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"docshelf/internal/auth"
	"docshelf/internal/config"
	"docshelf/internal/domain/repositories"
	docsRepo "docshelf/internal/domain/repositories/docs"
	"docshelf/internal/handler"
	"docshelf/internal/middleware"
	"docshelf/internal/repository/localstore"
	"docshelf/internal/repository/postgres"
	postgresDocs "docshelf/internal/repository/postgres/docs"
	serviceDocs "docshelf/internal/service/docs"
	"docshelf/internal/templates"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging: JSON to stdout plus a timestamped file
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
	if err != nil {
		log.Printf("file logging disabled: %v", err)
	} else {
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
	)

	// Wire the document store backend
	var (
		store     docsRepo.DocumentStore
		notifier  docsRepo.ChangeNotifier
		txManager repositories.TransactionManager
	)

	switch cfg.StoreBackend {
	case "postgres":
		ctx := context.Background()
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		logger.Info("database connected", "table_prefix", cfg.TablePrefix)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		store = postgresDocs.NewDocumentStore(repoConfig)
		notifier = postgres.NewListener(pool, logger)
		txManager = postgres.NewTransactionManager(pool)

	case "local":
		blobStore := localstore.New(cfg.StorePath, logger)
		store = blobStore
		notifier = blobStore
		txManager = blobStore
		logger.Info("local store opened", "path", cfg.StorePath)

	default:
		log.Fatalf("Unknown STORE_BACKEND %q (want local or postgres)", cfg.StoreBackend)
	}

	// Load the built-in page template catalog
	catalog, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load template catalog: %v", err)
	}

	// Create services
	docService := serviceDocs.NewDocumentService(store, txManager, catalog, logger)
	treeService := serviceDocs.NewTreeService(store, notifier, logger)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)
	templateHandler := handler.NewTemplateHandler(catalog, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Project-scoped routes
	mux.HandleFunc("GET /api/projects/{id}/tree", treeHandler.GetTree)
	mux.HandleFunc("GET /api/projects/{id}/tree/watch", treeHandler.WatchTree)
	mux.HandleFunc("GET /api/projects/{id}/documents", docHandler.ListProjectDocuments)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("POST /api/documents/{id}/duplicate", docHandler.DuplicateDocument)

	// Template routes
	mux.HandleFunc("GET /api/templates", templateHandler.ListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", templateHandler.GetTemplate)

	// Build middleware chain (applied in reverse order, they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	var httpHandler http.Handler = mux

	if cfg.AuthDisabled {
		logger.Warn("AUTH DISABLED: requests run as a fixed dev user (never use in production!)")
		httpHandler = middleware.DevAuthMiddleware("dev-user")(httpHandler)
	} else {
		jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
		httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	}

	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE watch streams
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
