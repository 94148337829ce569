package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/config"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/db"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/repository"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/router"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/services"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/storage"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
)

// @title Chemical Equipment Visualizer API
// @version 1.0
// @description Upload equipment CSVs, browse history, preview rows and download PDF reports.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize database
	database, err := db.NewSQLiteDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	// Run migrations
	if err := db.RunMigrations(database); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Initialize file storage
	initCtx, initCancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := storage.New(initCtx, cfg)
	initCancel()
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err, "backend", cfg.StorageBackend)
	}

	// Initialize dataset service
	repo := repository.NewRepository(database)
	datasetService := services.NewService(repo, store, cfg, logger)

	// Setup HTTP router
	handler := router.NewRouter(datasetService, logger, router.Options{
		MaxFileSize:   cfg.MaxFileSize,
		PublicBaseURL: cfg.PublicBaseURL,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
