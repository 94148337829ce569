package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/client"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/config"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/dashboard"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	api, err := client.New(cfg.APIBaseURL, 60*time.Second)
	if err != nil {
		logger.Fatal("Failed to create API client", "error", err)
	}

	flash := &dashboard.FlashAlerter{}
	ctrl := dashboard.NewController(api, flash, cfg.DefaultPageSize, logger)

	// Initial history load; an unreachable API just leaves it empty.
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	ctrl.FetchHistory(initCtx, 1)
	initCancel()

	srv := &http.Server{
		Addr:         ":" + cfg.DashboardPort,
		Handler:      dashboard.NewServer(ctrl, flash, logger, cfg.MaxFileSize).Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting dashboard", "port", cfg.DashboardPort, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Dashboard failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down dashboard...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Dashboard forced to shutdown", "error", err)
	}

	logger.Info("Dashboard exited")
}
