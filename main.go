// api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"marketplace/api/config"
	"marketplace/api/database"
	"marketplace/api/facets"
	"marketplace/api/handlers"
	"marketplace/api/logger"
	"marketplace/api/store"
	"marketplace/api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := run(cfg, appLog); err != nil {
		appLog.Error("Filter-counts API stopped", "error", err)
		appLog.Sync()
		os.Exit(1)
	}
	appLog.Sync()
}

// run wires the stores and serves HTTP until SIGINT or SIGTERM. Every opened
// client is closed before it returns, including on error.
func run(cfg *config.Config, appLog *logger.Logger) error {
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// --- PostgreSQL (categories, items, attribute count views) ---
	dbClient, err := database.NewPostgresDB(ctx, cfg.Postgres, appLog)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL database: %w", err)
	}
	defer dbClient.Close()

	health := map[string]handlers.Pinger{"postgres": dbClient}

	// --- Attribute counts: Postgres views or ClickHouse tables ---
	var counts facets.AttributeCountStore = store.NewAttributeCountStore(dbClient.DB)
	if cfg.CountsBackend == utils.BackendClickHouse {
		chClient, err := database.NewClickHouseDB(ctx, cfg.ClickHouse, appLog)
		if err != nil {
			return fmt.Errorf("failed to initialize ClickHouse database: %w", err)
		}
		defer chClient.Close()
		counts = store.NewClickHouseCountStore(chClient)
		health["clickhouse"] = chClient
	}

	aggregator := facets.NewAggregator(
		store.NewCategoryStore(dbClient.DB),
		counts,
		store.NewItemStore(dbClient.DB),
		appLog,
	)

	facetHandlers := handlers.NewFacetHandlers(aggregator, cfg.QueryTimeout, appLog)
	healthHandlers := handlers.NewHealthHandlers(health)

	r := handlers.NewRouter(facetHandlers, healthHandlers, cfg.CORSAllowOrigin, appLog)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLog.Info("Filter-counts API starting", "port", cfg.Port, "counts_backend", cfg.CountsBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLog.Info("Server exiting")
	return nil
}
