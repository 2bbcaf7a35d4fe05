package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rp-projects/netball-api/internal/analyzer"
	"github.com/rp-projects/netball-api/internal/api"
	"github.com/rp-projects/netball-api/internal/cache"
	"github.com/rp-projects/netball-api/internal/config"
	"github.com/rp-projects/netball-api/internal/repository/postgres"
	"github.com/rp-projects/netball-api/internal/service"
	"github.com/rp-projects/netball-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize collaborators
	store, err := storage.NewS3Storage(context.Background(), cfg.S3Bucket, cfg.AWSRegion)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	scorer := analyzer.NewClient(cfg.AnalyzerBaseURL)

	var lbCache *cache.LeaderboardCache
	if cfg.RedisURL != "" {
		lbCache, err = cache.NewLeaderboardCache(cfg.RedisURL, cfg.LeaderboardCacheTTL)
		if err != nil {
			log.Printf("leaderboard cache disabled: %v", err)
			lbCache = nil
		} else {
			defer lbCache.Close()
		}
	}

	// Initialize services
	services := service.NewServices(repos, cfg, store, scorer, lbCache)

	// Initialize router
	router := api.NewRouter(services)

	// Create server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      10 * time.Minute, // analyze requests wait on the scorer
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
