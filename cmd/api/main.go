package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/presence-analyzer/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/presence-analyzer/internal/adapters/handler/http"
	"github.com/comitanigiacomo/presence-analyzer/internal/adapters/repository"
	"github.com/comitanigiacomo/presence-analyzer/internal/config"
	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
	"github.com/comitanigiacomo/presence-analyzer/internal/core/services"
	"github.com/comitanigiacomo/presence-analyzer/internal/core/workers"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Critical: Invalid configuration: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	csvRepo := repository.NewCSVPresenceRepository(cfg.DataCSV)
	if _, err := csvRepo.Fingerprint(ctx); err != nil {
		log.Printf("Warning: %v", err)
	}

	var presenceRepo domain.PresenceRepository = csvRepo
	var rdb *redis.Client

	if cfg.Redis.Enabled() {
		log.Println("Connecting to redis...")
		rdb, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Warning: %v. Serving without cache.", err)
		} else {
			defer rdb.Close()
			presenceRepo = repository.NewCachedPresenceRepository(csvRepo, rdb, cfg.CacheTTL)

			warmer := workers.NewCacheWarmer(presenceRepo, cfg.WarmInterval)
			warmer.Start(ctx)
			warmer.Enqueue("startup")

			log.Println("Redis connected, presence cache enabled.")
		}
	}

	statsService := services.NewStatsService(presenceRepo)
	presenceHandler := adapterHTTP.NewPresenceHandler(statsService)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		PresenceHandler: presenceHandler,
		DataSource:      csvRepo,
		Redis:           rdb,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
		StaticDir:       cfg.StaticDir,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Presence Analyzer running on http://localhost:%s (data: %s)", cfg.Port, cfg.DataCSV)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
