package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/scorebot/internal/api/rest"
	"github.com/fortuna/scorebot/internal/api/websocket"
	"github.com/fortuna/scorebot/internal/assistant"
	"github.com/fortuna/scorebot/internal/cache"
	"github.com/fortuna/scorebot/internal/command"
	"github.com/fortuna/scorebot/internal/config"
	"github.com/fortuna/scorebot/internal/ingest/bref"
	"github.com/fortuna/scorebot/internal/service"
	"github.com/fortuna/scorebot/internal/store"
	"github.com/fortuna/scorebot/internal/store/repository"
	"github.com/fortuna/scorebot/internal/teams"
)

const (
	serviceName    = "scorebot"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Baseball Results Assistant", serviceName, serviceVersion)

	cfg := config.LoadConfig()

	dir := loadTeams(cfg)
	log.Printf("✓ Team directory loaded (%d teams)", dir.Len())

	// Page fetcher
	var fetcher bref.PageFetcher
	if cfg.Source.Mode == "browser" {
		browser := bref.NewBrowserFetcher(cfg.Source.MinRequestInterval)
		defer browser.Close()
		fetcher = browser
		log.Println("✓ Headless browser fetcher ready")
	} else {
		fetcher = bref.NewHTTPFetcher(cfg.Source.MinRequestInterval)
		log.Println("✓ HTTP fetcher ready")
	}

	// Optional page cache
	var pageCache bref.PageCache
	var cacheHealth rest.HealthChecker
	if cfg.CacheEnabled() {
		redisCache := connectRedis(cfg.Redis.URL, cfg.Redis.PageCacheTTL)
		defer redisCache.Close()
		pageCache = redisCache
		cacheHealth = redisCache
		log.Printf("✓ Page cache enabled (ttl %v)", cfg.Redis.PageCacheTTL)
	}

	source := bref.NewClient(cfg.Source.BaseURL, fetcher, pageCache)
	games := service.NewGameService(source, dir, time.Now)
	router := assistant.NewRouter(command.NewParser(dir), games)

	// REST API server
	restServer := rest.NewServer(cfg.Server.RESTPort, router, dir, cacheHealth, cfg.Server.CommandTimeout)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.Server.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	// WebSocket session server
	wsServer := websocket.NewServer(router, cfg.Server.CommandTimeout)
	go func() {
		if err := wsServer.Start(cfg.Server.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s/api/v1/commands", cfg.Server.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/assistant", cfg.Server.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

// loadTeams reads the team directory from Postgres when ATLAS_DSN is set,
// seeding it on first run, and falls back to the built-in table otherwise.
func loadTeams(cfg *config.Config) *teams.Directory {
	if cfg.Database.DSN == "" {
		return teams.MustDefault()
	}

	db, err := store.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to team database: %v", err)
	}
	defer db.Close()
	log.Println("✓ Connected to team database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}
	if err := db.SeedTeams(ctx, store.SportMLB, teams.MLB); err != nil {
		log.Printf("⚠️  Seed data warning: %v (continuing anyway)", err)
	}

	dir, err := repository.NewTeamRepository(db).LoadDirectory(ctx, store.SportMLB)
	if err != nil {
		log.Fatalf("Failed to load team directory: %v", err)
	}
	return dir
}

// connectRedis retries until Redis is reachable
func connectRedis(url string, ttl time.Duration) *cache.RedisCache {
	const maxRetries = 30
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; ; i++ {
		redisCache, err := cache.NewRedisCache(url, ttl)
		if err == nil {
			return redisCache
		}
		if i >= maxRetries-1 {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
		log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
		time.Sleep(retryDelay)
	}
}
