package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookstreak/internal/core"
	httpProtocol "bookstreak/internal/protocols/http"
	"bookstreak/internal/repository"
	"bookstreak/pkg/badges"
	"bookstreak/pkg/cache"
	"bookstreak/pkg/config"
	"bookstreak/pkg/database"
	"bookstreak/pkg/logger"
)

func main() {
	configPath := flag.String("config", "./configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)
	logger.Info("Starting bookstreak server...")

	// Badge catalog: built-in defaults, optionally replaced from YAML
	catalog, err := badges.Load(cfg.Badges.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load badge catalog: %v", err)
	}
	logger.Infof("Loaded badge catalog with %d badges", catalog.Len())

	pool, err := database.NewPGXPool(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	logger.Info("Connected to PostgreSQL database")

	// Redis is optional; without it stats are computed on every request
	var statsCache *cache.Cache
	if cfg.Redis.Enabled {
		statsCache, err = cache.New(context.Background(), cfg.Redis.CacheConfig())
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer statsCache.Close()
		logger.Info("Connected to Redis cache")
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	readingRepo := repository.NewReadingRepository(pool)
	badgeRepo := repository.NewBadgeRepository(pool)
	friendRepo := repository.NewFriendRepository(pool)

	// Core services
	authSvc := core.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	badgeSvc := core.NewBadgeService(catalog, badgeRepo, readingRepo, userRepo, friendRepo)
	statsSvc := core.NewStatsService(userRepo, bookRepo, readingRepo, friendRepo, badgeSvc, statsCache)
	bookSvc := core.NewBookService(bookRepo)
	readingSvc := core.NewReadingService(readingRepo, bookRepo, statsSvc)
	friendSvc := core.NewFriendService(friendRepo, userRepo, readingRepo, badgeSvc)
	leaderboardSvc := core.NewLeaderboardService(userRepo, friendRepo, readingRepo)

	logger.Info("Initialized all core services")

	server := httpProtocol.NewServer(
		cfg,
		authSvc,
		bookSvc,
		readingSvc,
		statsSvc,
		badgeSvc,
		friendSvc,
		leaderboardSvc,
	)

	go func() {
		addr := cfg.Server.Addr()
		logger.Infof("HTTP server listening on %s", addr)
		if err := server.Start(addr); err != nil {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
}
