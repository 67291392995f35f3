package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vgshop/listingresolver/config"
	"vgshop/listingresolver/helpers"
	"vgshop/listingresolver/internal/resolver"
	"vgshop/listingresolver/logger"
	"vgshop/listingresolver/server"
	"vgshop/listingresolver/services/cache"
	"vgshop/listingresolver/services/publisher"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("http_addr", cfg.HTTPAddr).
		Dur("request_timeout", cfg.RequestTimeout).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services := initializeServices(ctx, cfg)
	defer services.Cleanup()

	// Build the resolver
	fetcher := helpers.NewHTTPFetcher(cfg.RequestTimeout)
	steam := resolver.NewSteamFetcher(fetcher, cfg.SteamStoreURL)
	psn := resolver.NewPSNScraper(fetcher, services.Cache, cfg.PSNBlockTime)
	normalizer := resolver.NewNormalizer(cfg.SteamStoreURL, cfg.PSNStoreURL)
	res := resolver.New(steam, psn, normalizer)

	// Create and start the HTTP server
	srv := server.NewServer(res, services.Publisher)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start(cfg.HTTPAddr)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-serverDone:
		if err != nil {
			log.Error().Err(err).Msg("Server exited with error")
		} else {
			log.Info().Msg("Server exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices initializes the optional cache and publisher services
func initializeServices(ctx context.Context, cfg config.Config) *Services {
	services := &Services{
		Publisher: publisher.NewNoopPublisher(),
	}

	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	}

	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services
}
