package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Kenzousimba/IphoneVintedbot/config"
	"github.com/Kenzousimba/IphoneVintedbot/internal/classify"
	"github.com/Kenzousimba/IphoneVintedbot/internal/scraper"
	"github.com/Kenzousimba/IphoneVintedbot/internal/search"
	"github.com/Kenzousimba/IphoneVintedbot/logger"
	"github.com/Kenzousimba/IphoneVintedbot/services/cache"
	"github.com/Kenzousimba/IphoneVintedbot/services/ledger"
	"github.com/Kenzousimba/IphoneVintedbot/services/notifier"
	"github.com/Kenzousimba/IphoneVintedbot/services/publisher"
	"github.com/Kenzousimba/IphoneVintedbot/services/worker"
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
		Dur("check_interval", cfg.CheckInterval).
		Int("price_to", cfg.PriceTo).
		Msg("Starting application")

	// Build the search space once at startup
	profile := search.DefaultProfile(cfg.PriceTo)
	queries := search.BuildQueries(cfg.CatalogBaseURL, profile)
	log.Info().Int("query_count", len(queries)).Msg("Built search queries")
	for _, q := range queries {
		log.Debug().Str("key", q.Key).Str("url", q.URL).Msg("Watching search")
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(ctx, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	scr, err := scraper.New(cfg.CatalogBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scraper")
	}
	classifier := classify.New(profile.Marker, profile.Variants, nil)

	// Create and start worker
	w := worker.NewWorker(
		ctx,
		queries,
		scr,
		classifier,
		services.Ledger,
		services.Notifier,
		services.Publisher,
		cfg.CheckInterval,
	)

	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting listing monitor")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker exit
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-workerDone:
		if err != nil {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Ledger    ledger.Ledger
	Notifier  notifier.Notifier
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if s.Ledger != nil {
		s.Ledger.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Open the seen ledger, with an optional memcache fast path in front
	var opts []ledger.Option
	if cfg.MemcacheAddr != "" {
		opts = append(opts, ledger.WithCache(cache.NewMemcacheService(cfg.MemcacheAddr)))
		logger.Info("Using Memcache at %s for seen lookups", cfg.MemcacheAddr)
	}

	seenLedger, err := ledger.Open(cfg.LedgerPath, opts...)
	if err != nil {
		return nil, err
	}
	services.Ledger = seenLedger
	logger.Info("Opened seen ledger at %s", cfg.LedgerPath)

	// Telegram notifier
	services.Notifier = notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)

	// Optional Redis fan-out
	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		logger.Info("Publishing findings to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services, nil
}
