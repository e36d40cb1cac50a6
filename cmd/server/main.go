package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/config"
	httpDelivery "github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/delivery/http"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/infrastructure/aiclean"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/infrastructure/cache"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/infrastructure/scraper"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/observability"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PakBuyHatke Scraping Server v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	observability.Register()

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	cleaner := aiclean.NewClient(cfg.AIServer.BaseURL, cfg.AIServer.Timeout, cfg.AIServer.TimeoutHint)
	log.Printf("AI title cleaner: %s (local fallback on failure)", cfg.AIServer.BaseURL)

	adapters := scraper.Registry(scraper.Options{
		FetchTimeout:  cfg.Scraper.FetchTimeout,
		RatePerSecond: cfg.Scraper.RatePerSecond,
		Burst:         cfg.Scraper.Burst,
		Debug:         cfg.Matching.EnableDebugLogging,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		cleaner.SetDebug(true)
		log.Printf("AI cleaner debug mode enabled")
	}

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		memoryCache,
		cleaner,
		adapters,
		usecase.ComparisonServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			CompareTimeout:     cfg.Scraper.CompareTimeout,
			MatchThreshold:     cfg.Matching.Threshold,
			MaxAttempts:        cfg.Scraper.MaxAttempts,
			EmptyRetryDelay:    cfg.Scraper.EmptyRetryDelay,
			ErrorRetryDelay:    cfg.Scraper.ErrorRetryDelay,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: threshold=%.2f, debug=%v", cfg.Matching.Threshold, cfg.Matching.EnableDebugLogging)
	log.Printf("Sites: %v", comparisonService.Sites())

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(comparisonService, cfg.AIServer.BaseURL, comparisonService.Sites())

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// A missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
