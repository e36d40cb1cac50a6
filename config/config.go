package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	AIServer  AIServerConfig
	Scraper   ScraperConfig
	Matching  MatchingConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AIServerConfig holds title-cleaning service configuration
type AIServerConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	TimeoutHint int           `mapstructure:"timeout_hint"` // seconds, sent in the request body
}

// ScraperConfig holds marketplace scraping configuration
type ScraperConfig struct {
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	MaxAttempts     int           `mapstructure:"max_attempts"`
	EmptyRetryDelay time.Duration `mapstructure:"empty_retry_delay"`
	ErrorRetryDelay time.Duration `mapstructure:"error_retry_delay"`
	CompareTimeout  time.Duration `mapstructure:"compare_timeout"` // deadline for a whole comparison run
	RatePerSecond   float64       `mapstructure:"rate_per_second"` // outbound request rate per site
	Burst           int           `mapstructure:"burst"`
}

// MatchingConfig holds similarity matching configuration
type MatchingConfig struct {
	Threshold          float64 `mapstructure:"threshold"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP, 0 disables
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pakbuyhatke/")

	// Environment variable settings. Nested keys map dots to underscores,
	// so scraper.max_attempts reads PAKBUYHATKE_SCRAPER_MAX_ATTEMPTS.
	v.SetEnvPrefix("PAKBUYHATKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare PORT and AI_SERVER_URL are honored so existing deployments keep working
	_ = v.BindEnv("server.port", "PAKBUYHATKE_SERVER_PORT", "PORT")
	_ = v.BindEnv("aiserver.base_url", "PAKBUYHATKE_AISERVER_BASE_URL", "AI_SERVER_URL")

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5001")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// AI title-cleaning server defaults
	v.SetDefault("aiserver.base_url", "http://localhost:5000")
	v.SetDefault("aiserver.timeout", "5s")
	v.SetDefault("aiserver.timeout_hint", 3)

	// Scraper defaults
	v.SetDefault("scraper.fetch_timeout", "15s")
	v.SetDefault("scraper.max_attempts", 2)
	v.SetDefault("scraper.empty_retry_delay", "1s")
	v.SetDefault("scraper.error_retry_delay", "2s")
	v.SetDefault("scraper.compare_timeout", "45s")
	v.SetDefault("scraper.rate_per_second", 1.0)
	v.SetDefault("scraper.burst", 3)

	// Matching defaults
	v.SetDefault("matching.threshold", 0.70)
	v.SetDefault("matching.enable_debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.AIServer.BaseURL == "" {
		return fmt.Errorf("AI server base URL is required (set AI_SERVER_URL)")
	}

	if config.Matching.Threshold <= 0 || config.Matching.Threshold > 1.10 {
		return fmt.Errorf("matching threshold must be in (0, 1.10], got: %v", config.Matching.Threshold)
	}

	if config.Scraper.MaxAttempts < 1 {
		return fmt.Errorf("scraper max attempts must be at least 1, got: %d", config.Scraper.MaxAttempts)
	}

	if config.Scraper.FetchTimeout <= 0 {
		return fmt.Errorf("scraper fetch timeout must be positive, got: %v", config.Scraper.FetchTimeout)
	}

	return nil
}
