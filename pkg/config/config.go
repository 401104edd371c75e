package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// CORS
	CORSAllowedOrigins []string

	// Rate limiting (requests per period, per client IP)
	RateLimitPeriod   time.Duration
	RateLimitRequests int64
}

// LoadConfig loads configuration from environment variables and a .env file
// if one is present. Environment variables take precedence over .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	rlPeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	rlPeriod, err := time.ParseDuration(rlPeriodStr)
	if err != nil {
		rlPeriod = time.Minute
		if rlPeriodStr != "" {
			log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", rlPeriodStr, rlPeriod)
		}
	}
	cfg.RateLimitPeriod = rlPeriod

	cfg.RateLimitRequests = viper.GetInt64("RATE_LIMIT_REQUESTS")
	if cfg.RateLimitRequests <= 0 {
		cfg.RateLimitRequests = 120
	}

	return cfg, nil
}
