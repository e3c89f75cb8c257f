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

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// AnomalyThreshold is the month-over-month headcount swing (as a ratio)
	// at which the review dashboard flags a report.
	AnomalyThreshold float64

	// StatsCompletionCutoff is the filing-completion rate under which the
	// aggregation engine falls back to the last complete month.
	StatsCompletionCutoff float64

	// RateLimit is an ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "labor-report-backend")
	viper.SetDefault("ANOMALY_THRESHOLD", 0.30)
	viper.SetDefault("STATS_COMPLETION_CUTOFF", 0.50)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AnomalyThreshold = viper.GetFloat64("ANOMALY_THRESHOLD")
	if cfg.AnomalyThreshold <= 0 || cfg.AnomalyThreshold >= 1 {
		log.Printf("Warning: ANOMALY_THRESHOLD %.2f out of (0, 1). Defaulting to 0.30.\n", cfg.AnomalyThreshold)
		cfg.AnomalyThreshold = 0.30
	}

	cfg.StatsCompletionCutoff = viper.GetFloat64("STATS_COMPLETION_CUTOFF")
	if cfg.StatsCompletionCutoff <= 0 || cfg.StatsCompletionCutoff > 1 {
		log.Printf("Warning: STATS_COMPLETION_CUTOFF %.2f out of (0, 1]. Defaulting to 0.50.\n", cfg.StatsCompletionCutoff)
		cfg.StatsCompletionCutoff = 0.50
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
