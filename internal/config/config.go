package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Backends. Both are optional: an empty URL selects the in-memory
	// implementation, which is the default for local runs and tests.
	PostgresURL string
	RedisURL    string

	// Signal feeds
	FeedsDir    string
	FeedTimeout time.Duration

	// Context cache
	CacheTTL time.Duration

	// Pattern analysis
	MinAnalysisWindow    int
	MaxAnalysisWindow    int
	PoorGameMultiplier   float64
	BounceBackMultiplier float64

	// Badge transform cutoffs, overriding the standard tables.
	StreakElite     int
	StreakActive    int
	HRTopRank       int
	HRMidRank       int
	SlotMinGames    int
	CoOccurrenceMin int

	// Ingest worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		PostgresURL: getEnv("POSTGRES_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		FeedsDir:    getEnv("FEEDS_DIR", ""),
		FeedTimeout: getEnvDuration("FEED_TIMEOUT", 2*time.Second),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		MinAnalysisWindow:    getEnvInt("MIN_ANALYSIS_WINDOW", 5),
		MaxAnalysisWindow:    getEnvInt("MAX_ANALYSIS_WINDOW", 25),
		PoorGameMultiplier:   getEnvFloat("POOR_GAME_MULTIPLIER", 0.7),
		BounceBackMultiplier: getEnvFloat("BOUNCE_BACK_MULTIPLIER", 1.2),

		StreakElite:     getEnvInt("STREAK_ELITE", 8),
		StreakActive:    getEnvInt("STREAK_ACTIVE", 5),
		HRTopRank:       getEnvInt("HR_TOP_RANK", 5),
		HRMidRank:       getEnvInt("HR_MID_RANK", 15),
		SlotMinGames:    getEnvInt("SLOT_MIN_GAMES", 5),
		CoOccurrenceMin: getEnvInt("CO_OCCURRENCE_MIN", 3),

		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		QueueSize:     getEnvInt("QUEUE_SIZE", 5000),
		BatchSize:     getEnvInt("BATCH_SIZE", 200),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
