package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Routing   RoutingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	GeminiAPIKey      string
	GeminiModel       string
	OllamaBaseURL     string
	OllamaModel       string
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	EmbedTopic        string
}

// RetrievalConfig bounds the context assembly stage.
type RetrievalConfig struct {
	MaxContextChars          int
	PrimaryHitsPerCollection int
	FallbackTriggerThreshold int
	StrongMatchThreshold     float64
	CacheTTL                 time.Duration
}

// RoutingConfig bounds the primary/fallback model race.
type RoutingConfig struct {
	PrimaryTimeout  time.Duration
	FallbackEnabled bool
	MaxHistoryTurns int
	DailyUsageLimit int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_MODEL", "llama3"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			EmbedTopic:        getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT"),
		},
		Retrieval: RetrievalConfig{
			MaxContextChars:          getEnvAsInt("MAX_CONTEXT_CHARS", 6000),
			PrimaryHitsPerCollection: getEnvAsInt("PRIMARY_HITS_PER_COLLECTION", 5),
			FallbackTriggerThreshold: getEnvAsInt("FALLBACK_TRIGGER_THRESHOLD", 3),
			StrongMatchThreshold:     getEnvAsFloat("STRONG_MATCH_THRESHOLD", 0.6),
			CacheTTL:                 time.Duration(getEnvAsInt("CACHE_TTL_MS", 60000)) * time.Millisecond,
		},
		Routing: RoutingConfig{
			PrimaryTimeout:  time.Duration(getEnvAsInt("PRIMARY_TIMEOUT_MS", 12000)) * time.Millisecond,
			FallbackEnabled: getEnvAsBool("FALLBACK_ENABLED", true),
			MaxHistoryTurns: getEnvAsInt("MAX_HISTORY_TURNS", 20),
			DailyUsageLimit: getEnvAsInt("DAILY_USAGE_LIMIT", 200),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
