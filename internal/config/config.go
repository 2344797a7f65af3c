package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// Gemini (topic validation, comprehensive summary, grounded answers,
	// embeddings)
	GeminiAPIKey         string
	GeminiModel          string
	GeminiEmbeddingModel string

	// Ollama (per-paper summaries on a small local model)
	OllamaModel     string
	OllamaServerURL string

	// arXiv search
	ArxivBaseURL    string
	ArxivMaxResults int

	// Pinecone vector index (one namespace per session)
	PineconeHost   string
	PineconeAPIKey string

	// RAG indexing parameters
	ChunkSize       int
	ChunkOverlap    int
	MinChunkChars   int
	VectorDim       int
	UpsertBatchSize int
	MetadataTextMax int
	QueryTopK       int
	PDFFetchTimeout time.Duration

	// Session store
	SessionBackend string // "memory" (default) or "redis"
	SessionTTL     time.Duration
	SweepInterval  time.Duration

	// Redis (session store backend + rate limiting when enabled)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Rate limiting (requires the redis backend)
	RateLimitReqs   int
	RateLimitWindow int

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),

		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDINGS_MODEL", "text-embedding-004"),

		OllamaModel:     getEnv("OLLAMA_MODEL", "qwen2.5:0.5b"),
		OllamaServerURL: getEnv("OLLAMA_SERVER_URL", "http://localhost:11434"),

		ArxivBaseURL:    getEnv("ARXIV_BASE_URL", "https://export.arxiv.org/api/query"),
		ArxivMaxResults: getEnvInt("ARXIV_MAX_RESULTS", 5),

		PineconeHost:   getEnv("PINECONE_HOST", ""),
		PineconeAPIKey: getEnv("PINECONE_API_KEY", ""),

		ChunkSize:       getEnvInt("CHUNK_SIZE", 350),
		ChunkOverlap:    getEnvInt("CHUNK_OVERLAP", 80),
		MinChunkChars:   getEnvInt("MIN_CHUNK_CHARS", 50),
		VectorDim:       getEnvInt("VECTOR_DIM", 384),
		UpsertBatchSize: getEnvInt("UPSERT_BATCH_SIZE", 100),
		MetadataTextMax: getEnvInt("METADATA_TEXT_MAX", 900),
		QueryTopK:       getEnvInt("QUERY_TOP_K", 5),
		PDFFetchTimeout: getEnvDuration("PDF_FETCH_TIMEOUT", 30*time.Second),

		SessionBackend: getEnv("SESSION_BACKEND", "memory"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
		SweepInterval:  getEnvDuration("SESSION_SWEEP_INTERVAL", 15*time.Minute),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// Validate required fields
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	if cfg.PineconeAPIKey == "" {
		return nil, fmt.Errorf("PINECONE_API_KEY is required - set it in .env file")
	}

	if cfg.PineconeHost == "" {
		return nil, fmt.Errorf("PINECONE_HOST is required - set it in .env file")
	}

	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}

	if cfg.SessionBackend != "memory" && cfg.SessionBackend != "redis" {
		return nil, fmt.Errorf("unknown SESSION_BACKEND: %s", cfg.SessionBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
