package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"research-rag-platform/internal/ai"
	"research-rag-platform/internal/arxiv"
	"research-rag-platform/internal/config"
	"research-rag-platform/internal/logger"
	"research-rag-platform/internal/session"
	"research-rag-platform/internal/telemetry"
	"research-rag-platform/internal/vectorindex"
	"research-rag-platform/middleware"
	"research-rag-platform/routes"
	"research-rag-platform/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Init(cfg.GinMode == "debug")

	// Tracing (optional)
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("research-rag-platform", cfg.OTLPEndpoint)
		if err != nil {
			logger.Warn("failed to initialize tracing", "error", err)
		} else {
			defer shutdown()
		}
	}

	ctx := context.Background()

	// External collaborators
	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("Failed to create Gemini client:", err)
	}
	defer gemini.Close()

	embedder, err := ai.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.GeminiEmbeddingModel, cfg.VectorDim)
	if err != nil {
		log.Fatal("Failed to create Gemini embedder:", err)
	}
	defer embedder.Close()

	ollamaLLM, err := ai.NewOllamaClient(cfg.OllamaModel, cfg.OllamaServerURL)
	if err != nil {
		log.Fatal("Failed to create Ollama client:", err)
	}

	arxivClient := arxiv.NewClient(cfg.ArxivBaseURL, 30*time.Second)
	index := vectorindex.NewPineconeIndex(cfg.PineconeHost, cfg.PineconeAPIKey, 30*time.Second)

	// Session store
	store, rdb := buildSessionStore(cfg)
	defer store.Close()

	sweeper := session.NewSweeper(store, cfg.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	// Pipeline
	builder := services.NewRAGBuilder(embedder, index, services.RAGBuilderConfig{
		ChunkSize:       cfg.ChunkSize,
		ChunkOverlap:    cfg.ChunkOverlap,
		MinChunkChars:   cfg.MinChunkChars,
		UpsertBatchSize: cfg.UpsertBatchSize,
		MetadataTextMax: cfg.MetadataTextMax,
		PDFFetchTimeout: cfg.PDFFetchTimeout,
	})

	workflow, err := services.NewWorkflow(
		services.NewTopicValidator(gemini),
		services.NewPaperFetcher(arxivClient, cfg.ArxivMaxResults),
		services.NewComprehensiveSummarizer(gemini),
		services.NewPaperSummarizer(ollamaLLM),
		builder,
	)
	if err != nil {
		log.Fatal("Failed to build research workflow:", err)
	}

	queryEngine := services.NewRAGQueryEngine(embedder, index, gemini, cfg.QueryTopK)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SessionSweepMiddleware(store))
	if rdb != nil {
		router.Use(middleware.RateLimitMiddleware(rdb, cfg))
	}

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Service info endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "AI Research Assistant API",
			"endpoints": gin.H{
				"process_topic": "POST /api/process-topic",
				"query_rag":     "POST /api/query-rag",
				"health":        "GET /health",
			},
		})
	})

	routes.SetupResearchRoutes(router, workflow, queryEngine, store)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("server exited")
}

// buildSessionStore picks the configured session backend. The returned
// redis client is nil for the in-memory backend, which also disables the
// redis-backed rate limiter.
func buildSessionStore(cfg *config.Config) (session.Store, *redis.Client) {
	if cfg.SessionBackend == "redis" {
		rdb, err := config.NewRedisClient(cfg)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		return session.NewRedisStore(rdb, cfg.SessionTTL), rdb
	}
	return session.NewMemoryStore(cfg.SessionTTL), nil
}
