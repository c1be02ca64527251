package bootstrap

import (
	"context"
	"log"
	"math/rand"
	"time"

	"course-advisor-be/internal/config"
	"course-advisor-be/internal/controller"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/repository/implementation"
	"course-advisor-be/internal/repository/memory"
	"course-advisor-be/internal/repository/unitofwork"
	"course-advisor-be/internal/service"
	"course-advisor-be/pkg/audit"
	"course-advisor-be/pkg/embedding"
	"course-advisor-be/pkg/llm/factory"
	"course-advisor-be/pkg/llm/ollama"
	"course-advisor-be/pkg/rag/response"
	"course-advisor-be/pkg/rag/retrieve"
	"course-advisor-be/pkg/rag/route"
	"course-advisor-be/pkg/usage"

	pktNats "course-advisor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	IngestService service.IIngestService

	// Exposed for seeding and ingest triggering from cmd tools
	PublisherService service.IPublisherService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, "")
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Primary answering model. Missing configuration is surfaced per request
	// by the router, not at startup, so an advisor without a key still boots.
	primaryProvider, err := factory.NewLLMProvider(
		"gemini",
		cfg.Ai.GeminiModel,
		"",
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize primary LLM Provider: %v", err)
	}
	fallbackProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	log.Printf("[INFO] Using LLM Providers: gemini (%s) with ollama fallback (%s)", cfg.Ai.GeminiModel, cfg.Ai.OllamaModel)

	// In-Memory Conversation Storage
	historyRepo := memory.NewHistoryRepository(cfg.Routing.MaxHistoryTurns)
	retrievalCache := memory.NewRetrievalCache(cfg.Retrieval.CacheTTL)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. Advisor Pipeline
	auditLogger := logger.NewIsolatedLogger("logs/audit.log")
	auditSink := audit.NewSink(uowFactory, natsPub, auditLogger)
	usageTracker := usage.NewTracker(rdb, cfg.Routing.DailyUsageLimit, sysLogger)

	// FAQ before Course: block order in the assembled context is fixed.
	searchers := []retrieve.Searcher{
		retrieve.NewFaqSearcher(implementation.NewFaqRepository(db)),
		retrieve.NewCourseSearcher(implementation.NewCourseRepository(db)),
	}
	retriever := retrieve.NewRetriever(searchers, retrievalCache, sysLogger, retrieve.Config{
		MaxContextChars:          cfg.Retrieval.MaxContextChars,
		PrimaryHitsPerCollection: cfg.Retrieval.PrimaryHitsPerCollection,
		FallbackTriggerThreshold: cfg.Retrieval.FallbackTriggerThreshold,
	}).WithSemantic(retrieve.NewEmbeddingSearcher(embeddingProvider, implementation.NewChunkEmbeddingRepository(db)))
	router := route.NewRouter(primaryProvider, fallbackProvider, auditSink, sysLogger, route.Config{
		PrimaryTimeout:  cfg.Routing.PrimaryTimeout,
		FallbackEnabled: cfg.Routing.FallbackEnabled,
	})
	normalizer := response.NewNormalizer(
		response.DefaultConfig(cfg.Retrieval.StrongMatchThreshold),
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopic, pubSub)
	ingestService := service.NewIngestService(
		pubSub,
		cfg.Ai.EmbedTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
	)
	advisorService := service.NewAdvisorService(
		retriever,
		router,
		normalizer,
		historyRepo,
		usageTracker,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		ChatController: controller.NewChatController(advisorService),

		IngestService:    ingestService,
		PublisherService: publisherService,
	}
}
