package main

// @title           DocQuery Core API
// @version         1.0
// @description     Conversational document Q&A API. Upload a document, then ask questions answered from retrieved passages of that document.

// @contact.name   DocQuery OSS
// @contact.url    https://github.com/docquery-labs/docquery-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/docquery-labs/docquery-core/docs"
	"github.com/docquery-labs/docquery-core/internal/adapters/driven/ai"
	authadapter "github.com/docquery-labs/docquery-core/internal/adapters/driven/auth"
	redisadapter "github.com/docquery-labs/docquery-core/internal/adapters/driven/redis"
	httpserver "github.com/docquery-labs/docquery-core/internal/adapters/driving/http"
	"github.com/docquery-labs/docquery-core/internal/chunking"
	"github.com/docquery-labs/docquery-core/internal/config"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driving"
	"github.com/docquery-labs/docquery-core/internal/core/services"
	"github.com/docquery-labs/docquery-core/internal/extract"
	"github.com/docquery-labs/docquery-core/internal/runtime"
)

var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("docquery-core starting", zap.String("version", version))

	ctx := context.Background()

	// ===== Embedding cache (optional) =====
	var embeddingCache driven.EmbeddingCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		cache := redisadapter.NewEmbeddingCache(client, cfg.EmbeddingCacheTTL)
		defer cache.Close()
		embeddingCache = cache
		logger.Info("embedding cache enabled", zap.Duration("ttl", cfg.EmbeddingCacheTTL))
	} else {
		logger.Info("embedding cache disabled (REDIS_URL not set)")
	}

	// ===== Driven adapters =====
	aiFactory := ai.NewFactory(ai.ProviderDefaults{
		OpenAIAPIKey:  cfg.EmbeddingCfg.APIKey,
		OpenAIBaseURL: cfg.EmbeddingCfg.BaseURL,
		OllamaBaseURL: cfg.GenerationCfg.BaseURL,
	}, embeddingCache)
	extractorRegistry := extract.DefaultRegistry()

	// ===== Authentication (optional) =====
	var authService driving.AuthService
	if cfg.AuthPassword != "" {
		adapter := authadapter.NewAdapter(cfg.JWTSecret)
		authService, err = services.NewAuthService(adapter, cfg.AuthPassword, cfg.TokenTTL)
		if err != nil {
			logger.Fatal("failed to initialize auth service", zap.Error(err))
		}
		logger.Info("authentication enabled", zap.Duration("token_ttl", cfg.TokenTTL))
	} else {
		logger.Info("authentication disabled (AUTH_PASSWORD not set)")
	}

	// ===== Engine configuration =====
	engineCfg := services.EngineConfig{
		Retriever: services.RetrieverConfig{
			Chunking: chunking.Config{
				ChunkSize:         cfg.ChunkSize,
				Overlap:           cfg.ChunkOverlap,
				PreserveSentences: cfg.PreserveSentences,
			},
			MaxChunks: cfg.MaxChunks,
			TopK:      cfg.TopK,
		},
		MaxPromptChars:  cfg.MaxPromptChars,
		MaxHistoryTurns: cfg.MaxHistoryTurns,
	}
	models := cfg.ModelOptions()

	logger.Info("engine configured",
		zap.Int("chunk_size", cfg.ChunkSize),
		zap.Int("chunk_overlap", cfg.ChunkOverlap),
		zap.Int("top_k", cfg.TopK),
		zap.String("embedding_provider", cfg.EmbeddingCfg.Provider),
		zap.String("generation_provider", cfg.GenerationCfg.Provider),
		zap.Int("selectable_models", len(models)),
	)

	// Each authenticated subject owns an isolated engine with its own AI
	// service handles, so model switches never leak across users.
	newEngine := func() (driving.EngineService, error) {
		runtimeServices := runtime.NewServices()

		embedder, err := aiFactory.CreateEmbeddingService(cfg.EmbeddingCfg.EmbeddingSettings())
		if err != nil {
			return nil, err
		}
		runtimeServices.SetEmbeddingService(embedder)

		generator, err := aiFactory.CreateGenerationService(cfg.GenerationCfg.GenerationSettings())
		if err != nil {
			return nil, err
		}
		runtimeServices.SetGenerationService(generator)

		return services.NewEngineService(engineCfg, runtimeServices, aiFactory, extractorRegistry, models)
	}

	// ===== HTTP server =====
	server := httpserver.NewServer(httpserver.Config{
		Host:           cfg.ServerHost,
		Port:           cfg.ServerPort,
		Version:        version,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
	}, authService, newEngine, logger)

	logger.Info("API server starting", zap.String("addr", cfg.ServerAddr()))
	if err := server.Start(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newLogger builds a production zap logger at the configured level
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
