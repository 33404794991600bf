package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsense/internal/config"
	dbPostgres "github.com/kailas-cloud/docsense/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/docsense/internal/db/redis"
	"github.com/kailas-cloud/docsense/internal/domain"
	logpkg "github.com/kailas-cloud/docsense/internal/logger"
	"github.com/kailas-cloud/docsense/internal/metrics"
	"github.com/kailas-cloud/docsense/internal/repository/cache"
	documentrepo "github.com/kailas-cloud/docsense/internal/repository/document"
	"github.com/kailas-cloud/docsense/internal/repository/embcache"
	"github.com/kailas-cloud/docsense/internal/repository/history"
	chiTransport "github.com/kailas-cloud/docsense/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/docsense/internal/transport/openai"
	conversationuc "github.com/kailas-cloud/docsense/internal/usecase/conversation"
	documentuc "github.com/kailas-cloud/docsense/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsense/internal/usecase/health"
	keywordsuc "github.com/kailas-cloud/docsense/internal/usecase/keywords"
	"github.com/kailas-cloud/docsense/internal/usecase/pipeline"
	searchuc "github.com/kailas-cloud/docsense/internal/usecase/search"
	summaryuc "github.com/kailas-cloud/docsense/internal/usecase/summary"
	"github.com/kailas-cloud/docsense/internal/version"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docsense API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
		zap.String("completion_model", cfg.AI.CompletionModel),
		zap.String("embedding_model", cfg.AI.EmbeddingModel),
	)

	metrics.RegisterPipelineMetrics()

	ctx := context.Background()

	// Key-value cache
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Cache.Addrs,
		Username: cfg.Cache.Username,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		// The pipeline treats every cache failure as a miss, so keep going.
		logger.Warn("Cache not ready, continuing without it", zap.Error(err))
	} else {
		logger.Info("Connected to cache")
	}
	gateway := cache.New(store, cfg.Cache.KeyPrefix, metrics.CacheOperationsTotal, logger)

	// Document storage
	pool, err := dbPostgres.NewPool(ctx, dbPostgres.Config{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	docRepo := documentrepo.New(pool)
	if err := docRepo.EnsureSchema(ctx, cfg.AI.Dimensions); err != nil {
		logger.Fatal("Failed to prepare schema", zap.Error(err))
	}
	logger.Info("Connected to database", zap.Int("dimensions", cfg.AI.Dimensions))

	// AI providers
	timeout := time.Duration(cfg.AI.TimeoutSec) * time.Second
	completer := openaiTransport.NewCompleter(&openaiTransport.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.CompletionModel,
		Timeout: timeout,
	}, logger)
	embedder := buildEmbedder(cfg, gateway, logger)

	// Pipeline components
	summarizer := summaryuc.New(completer, gateway, summaryuc.Config{
		ChunkChars:    cfg.Pipeline.ChunkChars,
		MessageTokens: cfg.Pipeline.MessageTokens,
		TTL:           cfg.Pipeline.SummaryTTL(),
		Temperature:   cfg.AI.Temperature,
	}, logger)
	extractor := keywordsuc.New(completer, gateway, keywordsuc.Config{
		MessageTokens: cfg.Pipeline.MessageTokens,
		TTL:           cfg.Pipeline.SummaryTTL(),
		Temperature:   cfg.AI.Temperature,
	}, logger)
	engine := conversationuc.New(
		completer,
		history.New(gateway, cfg.Conversation.HistoryTTL(), logger),
		conversationuc.NewSessionStore(cfg.Conversation.SessionCapacity, cfg.Conversation.SessionTTL()),
		conversationuc.Config{
			ExcerptTokens: cfg.Pipeline.ExcerptTokens,
			MaxTurns:      cfg.Conversation.HistoryTurns,
			Temperature:   cfg.AI.Temperature,
		},
		logger,
	)
	pipe := pipeline.New(summarizer, extractor, embedder, engine)

	// Use cases
	docSvc := documentuc.New(docRepo, pipe, logger).
		WithIngestTimeout(cfg.Pipeline.IngestTimeout())
	searchSvc := searchuc.New(docRepo, embedder)
	healthSvc := healthuc.New(pool, store, completer)

	server := chiTransport.NewServer(docSvc, searchSvc, healthSvc).
		WithMaxBodyBytes(int64(cfg.HTTP.MaxBodyBytes))
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{APIKeys: cfg.Auth.APIKeys}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	if err := docSvc.Wait(shutdownCtx); err != nil {
		logger.Warn("Abandoning in-flight ingestions", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Truncating.
// Truncation is outermost so the cache key is computed over the text actually embedded.
func buildEmbedder(cfg config.Config, gateway *cache.Gateway, logger *zap.Logger) domain.Embedder {
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.AI.APIKey,
		BaseURL:    cfg.AI.BaseURL,
		Model:      cfg.AI.EmbeddingModel,
		Dimensions: cfg.AI.Dimensions,
		Timeout:    time.Duration(cfg.AI.TimeoutSec) * time.Second,
	}, logger)

	cached := embcache.New(base, gateway, cfg.Pipeline.EmbeddingTTL())
	return domain.NewTruncatingEmbedder(cached, cfg.Pipeline.EmbeddingTokens)
}
