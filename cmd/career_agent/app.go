package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/config"
	"github.com/jonathan/career-advisor/internal/db"
	"github.com/jonathan/career-advisor/internal/llm"
	"github.com/jonathan/career-advisor/internal/observability"
	"github.com/jonathan/career-advisor/internal/recommend"
	"github.com/jonathan/career-advisor/internal/session"
	"go.uber.org/zap"
)

// loadConfig reads the --config file (if any) and the environment
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// loadCatalog returns the embedded catalog, or one overridden from dir
func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		return catalog.Default()
	}
	c, err := catalog.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", dir, err)
	}
	return c, nil
}

// newOfflineEngine builds an Engine without conversation support for the
// one-shot commands
func newOfflineEngine(cfg *config.Config) (*recommend.Engine, error) {
	c, err := loadCatalog(cfg.CatalogDir)
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(c, recommend.NewComposer(c), nil), nil
}

// replyConfig converts the service settings into the generator config
func replyConfig(c config.LLMConfig) *llm.Config {
	rc := llm.DefaultGeminiConfig()
	rc.Model = c.Model
	rc.Temperature = float32(c.Temperature)
	rc.MaxOutputTokens = int32(c.MaxOutputTokens)
	rc.Timeout = c.Timeout
	rc.Retry.MaxRetries = c.MaxRetries
	return rc
}

// newReplyGenerator builds the configured generator. The returned close func
// is never nil.
func newReplyGenerator(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) (llm.ReplyGenerator, func(), error) {
	if cfg.ReplyProvider() == config.ProviderFallback {
		logger.Info("using fallback reply generator")
		return llm.FallbackGenerator{}, func() {}, nil
	}

	rc := replyConfig(cfg.LLM)
	gemini, err := llm.NewGeminiGenerator(ctx, rc, cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, err
	}

	resilient := llm.NewResilientGenerator(gemini, llm.FallbackGenerator{}, rc, logger)
	resilient.OnOutcome = metrics.ObserveReply
	logger.Info("using gemini reply generator", zap.String("model", rc.Model))

	return resilient, func() {
		if err := gemini.Close(); err != nil {
			logger.Warn("failed to close gemini client", zap.Error(err))
		}
	}, nil
}

// newSessionStore opens the configured session backend. The returned close
// func is never nil.
func newSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, func(), error) {
	ttl := cfg.Session.TTL

	switch cfg.Session.Store {
	case config.StoreRedis:
		store, err := session.NewRedisStoreFromURL(ctx, cfg.RedisURL, ttl)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis session store")
		return store, func() { _ = store.Close() }, nil

	case config.StorePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info("using postgres session store")
		return session.NewPostgresStore(database, ttl), database.Close, nil

	default:
		logger.Info("using in-memory session store")
		return session.NewMemoryStore(ttl), func() {}, nil
	}
}
