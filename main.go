package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot"
	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/repo"
	"github.com/JIoffe/LearnAI-Bootcamp/internal/core"
	"github.com/JIoffe/LearnAI-Bootcamp/internal/recognizer"
	"github.com/JIoffe/LearnAI-Bootcamp/internal/search"
	"github.com/JIoffe/LearnAI-Bootcamp/internal/server"
	logx "github.com/JIoffe/LearnAI-Bootcamp/pkg/logger"
	pkgredis "github.com/JIoffe/LearnAI-Bootcamp/pkg/redis"
)

// AppConfig defines all configurable parameters for the bot, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider for the probabilistic intent classifier. Leaving the key
	// empty runs the bot with pattern matching only.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Bot configs
	NLU          model.NLUModelConfig
	Engine       model.EngineConfig
	SearchIndex  model.SearchIndexConfig
	ImageSearch  model.ImageSearchConfig
	Conversation model.ConversationConfig
	Server       server.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise Redis client")
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Str("ttl", cfg.Conversation.TTL).Err(err).Msg("invalid CONVERSATION_TTL")
	}

	var classifier recognizer.Classifier
	if cfg.APIKey != "" {
		gemini, err := recognizer.NewGeminiClassifier(ctx, recognizer.ClassifierConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			NLU:     cfg.NLU,
		})
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to build intent classifier")
		}
		classifier = gemini
	} else {
		logx.Warn().Msg("GEMINI_API_KEY not set; running with pattern matching only")
	}

	engine := bot.NewEngine(
		cfg.Engine,
		repo.NewRedisStateRepository(rdb, ttl),
		recognizer.New(classifier),
		search.NewOrchestrator(
			search.NewIndexClient(cfg.SearchIndex),
			search.NewImageClient(cfg.ImageSearch),
			cfg.Engine.FallbackMaxImages,
		),
	)

	srv := server.New(cfg.Server, engine)

	go func() {
		if err := srv.Listen(); err != nil {
			logx.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")
	if err := srv.Shutdown(); err != nil {
		logx.Error().Err(err).Msg("shutdown failed")
	}
}
