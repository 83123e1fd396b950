package main

import (
	"context"
	"errors"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	rediscache "github.com/vidbrief/vidbrief/internal/cache/redis"
	"github.com/vidbrief/vidbrief/internal/config"
	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/http"
	"github.com/vidbrief/vidbrief/internal/http/middleware"
	"github.com/vidbrief/vidbrief/internal/keypool"
	"github.com/vidbrief/vidbrief/internal/observability"
	"github.com/vidbrief/vidbrief/internal/prompt"
	"github.com/vidbrief/vidbrief/internal/provider/echo"
	"github.com/vidbrief/vidbrief/internal/provider/gemini"
	"github.com/vidbrief/vidbrief/internal/provider/openai"
	"github.com/vidbrief/vidbrief/internal/provider/registry"
	"github.com/vidbrief/vidbrief/internal/youtube"
)

// ErrProviderNotConfigured indicates that a provider is not configured and should be skipped.
var ErrProviderNotConfigured = errors.New("provider not configured")

func main() {
	if _, err := observability.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(func() domain.EventPublisher {
		return observability.NewEventBus()
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Credential pool
	if err := container.Provide(func(keys *config.KeysConfig) domain.CredentialPool {
		configured := keys.Pool()
		if len(configured) == 0 {
			observability.FromContext(context.Background()).Warn(
				"no Google API keys configured, summarization will fail until keys are added")
		}
		return keypool.New(configured)
	}); err != nil {
		log.Fatalf("Failed to provide credential pool: %v", err)
	}

	// Model factory registry
	if err := container.Provide(func() domain.ModelRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Gemini provider (primary)
	if err := container.Provide(func(
		cfg *gemini.Config,
		completion *config.CompletionConfig,
		pool domain.CredentialPool,
	) *gemini.Factory {
		return gemini.NewFactory(*cfg, completion.Model, pool)
	}); err != nil {
		log.Fatalf("Failed to provide Gemini provider: %v", err)
	}

	// OpenAI provider (optional)
	if err := container.Provide(func(
		cfg *openai.Config,
		completion *config.CompletionConfig,
		pool domain.CredentialPool,
	) (*openai.Factory, error) {
		if cfg.APIKey == "" {
			return nil, ErrProviderNotConfigured
		}
		return openai.NewFactory(*cfg, completion.Model, pool), nil
	}); err != nil {
		log.Fatalf("Failed to provide OpenAI provider: %v", err)
	}

	// Echo provider (offline development, COMPLETION_MODEL=echo)
	if err := container.Provide(echo.NewFactory); err != nil {
		log.Fatalf("Failed to provide echo provider: %v", err)
	}

	// Register providers with registry (invoked for side effects). Each
	// provider gets its own Invoke so a missing optional provider cannot
	// skip a required one.
	if err := container.Invoke(func(reg domain.ModelRegistry, factory *gemini.Factory) error {
		return reg.Register(context.Background(), factory)
	}); err != nil {
		log.Fatalf("Failed to register Gemini provider: %v", err)
	}

	if err := container.Invoke(func(reg domain.ModelRegistry, factory *openai.Factory) error {
		return reg.Register(context.Background(), factory)
	}); err != nil {
		// Ignore ErrProviderNotConfigured as it's expected for optional providers
		if !errors.Is(err, ErrProviderNotConfigured) {
			log.Fatalf("Failed to register OpenAI provider: %v", err)
		}
	}

	if err := container.Invoke(func(reg domain.ModelRegistry, factory *echo.Factory) error {
		return reg.Register(context.Background(), factory)
	}); err != nil {
		log.Fatalf("Failed to register echo provider: %v", err)
	}

	// Completion pipeline
	if err := container.Provide(func(
		reg domain.ModelRegistry,
		completion *config.CompletionConfig,
	) (domain.ModelFactory, error) {
		return reg.GetByModel(context.Background(), completion.Model)
	}); err != nil {
		log.Fatalf("Failed to provide model factory: %v", err)
	}

	if err := container.Provide(func(
		factory domain.ModelFactory,
		pool domain.CredentialPool,
		events domain.EventPublisher,
		completion *config.CompletionConfig,
	) *domain.CompletionClient {
		return domain.NewCompletionClient(
			factory,
			pool,
			events,
			completion.MaxRetries,
			time.Duration(completion.BaseDelay)*time.Second,
		)
	}); err != nil {
		log.Fatalf("Failed to provide completion client: %v", err)
	}

	// YouTube clients
	if err := container.Provide(func(cfg *youtube.Config) domain.TranscriptSource {
		return youtube.NewTranscriptClient(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide transcript source: %v", err)
	}
	if err := container.Provide(func(cfg *youtube.Config) domain.VideoCatalog {
		return youtube.NewCatalogClient(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide video catalog: %v", err)
	}

	// Prompt builder
	if err := container.Provide(func() domain.PromptBuilder {
		return prompt.NewBuilder()
	}); err != nil {
		log.Fatalf("Failed to provide prompt builder: %v", err)
	}

	// Details cache (optional, nil disables caching)
	if err := container.Provide(func(cfg *config.RedisConfig) domain.DetailsCache {
		if cfg.Addr == "" {
			return nil
		}
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		return rediscache.NewDetailsCache(client, time.Duration(cfg.CacheTTL)*time.Second)
	}); err != nil {
		log.Fatalf("Failed to provide details cache: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewSummaryService); err != nil {
		log.Fatalf("Failed to provide summary service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
