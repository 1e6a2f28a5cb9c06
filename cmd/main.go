package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	rediscache "github.com/davidbz/ember/internal/cache/redis"
	"github.com/davidbz/ember/internal/config"
	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/httpserver"
	"github.com/davidbz/ember/internal/httpserver/middleware"
	"github.com/davidbz/ember/internal/observability"
	"github.com/davidbz/ember/internal/provider/anthropic"
)

const (
	smokeTestPrompt = "Hello! Please respond with 'OK' if you're working."
	previewLength   = 100
)

func main() {
	serve := flag.Bool("serve", false, "start the stats HTTP server after the smoke test")
	flag.Parse()

	container := buildContainer()

	err := container.Invoke(func(
		cfg *config.Config,
		logger *zap.Logger,
		sender *anthropic.Sender,
		stats *domain.UsageStats,
		server *httpserver.Server,
	) {
		if cfg.Anthropic.APIKey == "" {
			logger.Error("ANTHROPIC_API_KEY environment variable not set")
			logger.Info("please set your API key: export ANTHROPIC_API_KEY='your-key-here'")
			os.Exit(1)
		}

		if smokeErr := runSmokeTest(sender, stats); smokeErr != nil {
			fmt.Printf("error: %v\n", smokeErr)
			os.Exit(1)
		}

		if *serve {
			if serveErr := server.Start(); serveErr != nil {
				log.Fatalf("Stats server failed to start: %v", serveErr)
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// runSmokeTest issues one real call and prints the performance summary.
func runSmokeTest(sender *anthropic.Sender, stats *domain.UsageStats) error {
	fmt.Println("ember - ready")
	fmt.Println("testing connection to the messages API...")

	ctx := observability.WithRequestID(context.Background(), observability.GenerateRequestID())

	resp, err := sender.Send(ctx, smokeTestPrompt, nil)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Println("connection successful")
	fmt.Printf("response: %s\n", preview(resp.Text()))

	summary, err := json.MarshalIndent(stats.Summarize(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	fmt.Printf("\nperformance stats:\n%s\n", summary)

	return nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
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
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Usage tracking
	if err := container.Provide(domain.NewUsageStats); err != nil {
		log.Fatalf("Failed to provide usage stats: %v", err)
	}

	// Response cache (optional; disabled without a Redis address)
	if err := container.Provide(func(cfg *config.RedisConfig) domain.ResponseCache {
		if cfg.Addr == "" {
			return nil
		}
		return rediscache.NewResponseCache(redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}))
	}); err != nil {
		log.Fatalf("Failed to provide response cache: %v", err)
	}

	// Messages-API client and sender
	if err := container.Provide(func(cfg *anthropic.Config) *anthropic.Client {
		return anthropic.NewClient(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide API client: %v", err)
	}
	if err := container.Provide(func(
		cfg *anthropic.Config,
		client *anthropic.Client,
		stats *domain.UsageStats,
		cache domain.ResponseCache,
		redisCfg *config.RedisConfig,
	) *anthropic.Sender {
		ttl := time.Duration(redisCfg.CacheTTL) * time.Second
		return anthropic.NewSender(*cfg, client, stats, cache, ttl)
	}); err != nil {
		log.Fatalf("Failed to provide sender: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(func(cfg *config.CORSConfig) middleware.Middleware {
		return middleware.BuildMiddlewareChain(cfg)
	}); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(httpserver.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(httpserver.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
