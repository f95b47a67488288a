package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/quartetlab/quartet/infrastructure/cache"
	"github.com/quartetlab/quartet/infrastructure/llm"
	"github.com/quartetlab/quartet/infrastructure/metrics"
	"github.com/quartetlab/quartet/infrastructure/scrub"
	"github.com/quartetlab/quartet/infrastructure/storage"
	"github.com/quartetlab/quartet/internal/application"
	"github.com/quartetlab/quartet/internal/config"
	"github.com/quartetlab/quartet/internal/ports"
	"github.com/quartetlab/quartet/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the study backend HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), currentConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg config.Config) error {
	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	store := storage.NewStore(db)

	var cacheStore ports.CacheStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		cacheStore = cache.NewRedisStore(redis.NewClient(opts), "quartet")
	} else {
		cacheStore = cache.NewMemoryStore()
	}

	collector := metrics.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	provider := cfg.EffectiveProvider()
	if provider != cfg.LLM.Provider {
		log.Printf("no API key configured for provider %q, using mock responses", cfg.LLM.Provider)
	}
	chain := []llm.Middleware{
		llm.TracingMiddleware("quartet"),
		llm.MetricsMiddleware(collector),
	}
	if cfg.LLM.RateLimit > 0 {
		burst := cfg.LLM.RateBurst
		if burst <= 0 {
			burst = 4
		}
		chain = append(chain, llm.RateLimitMiddleware(rate.Limit(cfg.LLM.RateLimit), burst))
	}
	client, err := llm.NewClient(provider, llm.ClientConfig{
		APIKey:     cfg.LLM.APIKey,
		Model:      cfg.LLM.Model,
		BaseURL:    cfg.LLM.BaseURL,
		Timeout:    cfg.LLM.Timeout,
		Middleware: chain,
	})
	if err != nil {
		return err
	}

	prompts, err := application.LoadPromptLibrary(cfg.PromptConfigPath)
	if err != nil {
		return err
	}

	var scrubber ports.Scrubber
	if cfg.StripPII {
		scrubber = scrub.NewRegex()
	}

	engine, err := application.NewEngine(client, cacheStore, scrubber, store, prompts, collector,
		application.EngineConfig{
			CacheTTL: cfg.CacheTTL,
			Options: ports.GenerationOptions{
				Model:       cfg.LLM.Model,
				Temperature: &cfg.LLM.Temperature,
				TopP:        &cfg.LLM.TopP,
				MaxTokens:   cfg.LLM.MaxTokens,
				Seed:        cfg.LLM.Seed,
			},
		})
	if err != nil {
		return err
	}

	study := application.NewStudyService(store, store, store, collector)
	srv := server.New(engine, study, storage.NewExporter(db), server.Config{
		Model:         client.Model(),
		PromptVersion: cfg.PromptVersion,
	})

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (provider=%s)", cfg.ListenAddr, provider)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Print("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
