package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/vnmchuo/openai-go/config"
	"github.com/vnmchuo/openai-go/internal/logging"
	"github.com/vnmchuo/openai-go/internal/proxy"
	"github.com/vnmchuo/openai-go/internal/telemetry"
	"github.com/vnmchuo/openai-go/internal/usage"
	"github.com/vnmchuo/openai-go/pkg/openai"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log, err := logging.New("gateway", cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("failed to init logger: %v", err)
	}

	// 2. Init telemetry
	shutdownTracer, err := telemetry.InitTracer("openai-gateway", cfg)
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}
	defer shutdownTracer()

	// 3. Usage store (PostgreSQL when configured)
	ctx := context.Background()
	var store usage.Store = usage.Discard{}
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("failed to connect postgres: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("failed to ping postgres: %v", err)
		}

		pg := usage.NewPostgresStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("%v", err)
		}
		store = pg
		log.Info("PostgreSQL connected, usage logging enabled")
	}

	// 4. Init client
	client := openai.New(cfg.OpenAIAPIKey,
		openai.WithBaseURL(cfg.OpenAIBaseURL),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		openai.WithLogger(log.WithField("component", "openai")),
	)

	// 5. Init handler and router
	tracer := otel.GetTracerProvider().Tracer("openai-gateway")
	handler := proxy.NewHandler(client, store, cfg.Models, tracer, log)
	r := proxy.NewRouter(handler, log)

	// 6. Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("OpenAI gateway starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Info("Server stopped")
}
