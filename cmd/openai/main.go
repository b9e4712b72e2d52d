package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vnmchuo/openai-go/config"
	"github.com/vnmchuo/openai-go/internal/logging"
	"github.com/vnmchuo/openai-go/pkg/openai"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 || commands[args[0]] == nil {
		return execute(ctx, args, os.Stdout, nil)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New("openai-cli", cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	client := openai.New(cfg.OpenAIAPIKey,
		openai.WithBaseURL(cfg.OpenAIBaseURL),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		openai.WithLogger(log),
	)
	return execute(ctx, args, os.Stdout, &cli{client: client, models: cfg.Models})
}
