package usage

import (
	"context"
	"time"
)

// Log is one upstream call made through the gateway.
type Log struct {
	ID               string
	RequestID        string
	Endpoint         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	StatusCode       int
	ErrorKind        string
	LatencyMs        int64
	CreatedAt        time.Time
}

// Summary aggregates logs over a time window.
type Summary struct {
	Requests    int64
	TotalTokens int64
}

type Store interface {
	LogUsage(ctx context.Context, log *Log) error
	GetUsage(ctx context.Context, from, to time.Time) ([]*Log, error)
	Summarize(ctx context.Context, from, to time.Time) (*Summary, error)
}

// Discard is the Store used when no database is configured.
type Discard struct{}

func (Discard) LogUsage(ctx context.Context, log *Log) error { return nil }

func (Discard) GetUsage(ctx context.Context, from, to time.Time) ([]*Log, error) {
	return nil, nil
}

func (Discard) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	return &Summary{}, nil
}
