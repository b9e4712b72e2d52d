package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type validator interface {
	validate() error
}

// roundTrip sends payload to ep exactly once and decodes the reply into out.
func (c *Client) roundTrip(ctx context.Context, ep Endpoint, model string, payload, out any) error {
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "openai."+ep.String(), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("openai.endpoint", ep.String()),
		attribute.String("request_id", requestID),
	)
	if model != "" {
		span.SetAttributes(attribute.String("model", model))
	}

	log := c.logger.WithFields(logrus.Fields{
		"endpoint":   ep.String(),
		"request_id": requestID,
	})

	err := c.exchange(ctx, ep, payload, out, span, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.WithError(err).Warn("openai request failed")
	}
	return err
}

func (c *Client) exchange(ctx context.Context, ep Endpoint, payload, out any, span trace.Span, log *logrus.Entry) error {
	route := ep.Route()

	body, err := json.Marshal(payload)
	if err != nil {
		return &Error{Kind: ErrEncoding, Endpoint: ep, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, route.URL(c.baseURL), bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: ErrTransport, Endpoint: ep, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: ErrTransport, Endpoint: ep, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: ErrTransport, Endpoint: ep, StatusCode: resp.StatusCode, Err: err}
	}

	log.WithFields(logrus.Fields{
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
		"bytes":      len(data),
	}).Debug("openai response received")

	if len(bytes.TrimSpace(data)) == 0 {
		return &Error{Kind: ErrEmptyResponse, Endpoint: ep, StatusCode: resp.StatusCode}
	}

	if err := decode(data, out); err != nil {
		return &Error{
			Kind:       ErrDecoding,
			Endpoint:   ep,
			StatusCode: resp.StatusCode,
			Body:       data,
			API:        parseAPIError(data),
			Err:        err,
		}
	}
	return nil
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}
	if v, ok := out.(validator); ok {
		return v.validate()
	}
	return nil
}
