package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vnmchuo/openai-go/config"
	"github.com/vnmchuo/openai-go/internal/usage"
	"github.com/vnmchuo/openai-go/pkg/openai"
)

type Handler struct {
	client *openai.Client
	usage  usage.Store
	models config.ModelDefaults
	tracer trace.Tracer
	log    *logrus.Entry
}

func NewHandler(client *openai.Client, store usage.Store, models config.ModelDefaults, tracer trace.Tracer, log *logrus.Entry) *Handler {
	return &Handler{
		client: client,
		usage:  store,
		models: models,
		tracer: tracer,
		log:    log,
	}
}

type completionBody struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	openai.Tunables
}

type editBody struct {
	Model       string `json:"model"`
	Input       string `json:"input"`
	Instruction string `json:"instruction"`
	openai.Tunables
}

type chatBody struct {
	Model    string               `json:"model"`
	Messages []openai.ChatMessage `json:"messages"`
	openai.Tunables
}

type imageBody struct {
	Prompt         string             `json:"prompt"`
	N              *int               `json:"n"`
	Size           openai.ImageSize   `json:"size"`
	ResponseFormat openai.ImageFormat `json:"response_format"`
	User           *string            `json:"user"`
}

type embeddingBody struct {
	Model string     `json:"model"`
	Input stringList `json:"input"`
	User  *string    `json:"user"`
}

// stringList accepts a single string or an array of strings.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

func (h *Handler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	var body completionBody
	if !decodeBody(w, r, &body) {
		return
	}
	model := pick(body.Model, h.models.Completion)
	serve(h, w, r, openai.Completions, model, func(ctx context.Context) (*openai.CompletionResponse, error) {
		return h.client.Completion(ctx, body.Prompt, modelOption(model), openai.WithTunables(body.Tunables))
	}, func(resp *openai.CompletionResponse) (string, *openai.Usage) { return resp.Model, resp.Usage })
}

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var body editBody
	if !decodeBody(w, r, &body) {
		return
	}
	model := pick(body.Model, h.models.Edit)
	serve(h, w, r, openai.Edits, model, func(ctx context.Context) (*openai.CompletionResponse, error) {
		return h.client.Edit(ctx, body.Instruction, body.Input, modelOption(model), openai.WithTunables(body.Tunables))
	}, func(resp *openai.CompletionResponse) (string, *openai.Usage) { return resp.Model, resp.Usage })
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if !decodeBody(w, r, &body) {
		return
	}
	model := pick(body.Model, h.models.Chat)
	serve(h, w, r, openai.ChatCompletions, model, func(ctx context.Context) (*openai.ChatResponse, error) {
		return h.client.Chat(ctx, body.Messages, modelOption(model), openai.WithTunables(body.Tunables))
	}, func(resp *openai.ChatResponse) (string, *openai.Usage) { return resp.Model, resp.Usage })
}

func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	var body imageBody
	if !decodeBody(w, r, &body) {
		return
	}
	opts := []openai.Option{
		openai.WithTunables(openai.Tunables{N: body.N, User: body.User}),
		openai.WithImageSize(body.Size),
		openai.WithImageFormat(body.ResponseFormat),
	}
	serve(h, w, r, openai.ImageGenerations, "", func(ctx context.Context) (*openai.ImageResponse, error) {
		return h.client.Image(ctx, body.Prompt, opts...)
	}, func(resp *openai.ImageResponse) (string, *openai.Usage) { return "", nil })
}

func (h *Handler) HandleEmbedding(w http.ResponseWriter, r *http.Request) {
	var body embeddingBody
	if !decodeBody(w, r, &body) {
		return
	}
	model := pick(body.Model, h.models.Embedding)
	serve(h, w, r, openai.Embeddings, model, func(ctx context.Context) (*openai.EmbeddingResponse, error) {
		return h.client.Embedding(ctx, body.Input, modelOption(model), openai.WithTunables(openai.Tunables{User: body.User}))
	}, func(resp *openai.EmbeddingResponse) (string, *openai.Usage) { return resp.Model, resp.Usage })
}

// serve makes one upstream call, logs its usage asynchronously and writes the result.
func serve[T any](
	h *Handler,
	w http.ResponseWriter,
	r *http.Request,
	ep openai.Endpoint,
	model string,
	call func(ctx context.Context) (*T, error),
	describe func(*T) (string, *openai.Usage),
) {
	requestID := chimiddleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx, span := h.tracer.Start(r.Context(), "proxy."+ep.String())
	defer span.End()
	span.SetAttributes(
		attribute.String("request_id", requestID),
		attribute.String("model", model),
	)

	start := time.Now()
	resp, err := call(ctx)
	entry := &usage.Log{
		RequestID: requestID,
		Endpoint:  ep.String(),
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}

	if err != nil {
		entry.ErrorKind = errorKind(err)
		var oerr *openai.Error
		if errors.As(err, &oerr) {
			entry.StatusCode = oerr.StatusCode
		}
		h.logUsage(entry)
		h.log.WithError(err).WithField("request_id", requestID).Warn("upstream call failed")
		writeUpstreamError(w, err)
		return
	}

	entry.StatusCode = http.StatusOK
	echoed, u := describe(resp)
	if echoed != "" {
		entry.Model = echoed
	}
	if u != nil {
		entry.PromptTokens = u.PromptTokens
		entry.CompletionTokens = u.CompletionTokens
		entry.TotalTokens = u.TotalTokens
	}
	h.logUsage(entry)

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) logUsage(entry *usage.Log) {
	go func() {
		if err := h.usage.LogUsage(context.Background(), entry); err != nil {
			h.log.WithError(err).Error("failed to record usage")
		}
	}()
}

func (h *Handler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse query parameters
	now := time.Now()
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	from := now.AddDate(0, 0, -30) // Default: last 30 days
	to := now

	if fromStr != "" {
		var err error
		from, err = time.Parse(time.RFC3339, fromStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid 'from' date format (use RFC3339)"})
			return
		}
	}

	if toStr != "" {
		var err error
		to, err = time.Parse(time.RFC3339, toStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid 'to' date format (use RFC3339)"})
			return
		}
	}

	logs, err := h.usage.GetUsage(ctx, from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	sum, err := h.usage.Summarize(ctx, from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_requests": sum.Requests,
		"total_tokens":   sum.TotalTokens,
		"logs":           logs,
		"from":           from,
		"to":             to,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeUpstreamError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, openai.ErrEncoding) {
		status = http.StatusBadRequest
	}

	body := map[string]interface{}{
		"error": err.Error(),
		"kind":  errorKind(err),
	}
	var oerr *openai.Error
	if errors.As(err, &oerr) && oerr.StatusCode != 0 {
		body["upstream_status"] = oerr.StatusCode
	}
	writeJSON(w, status, body)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, openai.ErrTransport):
		return "transport"
	case errors.Is(err, openai.ErrDecoding):
		return "decoding"
	case errors.Is(err, openai.ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, openai.ErrEncoding):
		return "encoding"
	}
	return "unknown"
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// modelOption returns nil when no model was chosen so the library default applies.
func modelOption(name string) openai.Option {
	if name == "" {
		return nil
	}
	return openai.WithModel(openai.ParseModel(name))
}
