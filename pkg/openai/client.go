// Package openai is a client for the OpenAI completion, edit, chat, image and
// embedding endpoints. Each call is one HTTP request and one JSON response;
// nothing is retried, cached or streamed.
//
// Every operation comes in two forms. SendX runs the call on its own goroutine
// and hands the outcome to a callback exactly once. X blocks until that
// callback fires and returns the same response and error.
package openai

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vnmchuo/openai-go/pkg/openai"

// Client holds the bearer token and transport shared by every call. It keeps no
// per-call state and is safe for concurrent use.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
	tracer     trace.Tracer
}

type ClientOption func(*Client)

// WithBaseURL points the client at another host, such as a proxy or a test server.
// Endpoint paths are appended unchanged.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient replaces http.DefaultClient. The library sets no timeout of its
// own; configure one here if needed.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l *logrus.Entry) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithTracer(t trace.Tracer) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New returns a client that authenticates with token. An empty token sends no
// Authorization header.
func New(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:      token,
		httpClient: http.DefaultClient,
		logger:     logrus.NewEntry(logrus.StandardLogger()).WithField("component", "openai"),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendCompletion completes prompt. The default model is GPT3Davinci.
func (c *Client) SendCompletion(ctx context.Context, prompt string, handler Handler[CompletionResponse], opts ...Option) {
	o := newCallOptions(GPT3Davinci, opts)
	send(c, ctx, Completions, o.model.ModelName(), newCompletionRequest(prompt, o), handler)
}

func (c *Client) Completion(ctx context.Context, prompt string, opts ...Option) (*CompletionResponse, error) {
	return await(func(h Handler[CompletionResponse]) {
		c.SendCompletion(ctx, prompt, h, opts...)
	})
}

// SendEdit rewrites input following instruction, e.g. "Fix the spelling mistakes".
// The default model is EditDavinci.
func (c *Client) SendEdit(ctx context.Context, instruction, input string, handler Handler[CompletionResponse], opts ...Option) {
	o := newCallOptions(EditDavinci, opts)
	send(c, ctx, Edits, o.model.ModelName(), newEditRequest(instruction, input, o), handler)
}

func (c *Client) Edit(ctx context.Context, instruction, input string, opts ...Option) (*CompletionResponse, error) {
	return await(func(h Handler[CompletionResponse]) {
		c.SendEdit(ctx, instruction, input, h, opts...)
	})
}

// SendChat asks for the next message in a conversation. The default model is ChatGPT35Turbo.
func (c *Client) SendChat(ctx context.Context, messages []ChatMessage, handler Handler[ChatResponse], opts ...Option) {
	o := newCallOptions(ChatGPT35Turbo, opts)
	send(c, ctx, ChatCompletions, o.model.ModelName(), newChatRequest(messages, o), handler)
}

func (c *Client) Chat(ctx context.Context, messages []ChatMessage, opts ...Option) (*ChatResponse, error) {
	return await(func(h Handler[ChatResponse]) {
		c.SendChat(ctx, messages, h, opts...)
	})
}

// SendImage generates images from prompt. Only WithN, WithUser, WithImageSize and
// WithImageFormat apply; the endpoint takes no model.
func (c *Client) SendImage(ctx context.Context, prompt string, handler Handler[ImageResponse], opts ...Option) {
	o := newCallOptions(nil, opts)
	send(c, ctx, ImageGenerations, "", newImageRequest(prompt, o), handler)
}

func (c *Client) Image(ctx context.Context, prompt string, opts ...Option) (*ImageResponse, error) {
	return await(func(h Handler[ImageResponse]) {
		c.SendImage(ctx, prompt, h, opts...)
	})
}

// SendEmbedding embeds each input string. The default model is EmbeddingAda002.
func (c *Client) SendEmbedding(ctx context.Context, input []string, handler Handler[EmbeddingResponse], opts ...Option) {
	o := newCallOptions(EmbeddingAda002, opts)
	send(c, ctx, Embeddings, o.model.ModelName(), newEmbeddingRequest(input, o), handler)
}

func (c *Client) Embedding(ctx context.Context, input []string, opts ...Option) (*EmbeddingResponse, error) {
	return await(func(h Handler[EmbeddingResponse]) {
		c.SendEmbedding(ctx, input, h, opts...)
	})
}
