package openai

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the envelope shared by the completion, edit and chat endpoints.
type Response[C any] struct {
	ID      string `json:"id,omitempty"`
	Object  string `json:"object"`
	Created int64  `json:"created,omitempty"`
	Model   string `json:"model,omitempty"`
	Choices []C    `json:"choices"`
	Usage   *Usage `json:"usage,omitempty"`
}

type (
	CompletionResponse = Response[TextChoice]
	ChatResponse       = Response[MessageChoice]
)

func (r *Response[C]) validate() error {
	if r.Object == "" {
		return errors.New("response missing object")
	}
	if r.Choices == nil {
		return errors.New("response missing choices")
	}
	return nil
}

type TextChoice struct {
	Text         string `json:"text"`
	Index        int    `json:"index"`
	FinishReason string `json:"finish_reason,omitempty"`
}

func (c *TextChoice) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text         *string `json:"text"`
		Index        int     `json:"index"`
		FinishReason *string `json:"finish_reason"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Text == nil {
		return errors.New("choice missing text")
	}
	*c = TextChoice{Text: *raw.Text, Index: raw.Index}
	if raw.FinishReason != nil {
		c.FinishReason = *raw.FinishReason
	}
	return nil
}

type MessageChoice struct {
	Message      ChatMessage `json:"message"`
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

func (c *MessageChoice) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message      *ChatMessage `json:"message"`
		Index        int          `json:"index"`
		FinishReason *string      `json:"finish_reason"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Message == nil {
		return errors.New("choice missing message")
	}
	*c = MessageChoice{Message: *raw.Message, Index: raw.Index}
	if raw.FinishReason != nil {
		c.FinishReason = *raw.FinishReason
	}
	return nil
}

type ImageResponse struct {
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}

// ImageData holds either a URL or base64 image, depending on the requested format.
type ImageData struct {
	URL     string `json:"url,omitempty"`
	B64JSON string `json:"b64_json,omitempty"`
}

func (r *ImageResponse) validate() error {
	if r.Data == nil {
		return errors.New("response missing data")
	}
	return nil
}

type EmbeddingResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model,omitempty"`
	Usage  *Usage          `json:"usage,omitempty"`
}

type EmbeddingData struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

func (r *EmbeddingResponse) validate() error {
	if r.Object == "" {
		return errors.New("response missing object")
	}
	if r.Data == nil {
		return errors.New("response missing data")
	}
	return nil
}

// APIError is the error document the API returns alongside non-2xx statuses.
type APIError struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param,omitempty"`
	Code    any     `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

type apiErrorResponse struct {
	Error *APIError `json:"error"`
}

// parseAPIError returns nil unless body is an error document with a message.
func parseAPIError(body []byte) *APIError {
	var resp apiErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error == nil || resp.Error.Message == "" {
		return nil
	}
	return resp.Error
}
