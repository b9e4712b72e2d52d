package openai

type CompletionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Tunables
}

// EditRequest always carries input, even when empty.
type EditRequest struct {
	Model       string `json:"model"`
	Input       string `json:"input"`
	Instruction string `json:"instruction"`
	Tunables
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Tunables
}

type ImageSize string

const (
	ImageSize1024 ImageSize = "1024x1024"
	ImageSize512  ImageSize = "512x512"
	ImageSize256  ImageSize = "256x256"
)

type ImageFormat string

const (
	ImageFormatURL     ImageFormat = "url"
	ImageFormatB64JSON ImageFormat = "b64_json"
)

type ImageRequest struct {
	Prompt         string      `json:"prompt"`
	N              *int        `json:"n,omitempty"`
	Size           ImageSize   `json:"size,omitempty"`
	ResponseFormat ImageFormat `json:"response_format,omitempty"`
	User           *string     `json:"user,omitempty"`
}

type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
	User  *string  `json:"user,omitempty"`
}

func newCompletionRequest(prompt string, o callOptions) *CompletionRequest {
	return &CompletionRequest{
		Model:    o.model.ModelName(),
		Prompt:   prompt,
		Tunables: o.tunables,
	}
}

func newEditRequest(instruction, input string, o callOptions) *EditRequest {
	return &EditRequest{
		Model:       o.model.ModelName(),
		Input:       input,
		Instruction: instruction,
		Tunables:    o.tunables,
	}
}

func newChatRequest(messages []ChatMessage, o callOptions) *ChatRequest {
	msgs := make([]ChatMessage, len(messages))
	copy(msgs, messages)
	return &ChatRequest{
		Model:    o.model.ModelName(),
		Messages: msgs,
		Tunables: o.tunables,
	}
}

func newImageRequest(prompt string, o callOptions) *ImageRequest {
	return &ImageRequest{
		Prompt:         prompt,
		N:              o.tunables.N,
		Size:           o.imageSize,
		ResponseFormat: o.imageFormat,
		User:           o.tunables.User,
	}
}

func newEmbeddingRequest(input []string, o callOptions) *EmbeddingRequest {
	in := make([]string, len(input))
	copy(in, input)
	return &EmbeddingRequest{
		Model: o.model.ModelName(),
		Input: in,
		User:  o.tunables.User,
	}
}
