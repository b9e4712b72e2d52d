package openai

// Tunables are the optional generation controls shared by the text endpoints.
// A nil field is left out of the request so the API applies its own default.
// Values are forwarded as given; the API is the only judge of their range.
type Tunables struct {
	MaxTokens        *int            `json:"max_tokens,omitempty"`
	Temperature      *float64        `json:"temperature,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	N                *int            `json:"n,omitempty"`
	Stop             []string        `json:"stop,omitempty"`
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	LogitBias        map[int]float64 `json:"logit_bias,omitempty"`
	User             *string         `json:"user,omitempty"`
}

type callOptions struct {
	model       Model
	tunables    Tunables
	imageSize   ImageSize
	imageFormat ImageFormat
}

// Option configures a single call.
type Option func(*callOptions)

func newCallOptions(defaultModel Model, opts []Option) callOptions {
	o := callOptions{model: defaultModel}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithModel overrides the operation's default model.
func WithModel(m Model) Option {
	return func(o *callOptions) {
		if m != nil {
			o.model = m
		}
	}
}

// WithTunables replaces every tunable at once.
func WithTunables(t Tunables) Option {
	return func(o *callOptions) { o.tunables = t }
}

func WithMaxTokens(n int) Option {
	return func(o *callOptions) { o.tunables.MaxTokens = &n }
}

func WithTemperature(v float64) Option {
	return func(o *callOptions) { o.tunables.Temperature = &v }
}

// WithTopP sets nucleus sampling: only tokens in the top p probability mass are considered.
func WithTopP(v float64) Option {
	return func(o *callOptions) { o.tunables.TopP = &v }
}

// WithN sets how many choices to generate.
func WithN(n int) Option {
	return func(o *callOptions) { o.tunables.N = &n }
}

func WithStop(seq ...string) Option {
	return func(o *callOptions) { o.tunables.Stop = append([]string(nil), seq...) }
}

func WithPresencePenalty(v float64) Option {
	return func(o *callOptions) { o.tunables.PresencePenalty = &v }
}

func WithFrequencyPenalty(v float64) Option {
	return func(o *callOptions) { o.tunables.FrequencyPenalty = &v }
}

// WithLogitBias maps tokenizer token ids to a bias in [-100, 100].
func WithLogitBias(bias map[int]float64) Option {
	return func(o *callOptions) {
		cp := make(map[int]float64, len(bias))
		for k, v := range bias {
			cp[k] = v
		}
		o.tunables.LogitBias = cp
	}
}

// WithUser tags the request with an end-user identifier.
func WithUser(user string) Option {
	return func(o *callOptions) { o.tunables.User = &user }
}

func WithImageSize(size ImageSize) Option {
	return func(o *callOptions) { o.imageSize = size }
}

func WithImageFormat(format ImageFormat) Option {
	return func(o *callOptions) { o.imageFormat = format }
}
