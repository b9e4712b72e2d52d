package openai

// Family groups models that share an API surface.
type Family string

const (
	FamilyGPT3      Family = "gpt3"
	FamilyCodex     Family = "codex"
	FamilyEdit      Family = "edit"
	FamilyChat      Family = "chat"
	FamilyEmbedding Family = "embedding"
	FamilyCustom    Family = "custom"
)

// Model selects the model a request runs against. The set of families is closed;
// use Custom for identifiers the catalog does not enumerate yet.
type Model interface {
	ModelName() string
	Family() Family
	isModel()
}

// GPT3 models understand and generate natural language.
type GPT3 string

const (
	GPT3Davinci GPT3 = "text-davinci-003"
	GPT3Curie   GPT3 = "text-curie-001"
	GPT3Babbage GPT3 = "text-babbage-001"
	GPT3Ada     GPT3 = "text-ada-001"
)

// Codex models understand and generate code.
type Codex string

const (
	CodexDavinci Codex = "code-davinci-002"
	CodexCushman Codex = "code-cushman-001"
)

// Edit models rewrite an input according to an instruction.
type Edit string

const (
	EditDavinci     Edit = "text-davinci-edit-001"
	EditCodeDavinci Edit = "code-davinci-edit-001"
)

// Chat models take a conversation and produce the next assistant message.
type Chat string

const (
	ChatGPT35Turbo     Chat = "gpt-3.5-turbo"
	ChatGPT35Turbo0301 Chat = "gpt-3.5-turbo-0301"
	ChatGPT4           Chat = "gpt-4"
	ChatGPT4_32K       Chat = "gpt-4-32k"
)

// Embedding models turn text into vectors.
type Embedding string

const (
	EmbeddingAda002 Embedding = "text-embedding-ada-002"
)

// Custom is passed to the API verbatim.
type Custom string

func (m GPT3) ModelName() string      { return string(m) }
func (m Codex) ModelName() string     { return string(m) }
func (m Edit) ModelName() string      { return string(m) }
func (m Chat) ModelName() string      { return string(m) }
func (m Embedding) ModelName() string { return string(m) }
func (m Custom) ModelName() string    { return string(m) }

func (GPT3) Family() Family      { return FamilyGPT3 }
func (Codex) Family() Family     { return FamilyCodex }
func (Edit) Family() Family      { return FamilyEdit }
func (Chat) Family() Family      { return FamilyChat }
func (Embedding) Family() Family { return FamilyEmbedding }
func (Custom) Family() Family    { return FamilyCustom }

func (GPT3) isModel()      {}
func (Codex) isModel()     {}
func (Edit) isModel()      {}
func (Chat) isModel()      {}
func (Embedding) isModel() {}
func (Custom) isModel()    {}

var known = []Model{
	GPT3Davinci, GPT3Curie, GPT3Babbage, GPT3Ada,
	CodexDavinci, CodexCushman,
	EditDavinci, EditCodeDavinci,
	ChatGPT35Turbo, ChatGPT35Turbo0301, ChatGPT4, ChatGPT4_32K,
	EmbeddingAda002,
}

var catalog = func() map[string]Model {
	m := make(map[string]Model, len(known))
	for _, k := range known {
		m[k.ModelName()] = k
	}
	return m
}()

// ParseModel returns the catalogued model with the given wire name, or Custom(name)
// when the catalog does not know it.
func ParseModel(name string) Model {
	if m, ok := catalog[name]; ok {
		return m
	}
	return Custom(name)
}

// Models lists every catalogued model in catalog order.
func Models() []Model {
	out := make([]Model, len(known))
	copy(out, known)
	return out
}
