package openai

import (
	"net/http"
	"strings"
)

// DefaultBaseURL is the API host every endpoint is served from.
const DefaultBaseURL = "https://api.openai.com"

type Endpoint int

const (
	Completions Endpoint = iota
	Edits
	ChatCompletions
	ImageGenerations
	Embeddings
)

// Route is where an endpoint lives.
type Route struct {
	BaseURL string
	Path    string
	Method  string
}

var routes = map[Endpoint]Route{
	Completions:      {BaseURL: DefaultBaseURL, Path: "/v1/completions", Method: http.MethodPost},
	Edits:            {BaseURL: DefaultBaseURL, Path: "/v1/edits", Method: http.MethodPost},
	ChatCompletions:  {BaseURL: DefaultBaseURL, Path: "/v1/chat/completions", Method: http.MethodPost},
	ImageGenerations: {BaseURL: DefaultBaseURL, Path: "/v1/images/generations", Method: http.MethodPost},
	Embeddings:       {BaseURL: DefaultBaseURL, Path: "/v1/embeddings", Method: http.MethodPost},
}

var endpointNames = map[Endpoint]string{
	Completions:      "completions",
	Edits:            "edits",
	ChatCompletions:  "chat.completions",
	ImageGenerations: "images.generations",
	Embeddings:       "embeddings",
}

// Route returns the endpoint's fixed route. Unknown endpoints return the zero Route.
func (e Endpoint) Route() Route {
	return routes[e]
}

func (e Endpoint) String() string {
	if name, ok := endpointNames[e]; ok {
		return name
	}
	return "unknown"
}

// URL joins the route path onto baseURL, or onto the route's own host when baseURL is empty.
func (r Route) URL(baseURL string) string {
	if baseURL == "" {
		baseURL = r.BaseURL
	}
	return strings.TrimRight(baseURL, "/") + r.Path
}
