package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vnmchuo/openai-go/config"
	"github.com/vnmchuo/openai-go/pkg/openai"
)

type captured struct {
	path string
	body map[string]any
}

func setupCLI(t *testing.T, reply string, models config.ModelDefaults) (*cli, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got.body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	client := openai.New("k", openai.WithBaseURL(srv.URL))
	return &cli{client: client, models: models}, got
}

func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"-h"}, {"--help"}} {
		var out bytes.Buffer
		if err := execute(context.Background(), args, &out, nil); err != nil {
			t.Fatalf("execute(%v): %v", args, err)
		}
		if !strings.Contains(out.String(), "Commands:") {
			t.Errorf("execute(%v) printed %q, want usage", args, out.String())
		}
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	err := execute(context.Background(), []string{"moderate"}, io.Discard, nil)
	if err == nil || !strings.Contains(err.Error(), `unknown command "moderate"`) {
		t.Errorf("Expected unknown command error, got %v", err)
	}
}

func TestExecute_Complete(t *testing.T) {
	c, got := setupCLI(t, `{"object":"text_completion","choices":[{"text":" world"}]}`, config.ModelDefaults{})

	var out bytes.Buffer
	args := []string{"complete", "-max-tokens", "16", "-temperature", "0", "-stop", "\n,END", "hello", "there"}
	if err := execute(context.Background(), args, &out, c); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got.path != "/v1/completions" {
		t.Errorf("Expected /v1/completions, got %s", got.path)
	}
	if got.body["prompt"] != "hello there" {
		t.Errorf("Expected prompt 'hello there', got %v", got.body["prompt"])
	}
	if got.body["model"] != "text-davinci-003" {
		t.Errorf("Expected default model, got %v", got.body["model"])
	}
	if got.body["max_tokens"] != float64(16) {
		t.Errorf("Expected max_tokens 16, got %v", got.body["max_tokens"])
	}
	if v, ok := got.body["temperature"]; !ok || v != float64(0) {
		t.Errorf("Expected explicit temperature 0 to be sent, got %v", v)
	}
	if stop, _ := got.body["stop"].([]any); len(stop) != 2 || stop[1] != "END" {
		t.Errorf("Expected two stop sequences, got %v", got.body["stop"])
	}
	for _, key := range []string{"top_p", "n", "user", "logit_bias"} {
		if _, ok := got.body[key]; ok {
			t.Errorf("Expected %s to be omitted", key)
		}
	}
	if !strings.Contains(out.String(), `"text": " world"`) {
		t.Errorf("Expected indented response, got %s", out.String())
	}
}

func TestExecute_ConfiguredModel(t *testing.T) {
	c, got := setupCLI(t, `{"object":"chat.completion","choices":[{"message":{"role":"assistant","content":"hi"}}]}`,
		config.ModelDefaults{Chat: "gpt-4"})

	if err := execute(context.Background(), []string{"chat", "-system", "be brief", "hello"}, io.Discard, c); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got.body["model"] != "gpt-4" {
		t.Errorf("Expected configured model gpt-4, got %v", got.body["model"])
	}
	msgs, _ := got.body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("Expected system and user messages, got %v", got.body["messages"])
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("Expected system message first, got %v", msgs[0])
	}
}

func TestExecute_Edit(t *testing.T) {
	c, got := setupCLI(t, `{"object":"edit","choices":[{"text":"fixed"}]}`, config.ModelDefaults{})

	args := []string{"edit", "-instruction", "Fix the spelling", "teh cat"}
	if err := execute(context.Background(), args, io.Discard, c); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.body["instruction"] != "Fix the spelling" || got.body["input"] != "teh cat" {
		t.Errorf("Unexpected edit body: %v", got.body)
	}
}

func TestExecute_Image(t *testing.T) {
	c, got := setupCLI(t, `{"created":1,"data":[{"url":"https://img"}]}`, config.ModelDefaults{})

	args := []string{"image", "-size", "256x256", "a", "cat"}
	if err := execute(context.Background(), args, io.Discard, c); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.body["size"] != "256x256" {
		t.Errorf("Expected size 256x256, got %v", got.body["size"])
	}
	if _, ok := got.body["n"]; ok {
		t.Error("Expected n to be omitted when not set")
	}
	if _, ok := got.body["model"]; ok {
		t.Error("Expected no model in image request")
	}
}

func TestExecute_Embed(t *testing.T) {
	c, got := setupCLI(t, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1]},{"object":"embedding","index":1,"embedding":[0.2]}]}`,
		config.ModelDefaults{})

	if err := execute(context.Background(), []string{"embed", "first", "second"}, io.Discard, c); err != nil {
		t.Fatalf("execute: %v", err)
	}
	input, _ := got.body["input"].([]any)
	if len(input) != 2 {
		t.Errorf("Expected two inputs, got %v", got.body["input"])
	}
}

func TestExecute_UpstreamErrorIsDecoding(t *testing.T) {
	c, _ := setupCLI(t, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, config.ModelDefaults{})

	err := execute(context.Background(), []string{"complete", "hi"}, io.Discard, c)
	if !errors.Is(err, openai.ErrDecoding) {
		t.Errorf("Expected decoding error, got %v", err)
	}
}

func TestExecute_BadFlag(t *testing.T) {
	c, _ := setupCLI(t, `{}`, config.ModelDefaults{})
	err := execute(context.Background(), []string{"complete", "-max-tokens", "lots"}, io.Discard, c)
	if err == nil {
		t.Error("Expected flag parse error")
	}
}

func TestParseLogitBias(t *testing.T) {
	bias, err := parseLogitBias("50256:-100, 198:5")
	if err != nil {
		t.Fatalf("parseLogitBias: %v", err)
	}
	if bias[50256] != -100 || bias[198] != 5 {
		t.Errorf("Unexpected bias map: %v", bias)
	}

	for _, in := range []string{"50256", "x:1", "1:y"} {
		if _, err := parseLogitBias(in); err == nil {
			t.Errorf("parseLogitBias(%q): expected error", in)
		}
	}
}
