package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionPayload(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"content": content,
				},
			},
		},
	}
}

func TestCompleteJSONReturnsContent(t *testing.T) {
	var gotBody chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test" {
			t.Fatalf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if err := json.NewEncoder(w).Encode(completionPayload(`{"titles":["Heat"]}`)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	content, err := client.CompleteJSON(context.Background(), "system", "user text")
	if err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if content != `{"titles":["Heat"]}` {
		t.Fatalf("unexpected content %q", content)
	}
	if gotBody.Model != "demo-model" {
		t.Fatalf("unexpected model %q", gotBody.Model)
	}
	if gotBody.Temperature != 0 {
		t.Fatalf("expected deterministic sampling, got %v", gotBody.Temperature)
	}
	if gotBody.ResponseFormat["type"] != "json_object" {
		t.Fatalf("unexpected response format %v", gotBody.ResponseFormat)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages %v", gotBody.Messages)
	}
}

func TestCompleteJSONHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL, Model: "demo"})
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for http 401")
	}
}

func TestCompleteJSONEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completionPayload(""))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	_, err := client.CompleteJSON(context.Background(), "system", "user")
	if err == nil || !strings.Contains(err.Error(), "empty content") {
		t.Fatalf("expected empty content error, got %v", err)
	}
}

func TestCompleteJSONRequiresPrompts(t *testing.T) {
	client := NewClient(Config{APIKey: "test", Model: "demo"})
	if _, err := client.CompleteJSON(context.Background(), "", "user"); err == nil {
		t.Fatal("expected error for empty system prompt")
	}
	if _, err := client.CompleteJSON(context.Background(), "system", ""); err == nil {
		t.Fatal("expected error for empty user prompt")
	}
}

func TestDecodeLLMJSONCodeFence(t *testing.T) {
	var parsed struct {
		Titles []string `json:"titles"`
	}
	content := "```json\n{\"titles\": [\"Breaking Bad\"]}\n```"
	if err := DecodeLLMJSON(content, &parsed); err != nil {
		t.Fatalf("DecodeLLMJSON returned error: %v", err)
	}
	if len(parsed.Titles) != 1 || parsed.Titles[0] != "Breaking Bad" {
		t.Fatalf("unexpected titles %v", parsed.Titles)
	}
}

func TestDecodeLLMJSONSurroundingProse(t *testing.T) {
	var parsed struct {
		Titles []string `json:"titles"`
	}
	content := `Sure! Here you go: {"titles": ["Heat"]} hope that helps`
	if err := DecodeLLMJSON(content, &parsed); err != nil {
		t.Fatalf("DecodeLLMJSON returned error: %v", err)
	}
	if len(parsed.Titles) != 1 || parsed.Titles[0] != "Heat" {
		t.Fatalf("unexpected titles %v", parsed.Titles)
	}
}

func TestDecodeLLMJSONRejectsGarbage(t *testing.T) {
	var parsed struct {
		Titles []string `json:"titles"`
	}
	if err := DecodeLLMJSON("not json at all", &parsed); err == nil {
		t.Fatal("expected decode error")
	}
}
