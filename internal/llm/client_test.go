package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pamnard/TaroBot/internal/llm"
)

func completionServer(t *testing.T, content string, gotReq *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}
		if gotReq != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, gotReq)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestClient_Complete_Success(t *testing.T) {
	var gotReq map[string]any
	srv := completionServer(t, "  The cards favor patience.  ", &gotReq)
	defer srv.Close()

	client := llm.NewClient(llm.Options{
		HTTPClient:  srv.Client(),
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.9,
	})

	out, err := client.Complete(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a tarot reader."},
		{Role: llm.RoleUser, Content: "Interpret The Fool."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "The cards favor patience." {
		t.Errorf("unexpected reply: %q", out)
	}

	if gotReq["model"] != "test-model" {
		t.Errorf("request model: %v", gotReq["model"])
	}
	msgs, _ := gotReq["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("request carried %d messages, want 2", len(msgs))
	}
}

func TestClient_Complete_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	client := llm.NewClient(llm.Options{HTTPClient: srv.Client(), BaseURL: srv.URL, APIKey: "test-key", Model: "m"})
	_, err := client.Complete(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected error for upstream 429, got nil")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry status code: %v", err)
	}
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := llm.NewClient(llm.Options{HTTPClient: srv.Client(), BaseURL: srv.URL, APIKey: "test-key", Model: "m"})
	_, err := client.Complete(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected error for empty choices, got nil")
	}
}

func TestClient_Complete_TrailingSlashBaseURL(t *testing.T) {
	srv := completionServer(t, "ok", nil)
	defer srv.Close()

	client := llm.NewClient(llm.Options{HTTPClient: srv.Client(), BaseURL: srv.URL + "/", APIKey: "test-key", Model: "m"})
	out, err := client.Complete(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Errorf("unexpected reply: %q", out)
	}
}
