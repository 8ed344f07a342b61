package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func ollamaServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		case "/api/generate":
			var req ollamaRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if req.Stream {
				t.Error("streaming should be disabled")
			}
			if req.Model == "" {
				t.Error("model not set")
			}
			_ = json.NewEncoder(w).Encode(ollamaResponse{
				Model:           req.Model,
				Response:        text,
				Done:            true,
				PromptEvalCount: 80,
				EvalCount:       40,
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestOllamaSummarize(t *testing.T) {
	srv := ollamaServer(t, "All citations were verified against the database.")
	defer srv.Close()

	p, err := NewOllamaProvider(Config{BaseURL: srv.URL, Model: "llama3.1:8b"})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}

	resp, err := p.Summarize(context.Background(), SummarizeRequest{Report: testReport()})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if resp.Summary == "" {
		t.Error("empty summary")
	}
	if resp.TokensUsed != 120 {
		t.Errorf("tokens = %d, want 120", resp.TokensUsed)
	}
}

func TestOllamaSummarize_RequiresModel(t *testing.T) {
	p, err := NewOllamaProvider(Config{BaseURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}
	if _, err := p.Summarize(context.Background(), SummarizeRequest{Report: testReport()}); err == nil {
		t.Fatal("expected error without a model name")
	}
}

func TestOllamaIsAvailable(t *testing.T) {
	srv := ollamaServer(t, "")
	defer srv.Close()

	p, err := NewOllamaProvider(Config{BaseURL: srv.URL, Model: "llama3.1:8b"})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}
	if !p.IsAvailable(context.Background()) {
		t.Error("server is up; provider should be available")
	}
}
