package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func anthropicServer(t *testing.T, text string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") == "" {
			t.Error("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.MaxTokens == 0 {
			t.Error("max_tokens not set")
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
			return
		}

		resp := anthropicResponse{
			Model:   req.Model,
			Content: []anthropicContent{{Type: "text", Text: text}},
			Usage:   anthropicUsage{InputTokens: 100, OutputTokens: 50},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnthropicSummarize(t *testing.T) {
	srv := anthropicServer(t, "Two citations were checked; 999 So. 2d 888 was not found.", http.StatusOK)
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "claude-3-5-sonnet-20241022"})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}

	resp, err := p.Summarize(context.Background(), SummarizeRequest{
		Report:           testReport(),
		AllowedCitations: []string{"123 So. 2d 456", "999 So. 2d 888"},
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if resp.Summary == "" {
		t.Error("empty summary")
	}
	if resp.TokensUsed != 150 {
		t.Errorf("tokens = %d, want 150", resp.TokensUsed)
	}
	if len(resp.CitedCitations) != 1 || resp.CitedCitations[0] != "999 So. 2d 888" {
		t.Errorf("cited = %v", resp.CitedCitations)
	}
}

func TestAnthropicSummarize_APIError(t *testing.T) {
	srv := anthropicServer(t, "", http.StatusTooManyRequests)
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}

	_, err = p.Summarize(context.Background(), SummarizeRequest{Report: testReport()})
	if err == nil {
		t.Fatal("expected error from 429 response")
	}
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
