package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sellerboard/sellerboard-backend/pkg/config"
)

func TestClientSummarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" || len(req.Messages) != 2 {
			t.Errorf("unexpected request: %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  summary text \n"}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(config.InsightsConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := client.Summarize(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "summary text" {
		t.Fatalf("summary = %q", got)
	}
}

func TestClientSummarizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited"},
		})
	}))
	defer server.Close()

	client, _ := NewClient(config.InsightsConfig{APIKey: "k", BaseURL: server.URL, Timeout: time.Second})
	if _, err := client.Summarize(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(config.InsightsConfig{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
