package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func TestGenerateChunkSummary_Success(t *testing.T) {
	// Mock Groq server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"summary":"ok"}`}},
			},
		})
	}))
	defer ts.Close()

	client := NewGroqClient(&config.AIConfig{GroqAPIKey: "test-key", GroqBaseURL: ts.URL})

	content, err := client.GenerateChunkSummary(context.Background(), "John: hello", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if content != `{"summary":"ok"}` {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestGenerateChunkSummary_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewGroqClient(&config.AIConfig{GroqAPIKey: "test-key", GroqBaseURL: ts.URL, MaxRetries: 3})

	if _, err := client.GenerateChunkSummary(context.Background(), "text", ""); err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if calls != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls)
	}
}

func TestGenerateChunkSummary_NoKey(t *testing.T) {
	client := NewGroqClient(&config.AIConfig{})
	if client.Configured() {
		t.Fatalf("client without key must not report configured")
	}
	if _, err := client.GenerateChunkSummary(context.Background(), "text", ""); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestBuildChunkPrompt_IncludesOverlap(t *testing.T) {
	prompt := BuildChunkPrompt("John: hello", "previous words")
	if !strings.Contains(prompt, "previous words") {
		t.Fatalf("overlap context missing from prompt")
	}
	if !strings.Contains(prompt, "John: hello") {
		t.Fatalf("chunk text missing from prompt")
	}

	bare := BuildChunkPrompt("John: hello", "")
	if strings.Contains(bare, "Previous context") {
		t.Fatalf("empty overlap must not add a context section")
	}
}
