package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// GroqClient is a minimal client for Groq API calls used for chunk summarization
type GroqClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	client     *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
func NewGroqClient(cfg *config.AIConfig) *GroqClient {
	base := cfg.GroqBaseURL
	if base == "" {
		base = "https://api.groq.com"
	}
	model := cfg.GroqModel
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &GroqClient{
		apiKey:     cfg.GroqAPIKey,
		baseURL:    base,
		model:      model,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an API key is available.
func (g *GroqClient) Configured() bool {
	return g.apiKey != ""
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string      `json:"model,omitempty"`
	Messages    interface{} `json:"messages,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateChunkSummary sends one chunk to Groq and returns the assistant
// content. Transient failures are retried with exponential backoff.
func (g *GroqClient) GenerateChunkSummary(ctx context.Context, text, overlap string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("groq api key not configured")
	}

	prompt := BuildChunkPrompt(text, overlap)

	var content string
	callFn := func() error {
		var err error
		content, err = g.chatCompletion(ctx, prompt)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	boCtx := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(g.maxRetries)), ctx)

	if err := backoff.Retry(callFn, boCtx); err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	return content, nil
}

func (g *GroqClient) chatCompletion(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []map[string]string{{"role": "user", "content": prompt}},
		Temperature: 0.3,
		MaxTokens:   2000,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", backoff.Permanent(err)
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("groq returned status %d", resp.StatusCode)
		// 4xx other than 429 will not improve on retry
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
