package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// GeminiClient calls the Gemini API for chunk summarization, rotating through
// the supplied API keys on quota errors. Safe for concurrent use: the pipeline
// shares one client across its chunk workers.
type GeminiClient struct {
	apiKeys []string
	model   string

	mu         sync.Mutex
	currentKey int
}

// NewGeminiClient creates a Gemini client from config.
func NewGeminiClient(cfg *config.AIConfig) *GeminiClient {
	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClient{
		apiKeys: cfg.GeminiAPIKeys,
		model:   model,
	}
}

// Configured reports whether at least one API key is available.
func (g *GeminiClient) Configured() bool {
	return len(g.apiKeys) > 0
}

// GenerateChunkSummary sends one chunk to Gemini and returns the response
// text. Rotates API keys on 429 / quota errors.
func (g *GeminiClient) GenerateChunkSummary(ctx context.Context, text, overlap string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("gemini api keys not configured")
	}

	prompt := BuildChunkPrompt(text, overlap)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *GeminiClient) activeKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey]
}

func (g *GeminiClient) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
