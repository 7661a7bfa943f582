package summarizer

import (
	"context"
	"fmt"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	pkgai "github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// generateFunc is the raw text-in/text-out call a provider client exposes.
type generateFunc func(ctx context.Context, text, overlap string) (string, error)

// provider adapts an AI client call to the Summarizer interface, parsing the
// JSON payload the prompt asks for.
type provider struct {
	name     string
	generate generateFunc
	parser   *Parser
}

// NewGroq wraps a Groq client as a Summarizer.
func NewGroq(client *pkgai.GroqClient) Summarizer {
	return &provider{
		name:     "groq",
		generate: client.GenerateChunkSummary,
		parser:   NewParser(),
	}
}

// NewGemini wraps a Gemini client as a Summarizer.
func NewGemini(client *pkgai.GeminiClient) Summarizer {
	return &provider{
		name:     "gemini",
		generate: client.GenerateChunkSummary,
		parser:   NewParser(),
	}
}

func (p *provider) Name() string { return p.name }

func (p *provider) Summarize(ctx context.Context, text, overlap string) (*entities.ChunkSummary, error) {
	content, err := p.generate(ctx, text, overlap)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", uerrors.ErrSummarizationUnavailable, p.name, err)
	}

	summary, err := p.parser.ParseChunkSummary(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", uerrors.ErrSummarizationUnavailable, p.name, err)
	}
	return summary, nil
}
