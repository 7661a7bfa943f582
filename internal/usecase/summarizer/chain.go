package summarizer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// Chain tries a priority-ordered list of providers behind the single
// Summarizer interface. The pipeline never branches on provider identity,
// only on success or failure of the abstract call.
type Chain struct {
	providers []Summarizer
	timeout   time.Duration
	logger    *zap.Logger
}

// NewChain creates a provider chain. timeout bounds each individual provider
// call; zero disables the per-call timeout.
func NewChain(timeout time.Duration, logger *zap.Logger, providers ...Summarizer) *Chain {
	return &Chain{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
	}
}

// Name identifies the chain in logs.
func (c *Chain) Name() string { return "chain" }

// Summarize returns the first provider's successful result. When every
// provider fails it returns ErrSummarizationUnavailable wrapping the last
// failure so the caller can substitute the deterministic fallback.
func (c *Chain) Summarize(ctx context.Context, text, overlap string) (*entities.ChunkSummary, error) {
	if len(c.providers) == 0 {
		return nil, uerrors.ErrNoProviders
	}

	var lastErr error
	for _, provider := range c.providers {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", uerrors.ErrSummarizationUnavailable, ctx.Err())
		}

		callCtx := ctx
		cancel := context.CancelFunc(func() {})
		if c.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		}

		summary, err := provider.Summarize(callCtx, text, overlap)
		cancel()
		if err == nil {
			return summary, nil
		}

		lastErr = err
		if c.logger != nil {
			c.logger.Warn("summarization provider failed, trying next",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
		}
	}

	return nil, fmt.Errorf("%w: %w", uerrors.ErrSummarizationUnavailable, lastErr)
}
