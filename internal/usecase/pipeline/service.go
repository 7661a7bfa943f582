package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/aggregator"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/chunker"
	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/extractor"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/normalizer"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/summarizer"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Service turns one raw transcript into structured meeting minutes:
// normalize, chunk, summarize and extract per chunk, then aggregate.
type Service interface {
	ProcessTranscript(ctx context.Context, title, raw string) (*Result, error)
}

// Result carries the aggregated minutes plus run metadata for persistence
// and reporting.
type Result struct {
	Minutes        *entities.MeetingMinutes
	Stats          entities.TranscriptStats
	ChunkCount     int
	ModelUsed      string
	ProcessingTime time.Duration
}

type service struct {
	cfg        *config.PipelineConfig
	normalizer *normalizer.Normalizer
	chunker    *chunker.Chunker
	summarizer summarizer.Summarizer
	fallback   summarizer.Summarizer
	extractor  *extractor.Extractor
	aggregator *aggregator.Aggregator
	logger     *zap.Logger
}

// NewService wires the pipeline stages. chain may be nil when no AI provider
// is configured; every chunk then goes through the deterministic fallback.
func NewService(cfg *config.PipelineConfig, chain summarizer.Summarizer, logger *zap.Logger) Service {
	return &service{
		cfg:        cfg,
		normalizer: normalizer.New(),
		chunker:    chunker.New(cfg.MaxWordsPerChunk, cfg.OverlapWords),
		summarizer: chain,
		fallback:   summarizer.NewBasic(),
		extractor:  extractor.New(),
		aggregator: aggregator.New(cfg),
		logger:     logger,
	}
}

type chunkResult struct {
	summary  *entities.ChunkSummary
	actions  []entities.ActionItem
	fellBack bool
	done     bool
}

// ProcessTranscript runs the full pipeline. Chunks are processed in parallel
// up to MaxConcurrentChunks; ordering of the aggregate is by chunk ID, never
// by completion order. On context cancellation the partial aggregate of
// completed chunks is returned together with the context error.
func (s *service) ProcessTranscript(ctx context.Context, title, raw string) (*Result, error) {
	start := time.Now()

	turns, err := s.normalizer.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize transcript: %w", err)
	}
	stats := s.normalizer.Stats(turns)

	chunks := s.chunker.Split(turns)
	s.logger.Info("transcript chunked",
		zap.Int("chunks", len(chunks)),
		zap.Int("words", stats.TotalWords),
		zap.Int("speakers", stats.SpeakerCount),
	)

	results := make([]chunkResult, len(chunks))
	sem := newSemaphore(s.cfg.MaxConcurrentChunks)
	var wg sync.WaitGroup

	for i := range chunks {
		if err := sem.acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer sem.release()
			results[idx] = s.processChunk(ctx, &chunks[idx], stats.Speakers)
		}(i)
	}
	wg.Wait()

	var summaries []entities.ChunkSummary
	var actions []entities.ActionItem
	completed := 0
	fallbacks := 0
	for _, r := range results {
		if !r.done {
			continue
		}
		completed++
		if r.fellBack {
			fallbacks++
		}
		if r.summary != nil {
			summaries = append(summaries, *r.summary)
		}
		actions = append(actions, r.actions...)
	}

	minutes := s.aggregator.Merge(title, summaries, actions, turns)
	result := &Result{
		Minutes:        minutes,
		Stats:          stats,
		ChunkCount:     len(chunks),
		ModelUsed:      s.modelUsed(completed, fallbacks),
		ProcessingTime: time.Since(start),
	}

	if err := ctx.Err(); err != nil {
		s.logger.Warn("pipeline cancelled, returning partial minutes",
			zap.Int("completed_chunks", completed),
			zap.Int("total_chunks", len(chunks)),
		)
		return result, fmt.Errorf("%w: %d/%d chunks processed", err, completed, len(chunks))
	}

	s.logger.Info("minutes generated",
		zap.Int("action_items", len(minutes.ActionItems)),
		zap.Int("decisions", len(minutes.Decisions)),
		zap.String("model", result.ModelUsed),
		zap.Duration("elapsed", result.ProcessingTime),
	)
	return result, nil
}

// processChunk summarizes one chunk, substituting the deterministic fallback
// when the provider chain fails, and extracts its action item candidates.
// Extraction runs regardless of summarization outcome.
func (s *service) processChunk(ctx context.Context, chunk *entities.Chunk, speakers []string) chunkResult {
	text := chunk.Text()

	var summary *entities.ChunkSummary
	var err error
	fellBack := false

	if s.summarizer != nil {
		callCtx := ctx
		cancel := context.CancelFunc(func() {})
		if s.cfg.SummarizeTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, s.cfg.SummarizeTimeout)
		}
		summary, err = s.summarizer.Summarize(callCtx, text, chunk.OverlapContext)
		cancel()
	} else {
		err = uerrors.ErrNoProviders
	}

	if err != nil {
		if ctx.Err() != nil {
			return chunkResult{}
		}
		s.logger.Warn("falling back to basic summarization",
			zap.Int("chunk", chunk.ID),
			zap.Error(err),
		)
		fellBack = true
		summary, err = s.fallback.Summarize(ctx, text, chunk.OverlapContext)
		if err != nil {
			s.logger.Error("fallback summarization failed",
				zap.Int("chunk", chunk.ID),
				zap.Error(err),
			)
			summary = nil
		}
	}

	if summary != nil {
		summary.ChunkID = chunk.ID
	}

	return chunkResult{
		summary:  summary,
		actions:  s.extractor.Extract(chunk, speakers),
		fellBack: fellBack,
		done:     true,
	}
}

func (s *service) modelUsed(completed, fallbacks int) string {
	if s.summarizer == nil || (completed > 0 && fallbacks == completed) {
		return s.fallback.Name()
	}
	if fallbacks > 0 {
		return s.summarizer.Name() + "+" + s.fallback.Name()
	}
	return s.summarizer.Name()
}
