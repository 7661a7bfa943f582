package summarizer

import (
	"context"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Summarizer is the abstract summarization capability consumed by the
// pipeline. Implementations turn one chunk of transcript text (plus optional
// overlap context from the previous chunk) into a ChunkSummary.
//
// Idempotence is not guaranteed: AI-backed implementations may return
// different output across calls over the same text. Callers must treat every
// ChunkSummary as chunk-local. A failed call returns
// ErrSummarizationUnavailable (possibly wrapped); it is never fatal to the
// transcript as a whole.
type Summarizer interface {
	// Name identifies the implementation in logs.
	Name() string
	// Summarize produces a summary of text. overlap carries trailing text
	// from the previous chunk for continuity and may be empty.
	Summarize(ctx context.Context, text, overlap string) (*entities.ChunkSummary, error)
}
