package chunker

import (
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Chunker splits a normalized transcript into bounded, context-preserving
// chunks. Turns are never split: a single turn larger than the word budget
// becomes its own oversized chunk rather than being truncated mid-content.
type Chunker struct {
	maxWordsPerChunk int
	overlapWords     int
}

// New creates a Chunker. maxWordsPerChunk bounds the chunk size (default 800
// when <= 0); overlapWords is the trailing window carried into the next
// chunk's OverlapContext for summarization continuity.
func New(maxWordsPerChunk, overlapWords int) *Chunker {
	if maxWordsPerChunk <= 0 {
		maxWordsPerChunk = 800
	}
	if overlapWords < 0 {
		overlapWords = 0
	}
	return &Chunker{
		maxWordsPerChunk: maxWordsPerChunk,
		overlapWords:     overlapWords,
	}
}

// Split greedily accumulates turns into chunks until adding the next turn
// would exceed the word budget. The result is deterministic for a given turn
// sequence and configuration, and lossless: the concatenation of all chunk
// turns equals the input sequence.
func (c *Chunker) Split(turns []entities.SpeakerTurn) []entities.Chunk {
	if len(turns) == 0 {
		return nil
	}

	var chunks []entities.Chunk
	var current []entities.SpeakerTurn
	currentWords := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunk := entities.Chunk{
			ID:        len(chunks),
			Turns:     current,
			WordCount: currentWords,
		}
		if len(chunks) > 0 {
			chunk.OverlapContext = c.trailingWindow(chunks[len(chunks)-1])
		}
		chunks = append(chunks, chunk)
		current = nil
		currentWords = 0
	}

	for _, turn := range turns {
		w := turn.Words()
		if len(current) > 0 && currentWords+w > c.maxWordsPerChunk {
			flush()
		}
		current = append(current, turn)
		currentWords += w
	}
	flush()

	return chunks
}

// trailingWindow returns the last overlapWords words of the previous chunk.
// The overlap feeds the next chunk's summarization call only; it is not
// counted toward that chunk's own word budget.
func (c *Chunker) trailingWindow(prev entities.Chunk) string {
	if c.overlapWords == 0 {
		return ""
	}
	words := strings.Fields(prev.Text())
	if len(words) > c.overlapWords {
		words = words[len(words)-c.overlapWords:]
	}
	return strings.Join(words, " ")
}
