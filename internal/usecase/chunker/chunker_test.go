package chunker

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

func makeTurns(wordsPerTurn, count int) []entities.SpeakerTurn {
	turns := make([]entities.SpeakerTurn, count)
	for i := range count {
		words := make([]string, wordsPerTurn)
		for j := range wordsPerTurn {
			words[j] = fmt.Sprintf("w%d_%d", i, j)
		}
		turns[i] = entities.SpeakerTurn{
			Speaker: fmt.Sprintf("Speaker%d", i%3),
			Text:    strings.Join(words, " "),
			Order:   i,
		}
	}
	return turns
}

func TestSplit_Empty(t *testing.T) {
	if chunks := New(800, 50).Split(nil); chunks != nil {
		t.Fatalf("expected nil for empty input, got %v", chunks)
	}
}

func TestSplit_Lossless(t *testing.T) {
	turns := makeTurns(30, 40) // 1200 words over 40 turns
	chunks := New(100, 20).Split(turns)

	var rejoined []entities.SpeakerTurn
	for _, chunk := range chunks {
		rejoined = append(rejoined, chunk.Turns...)
	}
	if !reflect.DeepEqual(rejoined, turns) {
		t.Fatalf("chunk concatenation does not equal input sequence")
	}
}

func TestSplit_WordBudget(t *testing.T) {
	turns := makeTurns(30, 40)
	chunks := New(100, 20).Split(turns)

	for _, chunk := range chunks {
		if chunk.WordCount > 100 {
			t.Fatalf("chunk %d exceeds budget: %d words", chunk.ID, chunk.WordCount)
		}
		want := 0
		for _, turn := range chunk.Turns {
			want += turn.Words()
		}
		if chunk.WordCount != want {
			t.Fatalf("chunk %d word count %d, turns sum to %d", chunk.ID, chunk.WordCount, want)
		}
	}
}

func TestSplit_TurnsNeverSplit(t *testing.T) {
	turns := []entities.SpeakerTurn{
		{Speaker: "A", Text: strings.Repeat("word ", 10), Order: 0},
		{Speaker: "B", Text: strings.Repeat("word ", 500), Order: 1}, // bigger than budget
		{Speaker: "C", Text: "short reply", Order: 2},
	}
	chunks := New(100, 0).Split(turns)

	found := false
	for _, chunk := range chunks {
		for _, turn := range chunk.Turns {
			if turn.Order == 1 {
				found = true
				if turn.Words() != 500 {
					t.Fatalf("oversized turn was truncated: %d words", turn.Words())
				}
			}
		}
	}
	if !found {
		t.Fatalf("oversized turn missing from output")
	}
}

func TestSplit_SequentialIDs(t *testing.T) {
	chunks := New(100, 20).Split(makeTurns(30, 40))
	for i, chunk := range chunks {
		if chunk.ID != i {
			t.Fatalf("expected chunk ID %d, got %d", i, chunk.ID)
		}
	}
}

func TestSplit_OverlapContext(t *testing.T) {
	turns := makeTurns(30, 40)
	chunks := New(100, 20).Split(turns)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	if chunks[0].OverlapContext != "" {
		t.Fatalf("first chunk must have no overlap, got %q", chunks[0].OverlapContext)
	}
	for i := 1; i < len(chunks); i++ {
		overlap := chunks[i].OverlapContext
		if overlap == "" {
			t.Fatalf("chunk %d missing overlap context", i)
		}
		if got := len(strings.Fields(overlap)); got > 20 {
			t.Fatalf("chunk %d overlap has %d words, want <= 20", i, got)
		}
		prev := strings.Join(strings.Fields(chunks[i-1].Text()), " ")
		if !strings.HasSuffix(prev, overlap) {
			t.Fatalf("chunk %d overlap is not a suffix of the previous chunk", i)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	turns := makeTurns(17, 55)
	a := New(120, 30).Split(turns)
	b := New(120, 30).Split(turns)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same input produced different chunkings")
	}
}
