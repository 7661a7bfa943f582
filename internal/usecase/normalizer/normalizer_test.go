package normalizer

import (
	"errors"
	"strings"
	"testing"

	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

func TestParse_EmptyTranscript(t *testing.T) {
	n := New()
	for _, input := range []string{"", "   ", "\n\n\t"} {
		if _, err := n.Parse(input); !errors.Is(err, uerrors.ErrEmptyTranscript) {
			t.Fatalf("input %q: expected ErrEmptyTranscript, got %v", input, err)
		}
	}
}

func TestParse_SpeakerAttribution(t *testing.T) {
	n := New()
	turns, err := n.Parse("John: Let's discuss the Q4 budget. Sarah: I agree. I'll prepare a proposal by Friday.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d: %+v", len(turns), turns)
	}
	if turns[0].Speaker != "John" {
		t.Fatalf("expected speaker John, got %q", turns[0].Speaker)
	}
	if turns[1].Speaker != "Sarah" {
		t.Fatalf("expected speaker Sarah, got %q", turns[1].Speaker)
	}
	if turns[1].Text != "I agree. I'll prepare a proposal by Friday." {
		t.Fatalf("unexpected text for Sarah: %q", turns[1].Text)
	}
	if turns[0].Order != 0 || turns[1].Order != 1 {
		t.Fatalf("turn order not preserved: %d %d", turns[0].Order, turns[1].Order)
	}
}

func TestParse_MultiWordAndBracketNames(t *testing.T) {
	n := New()
	input := "John Smith: Status update first.\n[Mary Jane Watson]: Thanks, nothing blocking."
	turns, err := n.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Speaker != "John Smith" {
		t.Fatalf("expected John Smith, got %q", turns[0].Speaker)
	}
	if turns[1].Speaker != "Mary Jane Watson" {
		t.Fatalf("expected Mary Jane Watson, got %q", turns[1].Speaker)
	}
}

func TestParse_NoiseAndTimestampRemoval(t *testing.T) {
	n := New()
	input := "[10:03 AM] John: Um, so the, uh, rollout [inaudible] is on track (laughter)."
	turns, err := n.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(turns))
	}
	got := turns[0].Text
	for _, banned := range []string{"Um", "uh", "[inaudible]", "(laughter)", "10:03"} {
		if strings.Contains(got, banned) {
			t.Fatalf("noise %q not removed from %q", banned, got)
		}
	}
	if turns[0].Speaker != "John" {
		t.Fatalf("expected John, got %q", turns[0].Speaker)
	}
}

func TestParse_ContinuationLines(t *testing.T) {
	n := New()
	input := "Sarah: The migration plan has three phases.\nFirst we freeze the schema.\nThen we backfill."
	turns, err := n.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("continuation lines should merge into one turn, got %d", len(turns))
	}
	if !strings.Contains(turns[0].Text, "backfill") {
		t.Fatalf("continuation text lost: %q", turns[0].Text)
	}
}

func TestParse_NoSpeakerLabels(t *testing.T) {
	n := New()
	turns, err := n.Parse("the whole discussion was recorded without any labels at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 1 || turns[0].Speaker != "" {
		t.Fatalf("expected single unattributed turn, got %+v", turns)
	}
}

func TestParse_OnlyNoise(t *testing.T) {
	n := New()
	if _, err := n.Parse("[inaudible] um uh\n[crosstalk]"); !errors.Is(err, uerrors.ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript for noise-only input, got %v", err)
	}
}

func TestStats(t *testing.T) {
	n := New()
	turns, err := n.Parse("John: one two three\nSarah: four five\nJohn: six")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats := n.Stats(turns)
	if stats.TotalTurns != 3 {
		t.Fatalf("expected 3 turns, got %d", stats.TotalTurns)
	}
	if stats.TotalWords != 6 {
		t.Fatalf("expected 6 words, got %d", stats.TotalWords)
	}
	if stats.SpeakerCount != 2 {
		t.Fatalf("expected 2 speakers, got %d", stats.SpeakerCount)
	}
	if stats.Speakers[0] != "John" || stats.Speakers[1] != "Sarah" {
		t.Fatalf("speakers not sorted: %v", stats.Speakers)
	}
}
