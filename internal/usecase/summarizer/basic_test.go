package summarizer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

const basicInput = `John: We reviewed the quarterly budget projections in detail today.
Sarah: We agreed to increase the marketing allocation next quarter.
Mike: The engineering roadmap still needs another review session.`

func TestBasic_Deterministic(t *testing.T) {
	b := NewBasic()
	first, err := b.Summarize(context.Background(), basicInput, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Summarize(context.Background(), basicInput, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different summaries:\n%+v\n%+v", first, second)
	}
}

func TestBasic_EmptyInput(t *testing.T) {
	b := NewBasic()
	if _, err := b.Summarize(context.Background(), "", ""); !errors.Is(err, uerrors.ErrSummarizationUnavailable) {
		t.Fatalf("expected ErrSummarizationUnavailable, got %v", err)
	}
}

func TestBasic_DecisionDetection(t *testing.T) {
	b := NewBasic()
	summary, err := b.Summarize(context.Background(), basicInput, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d: %v", len(summary.Decisions), summary.Decisions)
	}
	if !strings.Contains(summary.Decisions[0], "agreed to increase the marketing allocation") {
		t.Fatalf("unexpected decision: %q", summary.Decisions[0])
	}
}

func TestBasic_StripsSpeakerLabels(t *testing.T) {
	b := NewBasic()
	summary, err := b.Summarize(context.Background(), basicInput, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(summary.Summary, "John:") || strings.Contains(summary.Summary, "Sarah:") {
		t.Fatalf("speaker labels leaked into summary: %q", summary.Summary)
	}
}

func TestBasic_KeyPointsCap(t *testing.T) {
	b := NewBasic()
	long := strings.Repeat("This sentence talks about deployment pipelines. ", 10)
	summary, err := b.Summarize(context.Background(), long, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.KeyPoints) > 3 {
		t.Fatalf("expected at most 3 key points, got %d", len(summary.KeyPoints))
	}
}

func TestBasic_Topics(t *testing.T) {
	b := NewBasic()
	input := "The budget budget budget matters. The roadmap roadmap too. Also staffing."
	summary, err := b.Summarize(context.Background(), input, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Topics) == 0 || summary.Topics[0] != "budget" {
		t.Fatalf("expected most frequent topic first, got %v", summary.Topics)
	}
}
