package aggregator

import (
	"reflect"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func newTestAggregator(cfg *config.PipelineConfig) *Aggregator {
	if cfg == nil {
		cfg = &config.PipelineConfig{MinActionConfidence: 0.5}
	}
	a := New(cfg)
	a.NowFunc = fixedClock
	return a
}

func TestMerge_CrossChunkDecisionDedup(t *testing.T) {
	a := newTestAggregator(nil)
	summaries := []entities.ChunkSummary{
		{ChunkID: 0, Summary: "First part.", Decisions: []string{"We agreed to ship on June 10."}},
		{ChunkID: 1, Summary: "Second part.", Decisions: []string{"We agreed to ship on June 10.", "Budget was approved."}},
	}

	minutes := a.Merge("Sync", summaries, nil, nil)
	if len(minutes.Decisions) != 2 {
		t.Fatalf("expected 2 unique decisions, got %d: %v", len(minutes.Decisions), minutes.Decisions)
	}
	if minutes.Decisions[0] != "We agreed to ship on June 10." {
		t.Fatalf("first-seen order lost: %v", minutes.Decisions)
	}
}

func TestMerge_NearDuplicateDecisions(t *testing.T) {
	a := newTestAggregator(nil)
	summaries := []entities.ChunkSummary{
		{ChunkID: 0, Decisions: []string{"The team agreed to ship the release on June 10 after review"}},
		{ChunkID: 1, Decisions: []string{"The team agreed to ship the release on June 10 after review!"}},
	}

	minutes := a.Merge("Sync", summaries, nil, nil)
	if len(minutes.Decisions) != 1 {
		t.Fatalf("near-duplicate decisions should collapse, got %v", minutes.Decisions)
	}
}

func TestMerge_AscendingChunkOrder(t *testing.T) {
	a := newTestAggregator(nil)
	// Completion order is reversed; output must still follow chunk IDs.
	summaries := []entities.ChunkSummary{
		{ChunkID: 2, Summary: "third"},
		{ChunkID: 0, Summary: "first"},
		{ChunkID: 1, Summary: "second"},
	}

	minutes := a.Merge("Sync", summaries, nil, nil)
	if minutes.Summary != "first second third" {
		t.Fatalf("summaries not in chunk order: %q", minutes.Summary)
	}
}

func TestDeduplicate_SameOwnerSimilarTasks(t *testing.T) {
	items := []entities.ActionItem{
		{Owner: "Sarah", Task: "prepare the budget proposal", Confidence: 0.8, SourceChunkID: 0},
		{Owner: "Sarah", Task: "prepare the budget proposal by Friday", Deadline: "Friday", Confidence: 0.95, SourceChunkID: 1},
	}

	out := Deduplicate(items)
	if len(out) != 1 {
		t.Fatalf("expected similar tasks merged, got %d: %+v", len(out), out)
	}
	if out[0].Confidence != 0.95 {
		t.Fatalf("expected max confidence kept, got %f", out[0].Confidence)
	}
	if out[0].Deadline != "Friday" {
		t.Fatalf("expected deadline preserved from later variant, got %q", out[0].Deadline)
	}
	if out[0].SourceChunkID != 0 {
		t.Fatalf("expected earliest source chunk kept, got %d", out[0].SourceChunkID)
	}
}

func TestDeduplicate_DifferentOwnersKeepBoth(t *testing.T) {
	items := []entities.ActionItem{
		{Owner: "Sarah", Task: "prepare the budget proposal", Confidence: 0.8},
		{Owner: "Mike", Task: "prepare the budget proposal", Confidence: 0.8},
	}
	if out := Deduplicate(items); len(out) != 2 {
		t.Fatalf("same task for different owners must not merge, got %d", len(out))
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	items := []entities.ActionItem{
		{Owner: "Sarah", Task: "prepare the budget proposal", Confidence: 0.8},
		{Owner: "Mike", Task: "review vendor contracts", Deadline: "Friday", Confidence: 0.9},
		{Owner: "", Task: "finalize the launch checklist", Confidence: 0.7},
	}

	once := Deduplicate(items)
	twice := Deduplicate(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("deduplication is not idempotent:\n%+v\n%+v", once, twice)
	}
}

func TestMerge_ConfidenceFilterAfterDedup(t *testing.T) {
	a := newTestAggregator(&config.PipelineConfig{MinActionConfidence: 0.75})
	// Two variants below and above threshold; dedup first keeps the stronger
	// one, so the item survives the filter.
	actions := []entities.ActionItem{
		{Owner: "Sarah", Task: "prepare the budget proposal", Confidence: 0.6, SourceChunkID: 0},
		{Owner: "Sarah", Task: "prepare the budget proposal", Confidence: 0.9, SourceChunkID: 1},
		{Owner: "Mike", Task: "maybe look at pricing sometime", Confidence: 0.3, SourceChunkID: 0},
	}

	minutes := a.Merge("Sync", nil, actions, nil)
	if len(minutes.ActionItems) != 1 {
		t.Fatalf("expected 1 surviving item, got %d: %+v", len(minutes.ActionItems), minutes.ActionItems)
	}
	if minutes.ActionItems[0].Owner != "Sarah" {
		t.Fatalf("wrong item survived: %+v", minutes.ActionItems[0])
	}
}

func TestMerge_GroupByOwner(t *testing.T) {
	a := newTestAggregator(&config.PipelineConfig{MinActionConfidence: 0.5, GroupActionsByOwner: true})
	actions := []entities.ActionItem{
		{Owner: "Sarah", Task: "prepare the budget proposal", Confidence: 0.9, SourceChunkID: 0},
		{Owner: "", Task: "finalize the launch checklist", Confidence: 0.8, SourceChunkID: 0},
		{Owner: "Mike", Task: "review vendor contracts", Confidence: 0.9, SourceChunkID: 0},
		{Owner: "Sarah", Task: "schedule the retro meeting", Confidence: 0.9, SourceChunkID: 1},
	}

	minutes := a.Merge("Sync", nil, actions, nil)
	owners := make([]string, len(minutes.ActionItems))
	for i, item := range minutes.ActionItems {
		owners[i] = item.Owner
	}
	want := []string{"Sarah", "Sarah", "Mike", ""}
	if !reflect.DeepEqual(owners, want) {
		t.Fatalf("expected owner grouping %v, got %v", want, owners)
	}
}

func TestGroupByOwner_CaseInsensitive(t *testing.T) {
	items := []entities.ActionItem{
		{Owner: "Sarah", Task: "prepare the budget proposal", Confidence: 0.9, SourceChunkID: 0},
		{Owner: "Mike", Task: "review vendor contracts", Confidence: 0.9, SourceChunkID: 0},
		{Owner: "sarah", Task: "schedule the retro meeting", Confidence: 0.9, SourceChunkID: 1},
	}

	grouped := GroupByOwner(items)
	tasks := make([]string, len(grouped))
	for i, item := range grouped {
		tasks[i] = item.Task
	}
	want := []string{"prepare the budget proposal", "schedule the retro meeting", "review vendor contracts"}
	if !reflect.DeepEqual(tasks, want) {
		t.Fatalf("expected case-insensitive owner grouping %v, got %v", want, tasks)
	}
}

func TestMerge_AttendeesFromTurns(t *testing.T) {
	a := newTestAggregator(nil)
	turns := []entities.SpeakerTurn{
		{Speaker: "John", Text: "hello", Order: 0},
		{Speaker: "Sarah", Text: "hi", Order: 1},
		{Speaker: "John", Text: "again", Order: 2},
		{Speaker: "", Text: "unattributed", Order: 3},
	}

	minutes := a.Merge("Sync", nil, nil, turns)
	if !reflect.DeepEqual(minutes.Attendees, []string{"John", "Sarah"}) {
		t.Fatalf("unexpected attendees: %v", minutes.Attendees)
	}
}

func TestMerge_Deterministic(t *testing.T) {
	a := newTestAggregator(nil)
	summaries := []entities.ChunkSummary{
		{ChunkID: 0, Summary: "First.", KeyPoints: []string{"point one"}, Decisions: []string{"decision one"}, Topics: []string{"budget"}},
		{ChunkID: 1, Summary: "Second.", KeyPoints: []string{"point two"}, Decisions: []string{"decision two"}, Topics: []string{"budget", "hiring"}},
	}
	actions := []entities.ActionItem{
		{Owner: "Sarah", Task: "prepare the budget proposal", Confidence: 0.9, SourceChunkID: 0},
	}
	turns := []entities.SpeakerTurn{{Speaker: "Sarah", Text: "hi", Order: 0}}

	first := a.Merge("Sync", summaries, actions, turns)
	second := a.Merge("Sync", summaries, actions, turns)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs produced different minutes")
	}
}
