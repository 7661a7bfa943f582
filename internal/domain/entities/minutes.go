package entities

import "time"

// Priority levels for action items
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ChunkSummary is the per-chunk result of the summarization step. One is
// produced per chunk, by an AI provider or by the deterministic fallback.
// Summaries are chunk-local; nothing may assume two calls over the same text
// return identical output when an AI backend produced them.
type ChunkSummary struct {
	ChunkID   int      `json:"chunk_id"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Decisions []string `json:"decisions"`
	Topics    []string `json:"topics,omitempty"`
}

// ActionItem is a structured task record extracted from the transcript.
// An empty Owner means the task is unassigned; group owners such as
// "All Department Heads" are carried as plain strings.
type ActionItem struct {
	Owner         string  `json:"owner,omitempty"`
	Task          string  `json:"task"`
	Deadline      string  `json:"deadline,omitempty"`
	Priority      string  `json:"priority"`
	Confidence    float64 `json:"confidence"`
	SourceChunkID int     `json:"source_chunk_id"`
}

// MeetingMinutes is the final aggregate produced by the pipeline. It is
// immutable once returned; decisions, discussion points and action items are
// deduplicated and kept in first-seen order.
type MeetingMinutes struct {
	Title            string       `json:"title"`
	GeneratedAt      time.Time    `json:"generated_at"`
	Attendees        []string     `json:"attendees"`
	Summary          string       `json:"summary"`
	Decisions        []string     `json:"decisions"`
	ActionItems      []ActionItem `json:"action_items"`
	DiscussionPoints []string     `json:"discussion_points"`
	Topics           []string     `json:"topics"`
}
