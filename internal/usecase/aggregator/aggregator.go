package aggregator

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Similarity thresholds for near-duplicate detection on normalized text.
// Decisions and discussion points collapse at 0.90 token Jaccard. Action
// tasks with the same owner collapse at 0.80 overlap coefficient, so a task
// restated with extra words ("... by Friday") still merges with the shorter
// phrasing.
const (
	decisionSimilarity = 0.90
	taskSimilarity     = 0.80
)

// Aggregator merges per-chunk summaries and action items into one
// MeetingMinutes value. Inputs are processed in ascending chunk order so
// first-seen tie-breaks stay deterministic regardless of the completion
// order of parallel chunk work.
type Aggregator struct {
	cfg *config.PipelineConfig

	// NowFunc supplies GeneratedAt; overridable in tests.
	NowFunc func() time.Time
}

// New creates an Aggregator bound to an immutable pipeline configuration.
func New(cfg *config.PipelineConfig) *Aggregator {
	return &Aggregator{
		cfg:     cfg,
		NowFunc: time.Now,
	}
}

// Merge combines all chunk results transcript-wide. Attendees are derived
// from the full turn sequence, not per-chunk.
func (a *Aggregator) Merge(title string, summaries []entities.ChunkSummary, actions []entities.ActionItem, turns []entities.SpeakerTurn) *entities.MeetingMinutes {
	sorted := make([]entities.ChunkSummary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ChunkID < sorted[j].ChunkID })

	sortedActions := make([]entities.ActionItem, len(actions))
	copy(sortedActions, actions)
	sort.SliceStable(sortedActions, func(i, j int) bool {
		return sortedActions[i].SourceChunkID < sortedActions[j].SourceChunkID
	})

	var decisions, discussion, topics, parts []string
	for _, cs := range sorted {
		decisions = mergeStrings(decisions, cs.Decisions, decisionSimilarity)
		discussion = mergeStrings(discussion, cs.KeyPoints, decisionSimilarity)
		topics = mergeStrings(topics, cs.Topics, decisionSimilarity)
		if s := strings.TrimSpace(cs.Summary); s != "" {
			parts = append(parts, s)
		}
	}

	items := Deduplicate(sortedActions)
	items = a.filterByConfidence(items)
	if a.cfg.GroupActionsByOwner {
		items = GroupByOwner(items)
	}

	return &entities.MeetingMinutes{
		Title:            title,
		GeneratedAt:      a.NowFunc(),
		Attendees:        attendees(turns),
		Summary:          strings.Join(parts, " "),
		Decisions:        decisions,
		ActionItems:      items,
		DiscussionPoints: discussion,
		Topics:           topics,
	}
}

// Deduplicate collapses action items that share (normalized owner,
// normalized task), or whose tasks are near-duplicates under the same owner.
// The surviving entry keeps the highest-confidence task text, the earliest
// source chunk, and prefers a variant that carries a deadline. Deduplication
// is idempotent: running it over an already-deduplicated set is a no-op.
func Deduplicate(items []entities.ActionItem) []entities.ActionItem {
	var out []entities.ActionItem

	for _, item := range items {
		merged := false
		for i := range out {
			if !sameOwner(out[i].Owner, item.Owner) {
				continue
			}
			if normalizeText(out[i].Task) != normalizeText(item.Task) &&
				overlapCoefficient(normalizeText(out[i].Task), normalizeText(item.Task)) < taskSimilarity {
				continue
			}

			// Same logical task: keep the strongest variant. SourceChunkID
			// stays as-is because items arrive in ascending chunk order.
			if item.Confidence > out[i].Confidence {
				out[i].Task = item.Task
				out[i].Confidence = item.Confidence
			}
			if out[i].Deadline == "" && item.Deadline != "" {
				out[i].Deadline = item.Deadline
				out[i].Priority = item.Priority
			}
			merged = true
			break
		}
		if !merged {
			out = append(out, item)
		}
	}

	return out
}

// GroupByOwner stably partitions items by owner for presentation. Owners
// compare the same way sameOwner does, so "Sarah" and "sarah" share a group.
// Owners keep first-appearance order, unassigned items go last; no item is
// lost.
func GroupByOwner(items []entities.ActionItem) []entities.ActionItem {
	var owners []string
	byOwner := make(map[string][]entities.ActionItem)
	for _, item := range items {
		key := ownerKey(item.Owner)
		if _, ok := byOwner[key]; !ok && key != "" {
			owners = append(owners, key)
		}
		byOwner[key] = append(byOwner[key], item)
	}

	out := make([]entities.ActionItem, 0, len(items))
	for _, owner := range owners {
		out = append(out, byOwner[owner]...)
	}
	out = append(out, byOwner[""]...)
	return out
}

func (a *Aggregator) filterByConfidence(items []entities.ActionItem) []entities.ActionItem {
	out := make([]entities.ActionItem, 0, len(items))
	for _, item := range items {
		if item.Confidence >= a.cfg.MinActionConfidence {
			out = append(out, item)
		}
	}
	return out
}

// mergeStrings appends candidates that are neither exact nor near-duplicates
// of anything already merged, preserving first-seen order.
func mergeStrings(existing, candidates []string, threshold float64) []string {
	for _, candidate := range candidates {
		c := strings.TrimSpace(candidate)
		if c == "" {
			continue
		}
		norm := normalizeText(c)
		dup := false
		for _, have := range existing {
			haveNorm := normalizeText(have)
			if haveNorm == norm || jaccard(haveNorm, norm) >= threshold {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, c)
		}
	}
	return existing
}

func attendees(turns []entities.SpeakerTurn) []string {
	seen := make(map[string]bool)
	var names []string
	for _, turn := range turns {
		if turn.Speaker == "" || seen[turn.Speaker] {
			continue
		}
		seen[turn.Speaker] = true
		names = append(names, turn.Speaker)
	}
	sort.Strings(names)
	return names
}

func sameOwner(a, b string) bool {
	return ownerKey(a) == ownerKey(b)
}

// ownerKey folds an owner name for comparison and grouping.
func ownerKey(owner string) string {
	return strings.ToLower(strings.TrimSpace(owner))
}

// jaccard computes intersection over union of the token sets of two
// normalized strings.
func jaccard(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := intersect(setA, setB)
	return float64(inter) / float64(len(setA)+len(setB)-inter)
}

// overlapCoefficient computes intersection over the smaller token set, so a
// phrase fully contained in a longer one scores 1.0.
func overlapCoefficient(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return float64(intersect(setA, setB)) / float64(smaller)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func intersect(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)

// normalizeText lowercases, strips punctuation and collapses whitespace.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
