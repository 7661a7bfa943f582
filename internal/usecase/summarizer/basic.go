package summarizer

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// Basic is the deterministic fallback summarizer. It uses only local
// heuristics (first/last sentence extraction, keyword-based decision
// detection) so the pipeline keeps working with zero external services.
// Same input always yields the same output.
type Basic struct {
	decisionPattern *regexp.Regexp
	labelPattern    *regexp.Regexp
}

// NewBasic creates the deterministic fallback summarizer.
func NewBasic() *Basic {
	return &Basic{
		decisionPattern: regexp.MustCompile(`(?i)\b(decided|agreed|approved|approve|confirmed|finalized)\b`),
		labelPattern:    regexp.MustCompile(`^[A-Z][a-z]+(?:\s[A-Z]\.)?(?:\s[A-Z][a-z]+)?:\s*`),
	}
}

// Name identifies the fallback in logs.
func (b *Basic) Name() string { return "basic" }

// Summarize never calls out; it fails only on empty input.
func (b *Basic) Summarize(_ context.Context, text, _ string) (*entities.ChunkSummary, error) {
	sentences := b.sentences(text)
	if len(sentences) == 0 {
		return nil, uerrors.ErrSummarizationUnavailable
	}

	summary := sentences[0]
	if len(sentences) > 1 && sentences[len(sentences)-1] != sentences[0] {
		summary = sentences[0] + " " + sentences[len(sentences)-1]
	}

	keyPoints := make([]string, 0, 3)
	for _, s := range sentences {
		if len(keyPoints) == 3 {
			break
		}
		keyPoints = append(keyPoints, s)
	}

	var decisions []string
	for _, s := range sentences {
		if b.decisionPattern.MatchString(s) {
			decisions = append(decisions, s)
		}
	}

	return &entities.ChunkSummary{
		Summary:   summary,
		KeyPoints: keyPoints,
		Decisions: decisions,
		Topics:    b.topics(text),
	}, nil
}

// sentences splits chunk text into trimmed sentences with speaker labels
// stripped, dropping empties.
func (b *Basic) sentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = b.labelPattern.ReplaceAllString(strings.TrimSpace(line), "")
		for _, raw := range splitSentences(line) {
			s := strings.TrimSpace(raw)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// topics picks the three most frequent long words as rough topic labels.
// Ties break on first appearance to keep the output deterministic.
func (b *Basic) topics(text string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	idx := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:'\"()")
		if len(word) < 6 || !isAlpha(word) {
			continue
		}
		if _, ok := firstSeen[word]; !ok {
			firstSeen[word] = idx
		}
		counts[word]++
		idx++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > 3 {
		words = words[:3]
	}
	return words
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

func splitSentences(text string) []string {
	return sentenceBoundary.Split(text, -1)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
