package extractor

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Extractor scans chunk turns for task-like statements and produces
// ActionItem candidates with owner, deadline, priority and a raw confidence
// score. It is pure computation: same input always yields the same candidate
// set. Low-confidence candidates are reported as-is; the aggregator applies
// the configured threshold.
type Extractor struct {
	rules            []rule
	deadlinePatterns []*regexp.Regexp
	urgencyPattern   *regexp.Regexp
	nearTermPattern  *regexp.Regexp
	longTermPattern  *regexp.Regexp
	vaguePattern     *regexp.Regexp
	actionVerbs      []string
}

type ruleKind int

const (
	kindSelfCommit ruleKind = iota // "I'll ...", owner is the turn's speaker
	kindGroupOwner                 // "All Department Heads should ...", owner is the group phrase
	kindNamedOwner                 // "Sarah will ...", owner is a known speaker
	kindAddressed                  // "Sarah, please ..." / "can you ...", owner is the addressee
	kindUnassigned                 // "we need to ...", imperative verbs, no owner
)

type rule struct {
	re   *regexp.Regexp
	kind ruleKind
}

// New creates an Extractor with the default pattern rules.
func New() *Extractor {
	return &Extractor{
		rules: []rule{
			{regexp.MustCompile(`(?i)\bI['’]ll\s+(.+)`), kindSelfCommit},
			{regexp.MustCompile(`(?i)\bI will\s+(.+)`), kindSelfCommit},
			{regexp.MustCompile(`(?i)\bI can\s+(.+)`), kindSelfCommit},
			{regexp.MustCompile(`^((?:All|Both)\s+[A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*)\s+(?:should|will|must|need to)\s+(.+)`), kindGroupOwner},
			{regexp.MustCompile(`^([A-Z][a-z]+),\s*(?i:please|can you)\s+(.+)`), kindAddressed},
			{regexp.MustCompile(`\b([A-Z][a-z]+),?\s+(?:will|should|needs to)\s+(.+)`), kindNamedOwner},
			{regexp.MustCompile(`(?i)\bcan you\s+(.+)`), kindAddressed},
			{regexp.MustCompile(`(?i)(?:^|,\s*)please\s+(.+)`), kindAddressed},
			{regexp.MustCompile(`(?i)\bwe need to\s+(.+)`), kindUnassigned},
			{regexp.MustCompile(`(?i)\bneeds? to\s+(.+)`), kindUnassigned},
			{regexp.MustCompile(`(?i)^action item:?\s*(.+)`), kindUnassigned},
			{regexp.MustCompile(`(?i)^(?:send|prepare|schedule|update|finalize|coordinate|provide|review|follow up on)\s+.+`), kindUnassigned},
		},
		deadlinePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bby\s+(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b`),
			regexp.MustCompile(`(?i)\bby\s+(next week|this week|end of (?:the )?week|end of day|tomorrow|today)\b`),
			regexp.MustCompile(`(?i)\bby\s+((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?)\b`),
			regexp.MustCompile(`(?i)\bby\s+(\d{1,2}/\d{1,2})\b`),
			regexp.MustCompile(`(?i)\b(?:in|within)\s+(\d+\s+(?:days?|weeks?|months?))\b`),
			regexp.MustCompile(`(?i)\b(next (?:week|month))\b`),
		},
		urgencyPattern:  regexp.MustCompile(`(?i)\b(urgent|urgently|asap|immediately|critical|right away)\b`),
		nearTermPattern: regexp.MustCompile(`(?i)^(today|tomorrow|end of day|this week|end of (?:the )?week|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)$`),
		longTermPattern: regexp.MustCompile(`(?i)(month|January|February|March|April|May|June|July|August|September|October|November|December)`),
		vaguePattern:    regexp.MustCompile(`(?i)\b(maybe|perhaps|might|could)\b`),
		actionVerbs: []string{
			"will", "send", "prepare", "schedule", "update", "finalize",
			"coordinate", "provide", "review", "complete", "follow up",
		},
	}
}

// Extract produces action item candidates from a chunk's turns.
// knownSpeakers improves owner attribution of directed requests.
func (e *Extractor) Extract(chunk *entities.Chunk, knownSpeakers []string) []entities.ActionItem {
	var items []entities.ActionItem
	seen := make(map[string]int) // dedup key -> index into items

	for _, turn := range chunk.Turns {
		for _, sentence := range sentences(turn.Text) {
			item, ok := e.match(sentence, turn.Speaker, knownSpeakers)
			if !ok {
				continue
			}
			item.SourceChunkID = chunk.ID

			key := strings.ToLower(item.Owner) + "|" + normalizeText(item.Task)
			if idx, dup := seen[key]; dup {
				if item.Confidence > items[idx].Confidence {
					items[idx] = item
				}
				continue
			}
			seen[key] = len(items)
			items = append(items, item)
		}
	}

	return items
}

// match applies the pattern rules in priority order; the first rule that
// matches the sentence wins.
func (e *Extractor) match(sentence, speaker string, knownSpeakers []string) (entities.ActionItem, bool) {
	for _, r := range e.rules {
		m := r.re.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}

		var owner, task string
		switch r.kind {
		case kindSelfCommit:
			owner = speaker
			task = m[1]
		case kindGroupOwner:
			owner = m[1]
			task = m[2]
		case kindNamedOwner:
			name := m[1]
			if !isKnownSpeaker(name, knownSpeakers) {
				continue
			}
			owner = name
			task = m[2]
		case kindAddressed:
			if len(m) > 2 {
				owner = m[1]
				task = m[2]
			} else {
				owner = addressee(sentence, knownSpeakers)
				task = m[1]
			}
		case kindUnassigned:
			if len(m) > 1 {
				task = m[1]
			} else {
				task = m[0]
			}
		}

		task = strings.TrimRight(strings.TrimSpace(task), ",;:")
		// Too short to be an actionable task
		if len(strings.Fields(task)) < 2 {
			continue
		}

		deadline := e.deadline(sentence)
		item := entities.ActionItem{
			Owner:      owner,
			Task:       task,
			Deadline:   deadline,
			Priority:   e.priority(sentence, deadline),
			Confidence: e.confidence(sentence, owner, deadline, task),
		}
		return item, true
	}
	return entities.ActionItem{}, false
}

// deadline returns the first matched deadline phrase, preserving its
// original casing.
func (e *Extractor) deadline(sentence string) string {
	for _, p := range e.deadlinePatterns {
		if m := p.FindStringSubmatch(sentence); m != nil {
			return m[1]
		}
	}
	return ""
}

// priority classifies urgency: explicit urgency keywords beat everything,
// near-term deadlines are medium, missing or long-term deadlines are low,
// anything else defaults to medium.
func (e *Extractor) priority(sentence, deadline string) string {
	if e.urgencyPattern.MatchString(sentence) {
		return entities.PriorityHigh
	}
	if deadline == "" {
		return entities.PriorityLow
	}
	if e.nearTermPattern.MatchString(deadline) {
		return entities.PriorityMedium
	}
	if e.longTermPattern.MatchString(deadline) {
		return entities.PriorityLow
	}
	return entities.PriorityMedium
}

// confidence is a weighted heuristic in [0,1]: explicit owner, explicit
// deadline, a recognizable action verb and a specific task description all
// raise the score; hedged language lowers it.
func (e *Extractor) confidence(sentence, owner, deadline, task string) float64 {
	confidence := 0.5
	lower := strings.ToLower(sentence)

	for _, verb := range e.actionVerbs {
		if strings.Contains(lower, verb) {
			confidence += 0.2
			break
		}
	}
	if owner != "" {
		confidence += 0.2
	}
	if deadline != "" {
		confidence += 0.15
	}
	if len(strings.Fields(task)) >= 3 {
		confidence += 0.1
	}
	if e.vaguePattern.MatchString(sentence) {
		confidence -= 0.2
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0.0 {
		confidence = 0.0
	}
	return confidence
}

// addressee finds a known speaker named in a directed request.
func addressee(sentence string, knownSpeakers []string) string {
	for _, speaker := range knownSpeakers {
		first := strings.Fields(speaker)
		if len(first) == 0 {
			continue
		}
		if strings.Contains(sentence, first[0]) {
			return speaker
		}
	}
	return ""
}

func isKnownSpeaker(name string, knownSpeakers []string) bool {
	for _, speaker := range knownSpeakers {
		if strings.EqualFold(name, speaker) || strings.EqualFold(name, strings.Fields(speaker)[0]) {
			return true
		}
	}
	return false
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

func sentences(text string) []string {
	var out []string
	for _, raw := range sentenceBoundary.Split(text, -1) {
		s := strings.TrimSpace(raw)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)

// normalizeText lowercases, strips punctuation and collapses whitespace,
// producing the comparison form used for dedup keys.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
