package normalizer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// Normalizer cleans raw transcripts and splits them into speaker turns.
//
// Cleanup is rule based: transcription noise markers, timestamps and filler
// words are stripped before speaker detection. A speaker label is a run of
// capitalized name words (optional middle initial) followed by a colon, at
// line start or mid-line after a sentence; anything else continues the
// previous speaker's turn.
type Normalizer struct {
	noisePatterns    []*regexp.Regexp
	timestampPattern *regexp.Regexp
	speakerPattern   *regexp.Regexp
	bracketPattern   *regexp.Regexp
}

// New creates a Normalizer with the default cleanup rules.
func New() *Normalizer {
	noise := []string{
		`(?i)\[inaudible\]`,
		`(?i)\[crosstalk\]`,
		`(?i)\[background noise\]`,
		`(?i)\(laughter\)`,
		`(?i)\(coughing\)`,
		`(?i)\bum+\b`,
		`(?i)\buh+\b`,
	}
	patterns := make([]*regexp.Regexp, 0, len(noise))
	for _, p := range noise {
		patterns = append(patterns, regexp.MustCompile(p))
	}

	return &Normalizer{
		noisePatterns:    patterns,
		timestampPattern: regexp.MustCompile(`\[?\b\d{1,2}:\d{2}(?::\d{2})?\s*(?:AM|PM|am|pm)?\b\]?`),
		// "John:", "John Smith:", "John Q. Smith:" at line start or after whitespace
		speakerPattern: regexp.MustCompile(`(?:^|\s)([A-Z][a-z]+(?:\s[A-Z]\.)?(?:\s[A-Z][a-z]+)?):\s+`),
		bracketPattern: regexp.MustCompile(`^\[([^\]]+)\]:\s*`),
	}
}

// Parse normalizes a raw transcript into an ordered sequence of speaker
// turns. It returns ErrEmptyTranscript when the input is empty or nothing
// usable remains after cleanup; callers decide whether that is fatal.
func (n *Normalizer) Parse(raw string) ([]entities.SpeakerTurn, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, uerrors.ErrEmptyTranscript
	}

	var turns []entities.SpeakerTurn
	order := 0

	for _, line := range strings.Split(raw, "\n") {
		line = n.cleanLine(line)
		if line == "" {
			continue
		}

		// "[John Smith]: ..." bracket labels first
		if m := n.bracketPattern.FindStringSubmatch(line); m != nil {
			rest := strings.TrimSpace(line[len(m[0]):])
			turns = appendTurn(turns, m[1], rest, &order)
			continue
		}

		segments := n.splitBySpeaker(line)
		if len(segments) == 0 {
			// Continuation of the previous speaker's turn
			if len(turns) > 0 {
				last := &turns[len(turns)-1]
				last.Text = strings.TrimSpace(last.Text + " " + line)
			} else {
				turns = appendTurn(turns, "", line, &order)
			}
			continue
		}

		for _, seg := range segments {
			turns = appendTurn(turns, seg.speaker, seg.text, &order)
		}
	}

	if len(turns) == 0 {
		return nil, uerrors.ErrEmptyTranscript
	}
	return turns, nil
}

// Stats summarizes a parsed turn sequence.
func (n *Normalizer) Stats(turns []entities.SpeakerTurn) entities.TranscriptStats {
	words := 0
	seen := make(map[string]bool)
	for _, turn := range turns {
		words += turn.Words()
		if turn.Speaker != "" {
			seen[turn.Speaker] = true
		}
	}

	speakers := make([]string, 0, len(seen))
	for s := range seen {
		speakers = append(speakers, s)
	}
	sort.Strings(speakers)

	return entities.TranscriptStats{
		TotalTurns:   len(turns),
		TotalWords:   words,
		SpeakerCount: len(speakers),
		Speakers:     speakers,
	}
}

type segment struct {
	speaker string
	text    string
}

// splitBySpeaker splits a line at every speaker label occurrence. A label may
// appear mid-line ("John: ... Sarah: ..."), common in single-line transcripts.
func (n *Normalizer) splitBySpeaker(line string) []segment {
	matches := n.speakerPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return nil
	}

	var segments []segment
	// Text before the first label belongs to no one; it is rare and dropped
	// only when empty, otherwise kept as an unattributed segment.
	if lead := strings.TrimSpace(line[:matches[0][0]]); lead != "" {
		segments = append(segments, segment{speaker: "", text: lead})
	}

	for i, m := range matches {
		speaker := line[m[2]:m[3]]
		end := len(line)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		text := strings.TrimSpace(line[m[1]:end])
		segments = append(segments, segment{speaker: speaker, text: text})
	}
	return segments
}

func (n *Normalizer) cleanLine(line string) string {
	line = n.timestampPattern.ReplaceAllString(line, "")
	for _, p := range n.noisePatterns {
		line = p.ReplaceAllString(line, "")
	}
	line = strings.Join(strings.Fields(line), " ")
	return strings.TrimSpace(line)
}

func appendTurn(turns []entities.SpeakerTurn, speaker, text string, order *int) []entities.SpeakerTurn {
	text = strings.TrimSpace(text)
	if text == "" {
		return turns
	}
	turns = append(turns, entities.SpeakerTurn{
		Speaker: speaker,
		Text:    text,
		Order:   *order,
	})
	*order++
	return turns
}
