package entities

import "strings"

// SpeakerTurn is a single attributed utterance in a normalized transcript.
// Order is the position of the turn in the original transcript and is
// significant; turns are immutable once produced by the normalizer.
type SpeakerTurn struct {
	Speaker string `json:"speaker,omitempty"` // empty when the turn could not be attributed
	Text    string `json:"text"`
	Order   int    `json:"order"`
}

// Words returns the number of whitespace-separated words in the turn.
func (t SpeakerTurn) Words() int {
	return len(strings.Fields(t.Text))
}

// Chunk is a bounded contiguous span of transcript turns processed as one
// summarization unit. OverlapContext carries trailing text from the previous
// chunk for summarization continuity only; it does not count toward WordCount.
type Chunk struct {
	ID             int           `json:"id"`
	Turns          []SpeakerTurn `json:"turns"`
	WordCount      int           `json:"word_count"`
	OverlapContext string        `json:"overlap_context,omitempty"`
}

// Text joins the chunk's turns into a single speaker-labelled string.
func (c Chunk) Text() string {
	var b strings.Builder
	for i, turn := range c.Turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		if turn.Speaker != "" {
			b.WriteString(turn.Speaker)
			b.WriteString(": ")
		}
		b.WriteString(turn.Text)
	}
	return b.String()
}

// Speakers returns the distinct non-empty speaker names in turn order.
func (c Chunk) Speakers() []string {
	seen := make(map[string]bool)
	var speakers []string
	for _, turn := range c.Turns {
		if turn.Speaker == "" || seen[turn.Speaker] {
			continue
		}
		seen[turn.Speaker] = true
		speakers = append(speakers, turn.Speaker)
	}
	return speakers
}

// TranscriptStats carries metadata about a parsed transcript, used for
// logging and API responses.
type TranscriptStats struct {
	TotalTurns   int      `json:"total_turns"`
	TotalWords   int      `json:"total_words"`
	SpeakerCount int      `json:"speaker_count"`
	Speakers     []string `json:"speakers"`
}
