package ai

import (
	"fmt"
	"strings"
)

// BuildChunkPrompt builds the prompt sent to every provider for one chunk.
// The JSON shape must match what summarizer.Parser expects.
func BuildChunkPrompt(text, overlap string) string {
	var b strings.Builder

	b.WriteString("Please analyze this meeting transcript segment and extract structured information.\n\n")
	b.WriteString("Return the following JSON and nothing else:\n")
	b.WriteString("{\n")
	b.WriteString(`  "summary": "Brief 2-3 sentence summary of this segment",` + "\n")
	b.WriteString(`  "key_points": ["List of 2-4 key discussion points"],` + "\n")
	b.WriteString(`  "decisions": ["List of concrete decisions made"],` + "\n")
	b.WriteString(`  "topics": ["List of main topics covered"]` + "\n")
	b.WriteString("}\n\n")
	b.WriteString("Guidelines:\n")
	b.WriteString("- Only include information explicitly mentioned in the transcript\n")
	b.WriteString("- Decisions should be concrete outcomes, not just discussions\n")
	b.WriteString("- Use exact names when mentioned\n")
	b.WriteString("- Focus on substantive content, not casual remarks\n\n")

	if overlap != "" {
		fmt.Fprintf(&b, "Previous context for continuity:\n%s\n\n", overlap)
	}

	fmt.Fprintf(&b, "Transcript segment to analyze:\n%s\n", text)

	return b.String()
}
