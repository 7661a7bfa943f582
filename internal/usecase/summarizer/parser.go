package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Parser handles parsing and validation of provider JSON responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

type summaryPayload struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Decisions []string `json:"decisions"`
	Topics    []string `json:"topics"`
}

// ParseChunkSummary parses the JSON a provider returns into a ChunkSummary.
// Providers tend to wrap JSON in markdown code fences; those are stripped
// before decoding.
func (p *Parser) ParseChunkSummary(jsonString string) (*entities.ChunkSummary, error) {
	jsonString = extractJSON(jsonString)

	var payload summaryPayload
	if err := json.Unmarshal([]byte(jsonString), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if payload.Summary == "" {
		return nil, fmt.Errorf("missing summary in response")
	}

	// Key points and decisions can legitimately be empty; just ensure the
	// slices are initialized.
	if payload.KeyPoints == nil {
		payload.KeyPoints = make([]string, 0)
	}
	if payload.Decisions == nil {
		payload.Decisions = make([]string, 0)
	}
	if payload.Topics == nil {
		payload.Topics = make([]string, 0)
	}

	return &entities.ChunkSummary{
		Summary:   payload.Summary,
		KeyPoints: payload.KeyPoints,
		Decisions: payload.Decisions,
		Topics:    payload.Topics,
	}, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	// Some providers prepend commentary; keep only the outermost object
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			content = content[start : end+1]
		}
	}

	return strings.TrimSpace(content)
}
