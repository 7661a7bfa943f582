package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MinutesRecord is the stored form of generated meeting minutes.
type MinutesRecord struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TranscriptHash string         `json:"transcript_hash" gorm:"type:varchar(64);index"`
	Title          string         `json:"title" gorm:"type:varchar(500);not null"`
	Summary        string         `json:"summary" gorm:"type:text"`
	Minutes        datatypes.JSON `json:"minutes" gorm:"type:jsonb"`
	ChunkCount     int            `json:"chunk_count,omitempty"`
	WordCount      int            `json:"word_count,omitempty"`
	ModelUsed      string         `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	ProcessingTime int            `json:"processing_time,omitempty"` // in milliseconds
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for MinutesRecord
func (MinutesRecord) TableName() string {
	return "minutes_records"
}

// NewMinutesRecord creates a new MinutesRecord entity
func NewMinutesRecord(transcriptHash, title string) *MinutesRecord {
	return &MinutesRecord{
		ID:             uuid.New(),
		TranscriptHash: transcriptHash,
		Title:          title,
	}
}

// SetMinutes stores the aggregate as the record's JSON payload.
func (r *MinutesRecord) SetMinutes(m *MeetingMinutes) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode minutes: %w", err)
	}
	r.Minutes = datatypes.JSON(data)
	r.Summary = m.Summary
	return nil
}

// GetMinutes decodes the stored JSON payload back into the aggregate.
func (r *MinutesRecord) GetMinutes() (*MeetingMinutes, error) {
	var m MeetingMinutes
	if err := json.Unmarshal(r.Minutes, &m); err != nil {
		return nil, fmt.Errorf("failed to decode minutes: %w", err)
	}
	return &m, nil
}
