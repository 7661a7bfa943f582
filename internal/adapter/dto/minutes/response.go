package minutes

import (
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MinutesResponse is the API shape of a generated minutes record.
type MinutesResponse struct {
	ID               string                   `json:"id"`
	Title            string                   `json:"title"`
	Minutes          *entities.MeetingMinutes `json:"minutes,omitempty"`
	ChunkCount       int                      `json:"chunk_count,omitempty"`
	WordCount        int                      `json:"word_count,omitempty"`
	ModelUsed        string                   `json:"model_used,omitempty"`
	ProcessingTimeMs int                      `json:"processing_time_ms,omitempty"`
	Cached           bool                     `json:"cached,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
}

// ListResponse is a paginated list of minutes records.
type ListResponse struct {
	Records    []*MinutesResponse `json:"records"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ReportResponse carries a rendered report document. ObjectKey is set when
// the report was also stored in object storage.
type ReportResponse struct {
	ID        string `json:"id"`
	Format    string `json:"format"`
	Report    string `json:"report"`
	ObjectKey string `json:"object_key,omitempty"`
}
