package presenter

import (
	minutesdto "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// ToMinutesResponse converts a MinutesRecord to its API response shape. The
// stored JSON payload decodes lazily; a record that fails to decode still
// returns its metadata.
func ToMinutesResponse(r *entities.MinutesRecord, cached bool) *minutesdto.MinutesResponse {
	if r == nil {
		return nil
	}

	response := &minutesdto.MinutesResponse{
		ID:               r.ID.String(),
		Title:            r.Title,
		ChunkCount:       r.ChunkCount,
		WordCount:        r.WordCount,
		ModelUsed:        r.ModelUsed,
		ProcessingTimeMs: r.ProcessingTime,
		Cached:           cached,
		CreatedAt:        r.CreatedAt,
	}

	if m, err := r.GetMinutes(); err == nil {
		response.Minutes = m
	}

	return response
}

// ToListResponse converts records to a paginated list response.
func ToListResponse(records []*entities.MinutesRecord, total int64, page, pageSize int) *minutesdto.ListResponse {
	responses := make([]*minutesdto.MinutesResponse, len(records))
	for i, r := range records {
		responses[i] = ToMinutesResponse(r, false)
		// List entries stay light; the full payload comes from GET /:id
		responses[i].Minutes = nil
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &minutesdto.ListResponse{
		Records:    responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
