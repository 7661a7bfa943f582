package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MinutesRepository defines persistence operations for generated minutes.
// Implementations return (nil, nil) when a record does not exist.
type MinutesRepository interface {
	Create(ctx context.Context, record *entities.MinutesRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MinutesRecord, error)
	GetByTranscriptHash(ctx context.Context, hash string) (*entities.MinutesRecord, error)
	List(ctx context.Context, limit, offset int) ([]*entities.MinutesRecord, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
