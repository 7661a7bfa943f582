package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MinutesRepository handles minutes record data operations
type MinutesRepository struct {
	db *gorm.DB
}

// NewMinutesRepository creates a new minutes repository
func NewMinutesRepository(db *gorm.DB) *MinutesRepository {
	return &MinutesRepository{db: db}
}

// Create persists a new minutes record
func (r *MinutesRepository) Create(ctx context.Context, record *entities.MinutesRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID retrieves a minutes record by ID
func (r *MinutesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MinutesRecord, error) {
	var record entities.MinutesRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetByTranscriptHash retrieves the latest record generated for a transcript
func (r *MinutesRepository) GetByTranscriptHash(ctx context.Context, hash string) (*entities.MinutesRecord, error) {
	var record entities.MinutesRecord
	err := r.db.WithContext(ctx).
		Where("transcript_hash = ?", hash).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// List returns records ordered by creation time, newest first
func (r *MinutesRepository) List(ctx context.Context, limit, offset int) ([]*entities.MinutesRecord, int64, error) {
	var records []*entities.MinutesRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&entities.MinutesRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Delete removes a minutes record
func (r *MinutesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MinutesRecord{}).Error
}
