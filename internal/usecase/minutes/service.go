package minutes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
)

const cacheTTL = 24 * time.Hour

// ObjectStore reads transcripts from and writes rendered reports to object
// storage.
type ObjectStore interface {
	GetText(ctx context.Context, objectName string) (string, error)
	UploadText(ctx context.Context, objectName, content, contentType string) error
}

// Service orchestrates minutes generation around the pipeline: transcript
// hashing for idempotent re-runs, persistence and cache warm-up.
type Service struct {
	pipeline pipeline.Service
	repo     repositories.MinutesRepository
	cache    cache.Store
	objects  ObjectStore
	logger   *zap.Logger
}

// Output is the result of a generate call.
type Output struct {
	Record  *entities.MinutesRecord
	Minutes *entities.MeetingMinutes
	Stats   entities.TranscriptStats
	Cached  bool
}

// NewService creates the minutes service. objects may be nil when object
// storage is not configured.
func NewService(p pipeline.Service, repo repositories.MinutesRepository, store cache.Store, objects ObjectStore, logger *zap.Logger) *Service {
	return &Service{
		pipeline: p,
		repo:     repo,
		cache:    store,
		objects:  objects,
		logger:   logger,
	}
}

// Generate runs the pipeline for a raw transcript. A transcript already
// processed (same content hash) returns the stored record without re-running
// the pipeline.
func (s *Service) Generate(ctx context.Context, title, transcript string) (*Output, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, errors.ErrTranscriptUnusable(uerrors.ErrEmptyTranscript)
	}
	if title == "" {
		title = "Meeting Minutes"
	}

	hash := hashTranscript(transcript)

	existing, err := s.repo.GetByTranscriptHash(ctx, hash)
	if err != nil {
		return nil, errors.ErrDBQueryFailed(err)
	}
	if existing != nil {
		m, err := existing.GetMinutes()
		if err != nil {
			return nil, errors.ErrInternal(err)
		}
		s.logger.Info("minutes served from previous run",
			zap.String("record_id", existing.ID.String()),
			zap.String("transcript_hash", hash),
		)
		return &Output{Record: existing, Minutes: m, Cached: true}, nil
	}

	result, err := s.pipeline.ProcessTranscript(ctx, title, transcript)
	if err != nil {
		if stdErrors.Is(err, uerrors.ErrEmptyTranscript) {
			return nil, errors.ErrTranscriptUnusable(err)
		}
		return nil, errors.ErrProcessingFailed(err)
	}

	record := entities.NewMinutesRecord(hash, title)
	record.ChunkCount = result.ChunkCount
	record.WordCount = result.Stats.TotalWords
	record.ModelUsed = result.ModelUsed
	record.ProcessingTime = int(result.ProcessingTime.Milliseconds())
	if err := record.SetMinutes(result.Minutes); err != nil {
		return nil, errors.ErrInternal(err)
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, errors.ErrDBQueryFailed(err)
	}
	s.warmCache(ctx, record)

	return &Output{
		Record:  record,
		Minutes: result.Minutes,
		Stats:   result.Stats,
	}, nil
}

// GenerateFromStorage fetches a transcript object from storage and generates
// minutes for it.
func (s *Service) GenerateFromStorage(ctx context.Context, title, objectKey string) (*Output, error) {
	if s.objects == nil {
		return nil, errors.ErrStorageFailed("get", stdErrors.New("object storage not configured"))
	}

	transcript, err := s.objects.GetText(ctx, objectKey)
	if err != nil {
		return nil, errors.ErrStorageFailed("get", err)
	}

	return s.Generate(ctx, title, transcript)
}

// StoreReport uploads a rendered report to object storage under
// reports/<id>.<ext> and returns the object key.
func (s *Service) StoreReport(ctx context.Context, id, format, content string) (string, error) {
	if s.objects == nil {
		return "", errors.ErrStorageFailed("put", stdErrors.New("object storage not configured"))
	}

	ext, contentType := reportObjectMeta(format)
	objectKey := "reports/" + id + ext
	if err := s.objects.UploadText(ctx, objectKey, content, contentType); err != nil {
		return "", errors.ErrStorageFailed("put", err)
	}

	s.logger.Info("report stored",
		zap.String("record_id", id),
		zap.String("object_key", objectKey),
	)
	return objectKey, nil
}

func reportObjectMeta(format string) (ext, contentType string) {
	switch format {
	case "html":
		return ".html", "text/html; charset=utf-8"
	case "text":
		return ".txt", "text/plain; charset=utf-8"
	default:
		return ".md", "text/markdown; charset=utf-8"
	}
}

// Get retrieves a stored minutes record by its ID.
func (s *Service) Get(ctx context.Context, id string) (*entities.MinutesRecord, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrInvalidArgument("invalid minutes id")
	}

	if cached, ok := s.fromCache(ctx, recordID); ok {
		return cached, nil
	}

	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed(err)
	}
	if record == nil {
		return nil, errors.ErrMinutesNotFound(id)
	}

	s.warmCache(ctx, record)
	return record, nil
}

// List returns stored records, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entities.MinutesRecord, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.ErrDBQueryFailed(err)
	}
	return records, total, nil
}

func (s *Service) warmCache(ctx context.Context, record *entities.MinutesRecord) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(record.ID), string(payload), cacheTTL); err != nil {
		// Cache failures degrade to repository reads
		s.logger.Warn("cache write failed", zap.Error(err))
	}
}

func (s *Service) fromCache(ctx context.Context, id uuid.UUID) (*entities.MinutesRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, ok, err := s.cache.Get(ctx, cacheKey(id))
	if err != nil {
		s.logger.Warn("cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var record entities.MinutesRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, false
	}
	return &record, true
}

func cacheKey(id uuid.UUID) string {
	return "minutes:" + id.String()
}

func hashTranscript(transcript string) string {
	sum := sha256.Sum256([]byte(transcript))
	return hex.EncodeToString(sum[:])
}
