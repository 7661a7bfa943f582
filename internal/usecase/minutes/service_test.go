package minutes

import (
	"context"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

type fakeRepo struct {
	byID   map[uuid.UUID]*entities.MinutesRecord
	byHash map[string]*entities.MinutesRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:   make(map[uuid.UUID]*entities.MinutesRecord),
		byHash: make(map[string]*entities.MinutesRecord),
	}
}

func (f *fakeRepo) Create(_ context.Context, record *entities.MinutesRecord) error {
	f.byID[record.ID] = record
	f.byHash[record.TranscriptHash] = record
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.MinutesRecord, error) {
	return f.byID[id], nil
}

func (f *fakeRepo) GetByTranscriptHash(_ context.Context, hash string) (*entities.MinutesRecord, error) {
	return f.byHash[hash], nil
}

func (f *fakeRepo) List(_ context.Context, _, _ int) ([]*entities.MinutesRecord, int64, error) {
	var out []*entities.MinutesRecord
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type fakeObjects struct {
	texts map[string]string
}

func (f *fakeObjects) GetText(_ context.Context, key string) (string, error) {
	text, ok := f.texts[key]
	if !ok {
		return "", stdErrors.New("object not found")
	}
	return text, nil
}

func (f *fakeObjects) UploadText(_ context.Context, key, content, _ string) error {
	if f.texts == nil {
		f.texts = make(map[string]string)
	}
	f.texts[key] = content
	return nil
}

const transcript = `John: Let's discuss the Q4 budget.
Sarah: I agree. I'll prepare a proposal by Friday.
Mike: We agreed to increase the engineering headcount next quarter.`

func newTestMinutesService(repo *fakeRepo, objects ObjectStore) *Service {
	cfg := config.DefaultPipelineConfig()
	cfg.SummarizeTimeout = time.Second
	p := pipeline.NewService(&cfg, nil, zap.NewNop())
	return NewService(p, repo, cache.NewMemoryStore(), objects, zap.NewNop())
}

func TestGenerate_PersistsRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestMinutesService(repo, nil)

	out, err := svc.Generate(context.Background(), "Budget Sync", transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Cached {
		t.Fatalf("first run must not be served from a previous record")
	}
	if out.Record == nil || out.Record.ID == uuid.Nil {
		t.Fatalf("record not created: %+v", out.Record)
	}
	if out.Record.WordCount == 0 || out.Record.ChunkCount == 0 {
		t.Fatalf("run metadata missing: %+v", out.Record)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(repo.byID))
	}

	stored, err := out.Record.GetMinutes()
	if err != nil {
		t.Fatalf("stored minutes do not decode: %v", err)
	}
	if stored.Title != "Budget Sync" {
		t.Fatalf("unexpected stored title %q", stored.Title)
	}
}

func TestGenerate_SameTranscriptReturnsExisting(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestMinutesService(repo, nil)

	first, err := svc.Generate(context.Background(), "Sync", transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Generate(context.Background(), "Sync", transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second run with identical transcript must reuse the record")
	}
	if second.Record.ID != first.Record.ID {
		t.Fatalf("expected same record, got %s and %s", first.Record.ID, second.Record.ID)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("duplicate record persisted")
	}
}

func TestGenerate_EmptyTranscript(t *testing.T) {
	svc := newTestMinutesService(newFakeRepo(), nil)

	_, err := svc.Generate(context.Background(), "Sync", "   ")
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_TRANSCRIPT_UNUSABLE {
		t.Fatalf("expected transcript unusable error, got %v", err)
	}
}

func TestGenerateFromStorage(t *testing.T) {
	objects := &fakeObjects{texts: map[string]string{"transcripts/sync.txt": transcript}}
	svc := newTestMinutesService(newFakeRepo(), objects)

	out, err := svc.GenerateFromStorage(context.Background(), "Sync", "transcripts/sync.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Record == nil {
		t.Fatalf("expected record from storage transcript")
	}

	_, err = svc.GenerateFromStorage(context.Background(), "Sync", "transcripts/missing.txt")
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_INTEGRATION_STORAGE_FAILED {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestStoreReport(t *testing.T) {
	objects := &fakeObjects{texts: map[string]string{}}
	svc := newTestMinutesService(newFakeRepo(), objects)

	id := uuid.NewString()
	key, err := svc.StoreReport(context.Background(), id, "html", "<h1>Sync</h1>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "reports/"+id+".html" {
		t.Fatalf("unexpected object key %q", key)
	}
	if objects.texts[key] != "<h1>Sync</h1>" {
		t.Fatalf("report content not stored")
	}

	noStore := newTestMinutesService(newFakeRepo(), nil)
	_, err = noStore.StoreReport(context.Background(), id, "markdown", "# Sync")
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_INTEGRATION_STORAGE_FAILED {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestGet(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestMinutesService(repo, nil)

	out, err := svc.Generate(context.Background(), "Sync", transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, err := svc.Get(context.Background(), out.Record.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID != out.Record.ID {
		t.Fatalf("wrong record returned")
	}

	_, err = svc.Get(context.Background(), "not-a-uuid")
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("expected invalid argument error, got %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.NewString())
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_MINUTES_NOT_FOUND {
		t.Fatalf("expected not found error, got %v", err)
	}
}
