package service

import (
	"FlowVault/internal/repo"
	"FlowVault/internal/storage"
	"FlowVault/model"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

var integrationOnce sync.Once

// requireBackends initializes MySQL, Redis and MinIO against the test
// database and bucket. Tests calling it are skipped unless
// FLOWVAULT_IT=1 since they need real backing services.
func requireBackends(t *testing.T) {
	t.Helper()
	if os.Getenv("FLOWVAULT_IT") != "1" {
		t.Skip("set FLOWVAULT_IT=1 to run integration tests")
	}
	integrationOnce.Do(func() {
		repo.InitMysqlTest()
		repo.InitRedis()
		storage.InitMinioTest()
	})
}

func newTestUser(t *testing.T) *model.User {
	t.Helper()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     uuid.NewString() + "@test.local",
		Name:      "tester",
		Password:  "x",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		repo.Db.Where("user_id = ?", user.ID).Delete(&model.FileRecord{})
		repo.Db.Where("id = ?", user.ID).Delete(&model.User{})
	})
	return user
}

func TestIngestResolveReconcile(t *testing.T) {
	requireBackends(t)
	ctx := context.Background()
	user := newTestUser(t)

	record, err := IngestFile(ctx, user.ID, "hello.txt", "text/plain", "1h", []byte("hello world"))
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	t.Cleanup(func() {
		_ = RemoveStoredObject(ctx, record.StorageKey)
	})

	byID, err := ResolveFile(record.ID, user.ID)
	if err != nil {
		t.Fatalf("resolve by id: %v", err)
	}
	if byID.StorageKey != record.StorageKey {
		t.Errorf("resolve by id got %q, want %q", byID.StorageKey, record.StorageKey)
	}

	byKey, err := ResolveFile(record.StorageKey, user.ID)
	if err != nil {
		t.Fatalf("resolve by storage key: %v", err)
	}
	if byKey.ID != record.ID {
		t.Errorf("resolve by key got %q, want %q", byKey.ID, record.ID)
	}

	byName, err := ResolveFile("hello.txt", user.ID)
	if err != nil {
		t.Fatalf("resolve by original name: %v", err)
	}
	if byName.ID != record.ID {
		t.Errorf("resolve by name got %q, want %q", byName.ID, record.ID)
	}

	if err := Reconcile(ctx, record); err != nil {
		t.Fatalf("Reconcile on live record: %v", err)
	}
}

func TestReconcileMissingObject(t *testing.T) {
	requireBackends(t)
	ctx := context.Background()
	user := newTestUser(t)

	record, err := IngestFile(ctx, user.ID, "gone.txt", "text/plain", "", []byte("soon gone"))
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}

	if err := RemoveStoredObject(ctx, record.StorageKey); err != nil {
		t.Fatalf("remove object: %v", err)
	}

	err = Reconcile(ctx, record)
	svcErr := AsServiceError(err)
	if svcErr.Code != "FILE_MISSING_IN_STORAGE" {
		t.Fatalf("code = %q, want FILE_MISSING_IN_STORAGE", svcErr.Code)
	}

	if _, err := ResolveFile(record.ID, user.ID); AsServiceError(err).Code != "FILE_NOT_FOUND" {
		t.Error("retired record should no longer resolve")
	}
}

func TestCleanupExpiredRecords(t *testing.T) {
	requireBackends(t)
	ctx := context.Background()
	user := newTestUser(t)

	record, err := IngestFile(ctx, user.ID, "expiring.txt", "text/plain", "1h", []byte("short lived"))
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}

	past := time.Now().Add(-time.Minute)
	if err := repo.Db.Model(&model.FileRecord{}).
		Where("id = ?", record.ID).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate expiry: %v", err)
	}

	summary, err := CleanupExpiredRecords(ctx)
	if err != nil {
		t.Fatalf("CleanupExpiredRecords: %v", err)
	}
	if summary.ProcessedCount < 1 {
		t.Errorf("processed = %d, want at least 1", summary.ProcessedCount)
	}
	if summary.DeletedCount < 1 {
		t.Errorf("deleted = %d, want at least 1", summary.DeletedCount)
	}

	if _, err := ResolveFile(record.ID, user.ID); AsServiceError(err).Code != "FILE_NOT_FOUND" {
		t.Error("swept record should no longer resolve")
	}
	if _, err := StatStoredObject(ctx, record.StorageKey); !storage.IsNotFound(err) {
		t.Errorf("swept object should be gone, got %v", err)
	}
}

func TestListFilesExcludesExpiredRecords(t *testing.T) {
	requireBackends(t)
	ctx := context.Background()
	user := newTestUser(t)

	live, err := IngestFile(ctx, user.ID, "keep.txt", "text/plain", "", []byte("keep me"))
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	expired, err := IngestFile(ctx, user.ID, "stale.txt", "text/plain", "1h", []byte("past due"))
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	t.Cleanup(func() {
		_ = RemoveStoredObject(ctx, live.StorageKey)
		_ = RemoveStoredObject(ctx, expired.StorageKey)
	})

	// Expired but not yet swept: the list must not show it.
	past := time.Now().Add(-time.Minute)
	if err := repo.Db.Model(&model.FileRecord{}).
		Where("id = ?", expired.ID).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate expiry: %v", err)
	}

	listing, err := ListFiles(ctx, user.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if listing.Pagination.TotalCount != 1 {
		t.Errorf("total = %d, want 1", listing.Pagination.TotalCount)
	}
	for _, view := range listing.Files {
		if view.ID == expired.ID {
			t.Error("expired record leaked into the file listing")
		}
	}
}

func TestResolverForeignRecordMasked(t *testing.T) {
	requireBackends(t)
	ctx := context.Background()
	owner := newTestUser(t)
	other := newTestUser(t)

	record, err := IngestFile(ctx, owner.ID, "mine.txt", "text/plain", "", []byte("private"))
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	t.Cleanup(func() {
		_ = RemoveStoredObject(ctx, record.StorageKey)
	})

	if _, err := ResolveFile(record.ID, other.ID); AsServiceError(err).Code != "FILE_NOT_FOUND" {
		t.Error("foreign record must be masked as FILE_NOT_FOUND")
	}

	if _, err := ResolveFileStrict(record.ID, other.ID); AsServiceError(err).Code != "ACCESS_DENIED" {
		t.Error("download resolution of a foreign UUID must report ACCESS_DENIED")
	}

	if _, err := ResolveFileStrict(record.StorageKey, other.ID); AsServiceError(err).Code != "FILE_NOT_FOUND" {
		t.Error("foreign storage key must stay masked even for downloads")
	}
}
