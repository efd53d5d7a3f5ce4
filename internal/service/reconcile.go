package service

import (
	"FlowVault/internal/repo"
	"FlowVault/internal/storage"
	"FlowVault/model"
	"context"
	"log"
	"time"
)

// Reconcile verifies that a resolved record is still servable. An
// expired record is retired on sight, a record whose object is gone
// from the store has its catalog row retired to match. Ambiguous
// store failures leave the catalog untouched.
func Reconcile(ctx context.Context, record *model.FileRecord) error {
	if IsExpired(record.ExpiresAt, time.Now()) {
		retireRecord(record.ID)
		if err := RemoveStoredObject(ctx, record.StorageKey); err != nil && !storage.IsNotFound(err) {
			log.Println("expired object delete failed:", record.StorageKey, err)
		}
		return ErrFileExpired
	}

	_, err := StatStoredObject(ctx, record.StorageKey)
	if err == nil {
		return nil
	}
	if storage.IsNotFound(err) {
		retireRecord(record.ID)
		return ErrFileMissingInStorage
	}
	return ErrStoreUnavailable.Wrap(err)
}

// retireRecord soft-deletes a catalog row. The storage key is never
// reused, so the row stays as tombstone.
func retireRecord(recordID string) {
	if err := repo.Db.Model(&model.FileRecord{}).
		Where("id = ?", recordID).
		Update("is_deleted", true).Error; err != nil {
		log.Println("retire record failed:", recordID, err)
	}
}
