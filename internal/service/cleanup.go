package service

import (
	"FlowVault/config"
	"FlowVault/internal/dto"
	"FlowVault/internal/repo"
	"FlowVault/internal/storage"
	"FlowVault/model"
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// CleanupExpiredRecords sweeps the catalog for expired records,
// deletes their objects, and retires the rows. Object deletion is
// best effort per record; the rows are retired either way so an
// expired file never resurfaces through the API. Expired upload
// sessions and file shares are purged in the same pass.
func CleanupExpiredRecords(ctx context.Context) (dto.CleanupSummary, error) {
	now := time.Now()
	summary := dto.CleanupSummary{}

	var expired []model.FileRecord
	if err := repo.Db.Where("is_deleted = ? AND expires_at IS NOT NULL AND expires_at <= ?", false, now).
		Find(&expired).Error; err != nil {
		return summary, ErrInternal.Wrap(err)
	}
	summary.ProcessedCount = len(expired)

	if len(expired) > 0 {
		concurrency := config.AppConfig.SweepConcurrency
		if concurrency <= 0 {
			concurrency = 1
		}
		burst := config.AppConfig.SweepDeleteBurst
		if burst <= 0 {
			burst = 1
		}
		var limiter *rate.Limiter
		if config.AppConfig.SweepDeleteRate <= 0 {
			limiter = rate.NewLimiter(rate.Inf, burst)
		} else {
			limiter = rate.NewLimiter(rate.Limit(config.AppConfig.SweepDeleteRate), burst)
		}

		var errorCount int64
		sem := make(chan struct{}, concurrency)
		var wg sync.WaitGroup
		for i := range expired {
			record := expired[i]
			if err := limiter.Wait(ctx); err != nil {
				atomic.AddInt64(&errorCount, int64(len(expired)-i))
				break
			}
			sem <- struct{}{}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				if err := RemoveStoredObject(ctx, record.StorageKey); err != nil && !storage.IsNotFound(err) {
					log.Println("sweep object delete failed:", record.StorageKey, err)
					atomic.AddInt64(&errorCount, 1)
				}
			}()
		}
		wg.Wait()
		summary.ErrorCount = int(errorCount)

		ids := make([]string, 0, len(expired))
		for i := range expired {
			ids = append(ids, expired[i].ID)
		}
		result := repo.Db.Model(&model.FileRecord{}).
			Where("id IN ?", ids).
			Update("is_deleted", true)
		if result.Error != nil {
			return summary, ErrInternal.Wrap(result.Error)
		}
		summary.DeletedCount = int(result.RowsAffected)
	}

	if err := repo.Db.Where("status = ? OR expires_at <= ?", model.UploadSessionInactive, now).
		Delete(&model.UploadSession{}).Error; err != nil {
		log.Println("sweep upload session purge failed:", err)
		summary.ErrorCount++
	}
	if err := repo.Db.Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Delete(&model.FileShare{}).Error; err != nil {
		log.Println("sweep file share purge failed:", err)
		summary.ErrorCount++
	}

	return summary, nil
}

// CleanupWithLock runs a sweep under the shared Redis lock so
// concurrent triggers cannot race each other.
func CleanupWithLock(ctx context.Context) (dto.CleanupSummary, error) {
	lock := repo.NewRedisLock(repo.Redis, "vault:cleanup:lock", config.AppConfig.SweepLockTTL)
	if err := lock.Lock(ctx); err != nil {
		return dto.CleanupSummary{}, ErrInternal.Wrap(err)
	}
	defer func() {
		if err := lock.Unlock(ctx); err != nil {
			log.Println("cleanup lock release failed:", err)
		}
	}()
	return CleanupExpiredRecords(ctx)
}
