package service

import (
	"FlowVault/config"
	"FlowVault/internal/dto"
	"FlowVault/internal/repo"
	"FlowVault/internal/storage"
	"FlowVault/model"
	"FlowVault/utils"
	"context"
	"log"
	"strings"
	"time"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	fileListCacheTTL = 30 * time.Second
)

// ClampPageLimit normalizes the requested page size.
func ClampPageLimit(limit int) int {
	if limit < 1 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

// ClampPage normalizes the requested page number against the total.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// TotalPages computes the page count for a total and limit.
func TotalPages(totalCount int64, limit int) int {
	if totalCount <= 0 {
		return 0
	}
	pages := totalCount / int64(limit)
	if totalCount%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// ToFileView maps a catalog record to its public shape. The stored
// download path is relative; it is joined with the service base URL
// per request.
func ToFileView(record *model.FileRecord) dto.FileView {
	return dto.FileView{
		ID:           record.ID,
		FileName:     record.StorageKey,
		OriginalName: record.OriginalName,
		Size:         record.Size,
		MimeType:     record.MimeType,
		Extension:    record.Extension,
		UploadedAt:   record.UploadedAt,
		ExpiresAt:    record.ExpiresAt,
		Duration:     record.Duration,
		DownloadURL:  absoluteDownloadURL(record),
	}
}

func absoluteDownloadURL(record *model.FileRecord) string {
	download := record.DownloadURL
	if download == "" {
		download = DownloadPath(record.StorageKey)
	}
	if !strings.HasPrefix(download, "/") {
		return download
	}
	base := strings.TrimRight(config.AppConfig.AppBaseURL, "/")
	if base == "" {
		return download
	}
	return base + download
}

// ListFiles returns one page of the caller's live records, newest
// first. Pages are served from the Redis cache when warm.
func ListFiles(ctx context.Context, userID string, page, limit int) (*dto.FileListResponse, error) {
	limit = ClampPageLimit(limit)
	now := time.Now()

	var totalCount int64
	if err := repo.Db.Model(&model.FileRecord{}).
		Where("user_id = ? AND is_deleted = ? AND (expires_at IS NULL OR expires_at > ?)", userID, false, now).
		Count(&totalCount).Error; err != nil {
		return nil, ErrInternal.Wrap(err)
	}

	totalPages := TotalPages(totalCount, limit)
	page = ClampPage(page, totalPages)

	response := &dto.FileListResponse{
		Files: []dto.FileView{},
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			TotalCount: totalCount,
			TotalPages: totalPages,
		},
	}
	if totalCount == 0 {
		return response, nil
	}

	var records []model.FileRecord
	if cached, ok := utils.GetFileListFromCache(ctx, userID, page, limit); ok && cached.Total == totalCount {
		records = cached.Files
	} else {
		if err := repo.Db.Where("user_id = ? AND is_deleted = ? AND (expires_at IS NULL OR expires_at > ?)", userID, false, now).
			Order("uploaded_at DESC").
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&records).Error; err != nil {
			return nil, ErrInternal.Wrap(err)
		}
		if cacheErr := utils.SetFileListToCache(ctx, userID, page, limit, &utils.FileListCache{
			Files: records,
			Total: totalCount,
		}, fileListCacheTTL); cacheErr != nil {
			log.Println("file list cache write failed:", cacheErr)
		}
	}

	for i := range records {
		response.Files = append(response.Files, ToFileView(&records[i]))
	}
	return response, nil
}

// GetFile resolves an identifier and verifies the record is still
// servable before returning it.
func GetFile(ctx context.Context, identifier, userID string) (*model.FileRecord, error) {
	record, err := ResolveFile(identifier, userID)
	if err != nil {
		return nil, err
	}
	if err := Reconcile(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteFile removes the object first and only then retires the
// catalog row, so an ambiguous store failure leaves the record
// intact for a later retry.
func DeleteFile(ctx context.Context, identifier, userID string) error {
	record, err := ResolveFile(identifier, userID)
	if err != nil {
		return err
	}

	if err := RemoveStoredObject(ctx, record.StorageKey); err != nil && !storage.IsNotFound(err) {
		return ErrInternal.Wrap(err)
	}
	retireRecord(record.ID)

	if err := utils.InvalidateFileListCache(ctx, userID); err != nil {
		log.Println("file list cache invalidate failed:", err)
	}
	return nil
}
