package service

import (
	"FlowVault/config"
	"FlowVault/internal/repo"
	"FlowVault/model"
	"FlowVault/utils"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxStorageKeyBase = 255

// BuildStorageKey derives the unique object address for an upload.
// The UUID prefix keeps keys collision-free, the sanitized base keeps
// them readable in the bucket.
func BuildStorageKey(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	base := strings.TrimSuffix(originalName, path.Ext(originalName))
	return uuid.NewString() + "-" + utils.SanitizeStorageName(base, maxStorageKeyBase) + ext
}

// ValidateUpload checks name, extension and declared size before any
// bytes reach the store.
func ValidateUpload(originalName string, size int64) (string, error) {
	if originalName == "" || size == 0 {
		return "", ErrNoFile
	}
	if len(originalName) > maxStorageKeyBase {
		return "", ErrNameTooLong
	}
	if strings.ContainsAny(originalName, "/\\\x00") {
		return "", ErrInvalidName
	}
	ext := strings.ToLower(path.Ext(originalName))
	if !extensionAllowed(ext) {
		return "", ErrInvalidFileType
	}
	if size > config.UploadConfigInstance.MaxFileSize {
		return "", ErrFileTooLarge
	}
	return ext, nil
}

func extensionAllowed(ext string) bool {
	if ext == "" {
		return false
	}
	for _, allowed := range config.UploadConfigInstance.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// IngestFile runs the full upload pipeline: validate, write the
// object, then record it in the catalog. A catalog failure removes
// the freshly written object so no orphan survives the request.
func IngestFile(
	ctx context.Context,
	userID string,
	originalName string,
	contentType string,
	duration string,
	data []byte,
) (*model.FileRecord, error) {
	ext, err := ValidateUpload(originalName, int64(len(data)))
	if err != nil {
		return nil, err
	}
	duration, err = NormalizeDuration(duration)
	if err != nil {
		return nil, err
	}

	storageKey := BuildStorageKey(originalName)
	size := int64(len(data))
	now := time.Now()
	expiresAt := ExpiryFor(duration, now)

	if err := UploadObject(
		ctx,
		storageKey,
		bytes.NewReader(data),
		size,
		contentType,
		ObjectAttrs{
			UserID:       userID,
			OriginalName: originalName,
			Duration:     duration,
			UploadedAt:   now,
			ExpiresAt:    expiresAt,
		},
	); err != nil {
		return nil, ErrUploadFailed.Wrap(err)
	}

	record := &model.FileRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		OriginalName: originalName,
		StorageKey:   storageKey,
		Size:         size,
		MimeType:     firstNonEmpty(contentType, GetContentType(originalName)),
		Extension:    ext,
		UploadedAt:   now,
		ExpiresAt:    expiresAt,
		Duration:     duration,
		DownloadURL:  DownloadPath(storageKey),
	}

	if err := repo.Db.Create(record).Error; err != nil {
		if removeErr := RemoveStoredObject(ctx, storageKey); removeErr != nil {
			log.Println("orphan object cleanup failed:", storageKey, removeErr)
		}
		return nil, ErrMetadataFailed.Wrap(err)
	}
	return record, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ReadLimited buffers a stream, failing once it exceeds the limit so
// oversize uploads abort before reaching the store.
func ReadLimited(reader io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, 32*1024)
	for {
		n, err := reader.Read(chunk)
		if n > 0 {
			if int64(buf.Len())+int64(n) > limit {
				return nil, ErrFileTooLarge
			}
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
	}
}
