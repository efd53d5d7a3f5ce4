package service

import (
	"FlowVault/config"
	"FlowVault/internal/storage"
	"FlowVault/utils"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/net/context"
)

// ObjectAttrs are the catalog attributes mirrored onto the stored
// object so a row lost from the catalog can be reconstructed from the
// object alone.
type ObjectAttrs struct {
	UserID       string
	OriginalName string
	Duration     string
	UploadedAt   time.Time
	ExpiresAt    *time.Time
}

func objectMetadata(attrs ObjectAttrs) map[string]string {
	metadata := map[string]string{
		"user-id":       attrs.UserID,
		"original-name": attrs.OriginalName,
		"uploaded-at":   attrs.UploadedAt.UTC().Format(time.RFC3339),
	}
	if attrs.Duration != "" {
		metadata["duration"] = attrs.Duration
	}
	if attrs.ExpiresAt != nil {
		metadata["expires-at"] = attrs.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return metadata
}

// UploadObject writes an object under the record's storage key and
// attaches catalog attributes as object metadata.
func UploadObject(
	ctx context.Context,
	storageKey string,
	reader io.Reader,
	size int64,
	contentType string,
	attrs ObjectAttrs,
) error {
	if storage.Default == nil {
		return fmt.Errorf("storage not initialized")
	}
	if contentType == "" {
		contentType = GetContentType(attrs.OriginalName)
	}
	return storage.Default.PutObject(
		ctx,
		config.AppConfig.BucketName,
		storageKey,
		reader,
		size,
		storage.PutOptions{
			ContentType:  contentType,
			UserMetadata: objectMetadata(attrs),
		},
	)
}

// DownloadPath is the service-relative download route for a storage
// key. The catalog stores this form so rows never freeze a signed or
// host-specific URL.
func DownloadPath(storageKey string) string {
	return "/api/download/" + url.PathEscape(storageKey)
}

// StatStoredObject checks object presence by storage key.
func StatStoredObject(ctx context.Context, storageKey string) (storage.ObjectInfo, error) {
	if storage.Default == nil {
		return storage.ObjectInfo{}, fmt.Errorf("storage not initialized")
	}
	return storage.Default.StatObject(ctx, config.AppConfig.BucketName, storageKey)
}

// DownloadObject opens an object by storage key.
func DownloadObject(ctx context.Context, storageKey string) (io.ReadCloser, *storage.ObjectInfo, error) {
	if storageKey == "" {
		return nil, nil, fmt.Errorf("object name missing")
	}
	if storage.Default == nil {
		return nil, nil, fmt.Errorf("storage not initialized")
	}
	object, info, err := storage.Default.GetObject(ctx, config.AppConfig.BucketName, storageKey)
	if err != nil {
		return nil, nil, err
	}
	return object, &info, nil
}

// RemoveStoredObject deletes an object by storage key.
func RemoveStoredObject(ctx context.Context, storageKey string) error {
	if storage.Default == nil {
		return fmt.Errorf("storage not initialized")
	}
	return storage.Default.RemoveObject(ctx, config.AppConfig.BucketName, storageKey)
}

// PublicObjectURL returns the stable public URL for a storage key
// when a public base is configured, otherwise a presigned URL.
func PublicObjectURL(ctx context.Context, storageKey string) (string, error) {
	if base := config.AppConfig.PublicBaseURL; base != "" {
		return strings.TrimRight(base, "/") + "/" + url.PathEscape(storageKey), nil
	}
	if storage.Default == nil {
		return "", fmt.Errorf("storage not initialized")
	}
	return storage.Default.PresignedGetObject(
		ctx,
		config.AppConfig.BucketName,
		storageKey,
		config.AppConfig.SignedURLTTL,
	)
}

// SignedDownloadURL returns a presigned URL that forces an attachment
// download under the original file name.
func SignedDownloadURL(
	ctx context.Context,
	storageKey string,
	fileName string,
	expiry time.Duration,
) (string, error) {
	if storageKey == "" {
		return "", fmt.Errorf("object name missing")
	}
	if storage.Default == nil {
		return "", fmt.Errorf("storage not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	contentType := GetContentType(fileName)
	disposition := utils.AttachmentDisposition(fileName)
	url, err := storage.Default.PresignedGetObjectWithResponse(
		ctx,
		config.AppConfig.BucketName,
		storageKey,
		expiry,
		map[string]string{
			"response-content-type":        contentType,
			"response-content-disposition": disposition,
		},
	)
	if err == nil {
		return url, nil
	}
	return storage.Default.PresignedGetObject(ctx, config.AppConfig.BucketName, storageKey, expiry)
}

// SignedInlineURL returns a presigned URL suitable for in-browser
// preview of the object.
func SignedInlineURL(
	ctx context.Context,
	storageKey string,
	fileName string,
	expiry time.Duration,
) (string, error) {
	if storage.Default == nil {
		return "", fmt.Errorf("storage not initialized")
	}
	contentType := GetContentType(fileName)
	url, err := storage.Default.PresignedGetObjectWithResponse(
		ctx,
		config.AppConfig.BucketName,
		storageKey,
		expiry,
		map[string]string{
			"response-content-type":        contentType,
			"response-content-disposition": "inline",
		},
	)
	if err == nil {
		return url, nil
	}
	return storage.Default.PresignedGetObject(ctx, config.AppConfig.BucketName, storageKey, expiry)
}

// GetContentType returns content type by file extension.
func GetContentType(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".txt", ".md", ".csv", ".json", ".xml":
		return "text/plain; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".zip":
		return "application/zip"
	case ".tar":
		return "application/x-tar"
	case ".gz":
		return "application/gzip"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

// previewableTypes are the content types the preview endpoint will
// serve inline. Everything else must be downloaded.
var previewableTypes = map[string]struct{}{
	"image/jpeg":                {},
	"image/png":                 {},
	"image/gif":                 {},
	"image/webp":                {},
	"image/svg+xml":             {},
	"application/pdf":           {},
	"text/plain; charset=utf-8": {},
	"audio/mpeg":                {},
	"audio/wav":                 {},
	"video/mp4":                 {},
	"video/webm":                {},
}

// IsPreviewable reports whether a file can be previewed inline.
func IsPreviewable(fileName string) bool {
	_, ok := previewableTypes[GetContentType(fileName)]
	return ok
}
