package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound reports a definitive absence of the object. Transport
// or auth failures never map to it.
var ErrObjectNotFound = errors.New("object not found")

// PutOptions describes upload options for object storage.
type PutOptions struct {
	ContentType string
	// UserMetadata is attached to the object for out-of-band recovery.
	UserMetadata map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	UserMetadata map[string]string
}

// Store abstracts object storage operations. Every object is addressed
// by its storage key, used verbatim as the object name.
type Store interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts PutOptions) error
	GetObject(ctx context.Context, bucket, object string) (io.ReadCloser, ObjectInfo, error)
	StatObject(ctx context.Context, bucket, object string) (ObjectInfo, error)
	RemoveObject(ctx context.Context, bucket, object string) error
	PresignedGetObject(ctx context.Context, bucket, object string, expiry time.Duration) (string, error)
	PresignedGetObjectWithResponse(ctx context.Context, bucket, object string, expiry time.Duration, params map[string]string) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}

// Default is the main object store instance.
var Default Store

// DefaultTest is the test object store instance.
var DefaultTest Store

// IsNotFound reports whether err marks a definitively missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}
