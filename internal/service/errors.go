package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries an HTTP status and a stable machine code alongside
// the human message. Handlers map it straight into the JSON envelope.
type Error struct {
	HTTPCode int
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(httpCode int, code, message string) *Error {
	return &Error{HTTPCode: httpCode, Code: code, Message: message}
}

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{HTTPCode: e.HTTPCode, Code: e.Code, Message: e.Message, Err: cause}
}

var (
	ErrUnauthenticated      = newError(http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
	ErrAccessDenied         = newError(http.StatusForbidden, "ACCESS_DENIED", "you do not own this file")
	ErrFileNotFound         = newError(http.StatusNotFound, "FILE_NOT_FOUND", "file not found")
	ErrFileExpired          = newError(http.StatusGone, "FILE_EXPIRED", "file has expired")
	ErrFileMissingInStorage = newError(http.StatusNotFound, "FILE_MISSING_IN_STORAGE", "file is missing from storage")
	ErrInvalidFileType      = newError(http.StatusBadRequest, "INVALID_FILE_TYPE", "file type is not allowed")
	ErrFileTooLarge         = newError(http.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the maximum allowed size")
	ErrNoFile               = newError(http.StatusBadRequest, "NO_FILE", "no file was provided")
	ErrInvalidMetadata      = newError(http.StatusBadRequest, "INVALID_METADATA", "file metadata is invalid")
	ErrInvalidUploadOptions = newError(http.StatusBadRequest, "INVALID_UPLOAD_OPTIONS", "upload options are invalid")
	ErrInvalidName          = newError(http.StatusBadRequest, "INVALID_NAME", "name contains invalid characters")
	ErrNameTooLong          = newError(http.StatusBadRequest, "NAME_TOO_LONG", "name is too long")
	ErrMaxKeysReached       = newError(http.StatusBadRequest, "MAX_KEYS_REACHED", "maximum number of active API keys reached")
	ErrKeyNotFound          = newError(http.StatusNotFound, "KEY_NOT_FOUND", "API key not found")
	ErrStoreUnavailable     = newError(http.StatusInternalServerError, "STORE_UNAVAILABLE", "object store is unavailable")
	ErrUploadFailed         = newError(http.StatusInternalServerError, "UPLOAD_ERROR", "failed to store the file")
	ErrMetadataFailed       = newError(http.StatusInternalServerError, "METADATA_ERROR", "failed to record file metadata")
	ErrPreviewUnsupported   = newError(http.StatusUnsupportedMediaType, "INVALID_FILE_TYPE", "preview is not supported for this file type")
	ErrInternal             = newError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
)

// AsServiceError unwraps err into *Error, falling back to a wrapped
// ErrInternal so handlers always have a code to emit.
func AsServiceError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return ErrInternal.Wrap(err)
}
