package service

import (
	"FlowVault/internal/repo"
	"FlowVault/model"
	"errors"
	"regexp"

	"gorm.io/gorm"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsUUID reports whether the identifier has canonical UUID form.
func IsUUID(identifier string) bool {
	return uuidPattern.MatchString(identifier)
}

// ResolveFile finds a live record for the caller by trying identifier
// interpretations in order: record ID, storage key, original name.
// An original name can collide across uploads, the earliest upload
// wins.
func ResolveFile(identifier, userID string) (*model.FileRecord, error) {
	if identifier == "" {
		return nil, ErrFileNotFound
	}

	var record model.FileRecord

	if IsUUID(identifier) {
		err := repo.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", identifier, userID, false).
			First(&record).Error
		if err == nil {
			return &record, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternal.Wrap(err)
		}
	}

	err := repo.Db.Where("storage_key = ? AND user_id = ? AND is_deleted = ?", identifier, userID, false).
		First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInternal.Wrap(err)
	}

	err = repo.Db.Where("original_name = ? AND user_id = ? AND is_deleted = ?", identifier, userID, false).
		Order("uploaded_at ASC").
		First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInternal.Wrap(err)
	}
	return nil, ErrFileNotFound
}

// ResolveFileStrict behaves like ResolveFile but distinguishes a
// foreign record reached by exact ID: the download endpoint reports
// that as a denial instead of masking it.
func ResolveFileStrict(identifier, userID string) (*model.FileRecord, error) {
	record, err := ResolveFile(identifier, userID)
	if err == nil {
		return record, nil
	}
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != ErrFileNotFound.Code {
		return nil, err
	}
	if !IsUUID(identifier) {
		return nil, err
	}

	var foreign model.FileRecord
	lookupErr := repo.Db.Where("id = ? AND is_deleted = ?", identifier, false).
		First(&foreign).Error
	if lookupErr == nil && foreign.UserID != userID {
		return nil, ErrAccessDenied
	}
	return nil, err
}
