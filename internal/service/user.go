package service

import (
	"FlowVault/internal/repo"
	"FlowVault/internal/storage"
	"FlowVault/model"
	"FlowVault/utils"
	"bytes"
	"context"
	"errors"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser registers a new account. Accounts created from the
// activation link arrive active, anything else stays inactive until
// activation.
func CreateUser(email, name, password string, active bool) (*model.User, error) {
	var existing model.User
	err := repo.Db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, errors.New("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Password:  utils.GetPwd(password),
		IsActive:  active,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// IsEmailExist reports whether an email is already registered.
func IsEmailExist(email string) bool {
	var user model.User
	return repo.Db.Where("email = ?", email).First(&user).Error == nil
}

// ActivateUser flips an account to active.
func ActivateUser(userID string) error {
	return repo.Db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_active":  true,
			"updated_at": time.Now(),
		}).Error
}

// Login checks credentials and returns the account.
func Login(email, password string) (*model.User, error) {
	var user model.User
	err := repo.Db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, ErrInternal.Wrap(err)
	}
	if !user.IsActive {
		return nil, ErrUnauthenticated
	}
	if !utils.CheckPwd(password, user.Password) {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

// GetUser returns an account by ID, via the Redis cache when warm.
func GetUser(ctx context.Context, userID string) (*model.User, error) {
	if cached, ok := utils.GetUserInfoFromCache(ctx, userID); ok {
		return cached, nil
	}
	var user model.User
	err := repo.Db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, ErrInternal.Wrap(err)
	}
	if cacheErr := utils.SetUserInfoToCache(ctx, userID, &user, 5*time.Minute); cacheErr != nil {
		log.Println("user cache write failed:", cacheErr)
	}
	return &user, nil
}

// UpdateProfile changes the display name and avatar.
func UpdateProfile(ctx context.Context, userID, name, image string) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if name != "" {
		if len(name) > 255 {
			return ErrNameTooLong
		}
		updates["name"] = name
	}
	if image != "" {
		updates["image"] = image
	}
	if err := repo.Db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		return ErrInternal.Wrap(err)
	}
	if err := utils.InvalidateUserInfoCache(ctx, userID); err != nil {
		log.Println("user cache invalidate failed:", err)
	}
	return nil
}

var avatarExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

const maxAvatarSize = 5 * 1024 * 1024

// UploadAvatar stores a profile picture and points User.Image at it.
// Avatars live under their own prefix and are replaced, not
// versioned; the old object is removed best effort.
func UploadAvatar(ctx context.Context, userID, fileName, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoFile
	}
	if int64(len(data)) > maxAvatarSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(path.Ext(fileName))
	if _, ok := avatarExtensions[ext]; !ok {
		return "", ErrInvalidFileType
	}

	user, err := GetUser(ctx, userID)
	if err != nil {
		return "", err
	}

	storageKey := "avatars/" + uuid.NewString() + ext
	if err := UploadObject(ctx, storageKey, bytes.NewReader(data), int64(len(data)), contentType, ObjectAttrs{
		UserID:       userID,
		OriginalName: fileName,
		UploadedAt:   time.Now(),
	}); err != nil {
		return "", ErrUploadFailed.Wrap(err)
	}

	imageURL, err := PublicObjectURL(ctx, storageKey)
	if err != nil {
		imageURL = storageKey
	}
	if err := UpdateProfile(ctx, userID, "", imageURL); err != nil {
		if removeErr := RemoveStoredObject(ctx, storageKey); removeErr != nil {
			log.Println("orphan avatar cleanup failed:", storageKey, removeErr)
		}
		return "", err
	}

	if old := user.Image; strings.Contains(old, "avatars/") {
		oldKey := old[strings.Index(old, "avatars/"):]
		if cut := strings.IndexByte(oldKey, '?'); cut >= 0 {
			oldKey = oldKey[:cut]
		}
		if err := RemoveStoredObject(ctx, oldKey); err != nil && !storage.IsNotFound(err) {
			log.Println("old avatar delete failed:", oldKey, err)
		}
	}
	return imageURL, nil
}

// DeleteAccount removes the user and everything they own. Object
// deletes run best effort outside the transaction; the catalog purge
// is a single transaction so a partial failure rolls back cleanly.
func DeleteAccount(ctx context.Context, userID string) error {
	var records []model.FileRecord
	if err := repo.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Find(&records).Error; err != nil {
		return ErrInternal.Wrap(err)
	}
	for i := range records {
		if err := RemoveStoredObject(ctx, records[i].StorageKey); err != nil && !storage.IsNotFound(err) {
			log.Println("account delete object failed:", records[i].StorageKey, err)
		}
	}

	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shared_by_user_id = ?", userID).Delete(&model.FileShare{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.FileRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.ApiKey{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.UploadSession{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&model.User{}).Error
	})
	if err != nil {
		return ErrInternal.Wrap(err)
	}

	if err := utils.InvalidateUserInfoCache(ctx, userID); err != nil {
		log.Println("user cache invalidate failed:", err)
	}
	if err := utils.InvalidateFileListCache(ctx, userID); err != nil {
		log.Println("file list cache invalidate failed:", err)
	}
	if err := utils.InvalidateAllVerifiedKeys(ctx); err != nil {
		log.Println("verified key cache invalidate failed:", err)
	}
	return nil
}
