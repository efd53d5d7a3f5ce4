package service

import (
	"FlowVault/internal/dto"
	"FlowVault/internal/repo"
	"FlowVault/model"
	"FlowVault/utils"
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxActiveKeys = 3

// CreateApiKey mints a new API key for the user. The raw key is
// returned exactly once; only its bcrypt hash and a recoverable
// encrypted copy are stored.
func CreateApiKey(ctx context.Context, userID, name string) (*dto.KeyView, error) {
	name = strings.TrimSpace(name)
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}
	if name == "" {
		name = "default"
	}

	var activeCount int64
	if err := repo.Db.Model(&model.ApiKey{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Count(&activeCount).Error; err != nil {
		return nil, ErrInternal.Wrap(err)
	}
	if activeCount >= maxActiveKeys {
		return nil, ErrMaxKeysReached
	}

	rawKey, err := utils.GenerateApiKey()
	if err != nil {
		return nil, ErrInternal.Wrap(err)
	}
	hashed := utils.GetPwd(rawKey)
	encrypted, err := utils.EncryptApiKey(rawKey)
	if err != nil {
		return nil, ErrInternal.Wrap(err)
	}

	key := &model.ApiKey{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		HashedKey:    hashed,
		EncryptedKey: encrypted,
		Prefix:       utils.KeyDisplayPrefix(rawKey),
		CreatedAt:    time.Now(),
	}
	if err := repo.Db.Create(key).Error; err != nil {
		return nil, ErrInternal.Wrap(err)
	}

	view := toKeyView(key)
	view.Key = rawKey
	return &view, nil
}

// ListApiKeys returns the user's keys, newest first. Active keys
// include the decrypted raw key so the holder can re-read it; revoked
// keys never do.
func ListApiKeys(userID string) ([]dto.KeyView, error) {
	var keys []model.ApiKey
	if err := repo.Db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&keys).Error; err != nil {
		return nil, ErrInternal.Wrap(err)
	}
	views := make([]dto.KeyView, 0, len(keys))
	for i := range keys {
		views = append(views, toKeyView(&keys[i]))
	}
	return views, nil
}

// RevokeApiKey soft-revokes a key. The row stays for audit, the key
// stops authenticating immediately.
func RevokeApiKey(ctx context.Context, userID, keyID string) error {
	var key model.ApiKey
	err := repo.Db.Where("id = ? AND user_id = ?", keyID, userID).First(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return ErrInternal.Wrap(err)
	}
	if key.RevokedAt != nil {
		return nil
	}

	now := time.Now()
	if err := repo.Db.Model(&model.ApiKey{}).
		Where("id = ?", keyID).
		Update("revoked_at", now).Error; err != nil {
		return ErrInternal.Wrap(err)
	}

	if err := utils.InvalidateAllVerifiedKeys(ctx); err != nil {
		log.Println("verified key cache invalidate failed:", err)
	}
	return nil
}

func toKeyView(key *model.ApiKey) dto.KeyView {
	view := dto.KeyView{
		ID:         key.ID,
		Name:       key.Name,
		Prefix:     key.Prefix,
		CreatedAt:  key.CreatedAt,
		LastUsedAt: key.LastUsedAt,
		RevokedAt:  key.RevokedAt,
	}
	if key.RevokedAt == nil && key.EncryptedKey != "" {
		if raw, err := utils.DecryptApiKey(key.EncryptedKey); err == nil {
			view.Key = raw
		}
	}
	return view
}
