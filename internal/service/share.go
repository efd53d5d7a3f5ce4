package service

import (
	"FlowVault/internal/repo"
	"FlowVault/model"
	"FlowVault/utils"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// CreateShare issues a share token for one of the caller's files.
// Expiring shares get a Redis mirror so hot lookups skip the catalog.
func CreateShare(ctx context.Context, userID, identifier string, expireDays int, sharedWith *string) (*model.FileShare, error) {
	record, err := ResolveFile(identifier, userID)
	if err != nil {
		return nil, err
	}

	share := &model.FileShare{
		ID:               uuid.NewString(),
		ShareToken:       utils.GetToken(),
		FileID:           record.ID,
		SharedByUserID:   userID,
		SharedWithUserID: sharedWith,
		Permissions:      "read",
		CreatedAt:        time.Now(),
	}
	if expireDays > 0 {
		expiresAt := time.Now().Add(time.Duration(expireDays) * 24 * time.Hour)
		share.ExpiresAt = &expiresAt
	}
	if record.ExpiresAt != nil && (share.ExpiresAt == nil || record.ExpiresAt.Before(*share.ExpiresAt)) {
		// A share never outlives the file it points at.
		share.ExpiresAt = record.ExpiresAt
	}

	if err := repo.Db.Create(share).Error; err != nil {
		return nil, ErrInternal.Wrap(err)
	}

	if share.ExpiresAt != nil {
		key := "share:" + share.ShareToken
		ttl := time.Until(*share.ExpiresAt)
		if ttl > 0 {
			value, _ := json.Marshal(share)
			if err := repo.Redis.Set(ctx, key, value, ttl).Err(); err != nil {
				log.Println("share cache write failed:", share.ShareToken, err)
			}
		}
	}
	return share, nil
}

// ResolveShare looks up a live share by token and returns it with
// the record it points at.
func ResolveShare(ctx context.Context, token string) (*model.FileShare, *model.FileRecord, error) {
	share, err := lookupShare(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if IsExpired(share.ExpiresAt, time.Now()) {
		return nil, nil, ErrFileExpired
	}

	var record model.FileRecord
	dbErr := repo.Db.Where("id = ? AND is_deleted = ?", share.FileID, false).First(&record).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return nil, nil, ErrFileNotFound
	}
	if dbErr != nil {
		return nil, nil, ErrInternal.Wrap(dbErr)
	}
	return share, &record, nil
}

func lookupShare(ctx context.Context, token string) (*model.FileShare, error) {
	key := "share:" + token
	val, err := repo.Redis.Get(ctx, key).Result()
	if err == nil {
		var share model.FileShare
		if jsonErr := json.Unmarshal([]byte(val), &share); jsonErr == nil {
			return &share, nil
		}
	} else if err != redis.Nil {
		log.Println("share cache read failed:", token, err)
	}

	var share model.FileShare
	dbErr := repo.Db.Where("share_token = ?", token).First(&share).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if dbErr != nil {
		return nil, ErrInternal.Wrap(dbErr)
	}
	return &share, nil
}
