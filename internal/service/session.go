package service

import (
	"FlowVault/config"
	"FlowVault/internal/repo"
	"FlowVault/model"
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUploadSession opens an upload session and mirrors its TTL
// into Redis so keyspace expiry deactivates it on time.
func CreateUploadSession(ctx context.Context, userID string) (*model.UploadSession, error) {
	now := time.Now()
	session := &model.UploadSession{
		ID:        uuid.NewString(),
		SessionID: uuid.NewString(),
		UserID:    userID,
		Status:    model.UploadSessionActive,
		CreatedAt: now,
		ExpiresAt: now.Add(config.AppConfig.SessionTTL),
	}
	if err := repo.Db.Create(session).Error; err != nil {
		return nil, ErrInternal.Wrap(err)
	}

	key := "uploadsession:" + session.SessionID
	if err := repo.Redis.Set(ctx, key, session.UserID, config.AppConfig.SessionTTL).Err(); err != nil {
		log.Println("upload session ttl mirror failed:", session.SessionID, err)
	}
	return session, nil
}

// GetUploadSession returns an active, unexpired session.
func GetUploadSession(sessionID, userID string) (*model.UploadSession, error) {
	var session model.UploadSession
	err := repo.Db.Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, ErrInternal.Wrap(err)
	}
	if session.Status != model.UploadSessionActive || !session.ExpiresAt.After(time.Now()) {
		return nil, ErrFileNotFound
	}
	return &session, nil
}

// DeactivateUploadSession closes a session early.
func DeactivateUploadSession(ctx context.Context, sessionID, userID string) error {
	if err := repo.Db.Model(&model.UploadSession{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Update("status", model.UploadSessionInactive).Error; err != nil {
		return ErrInternal.Wrap(err)
	}
	if err := repo.Redis.Del(ctx, "uploadsession:"+sessionID).Err(); err != nil {
		log.Println("upload session ttl mirror delete failed:", sessionID, err)
	}
	return nil
}
