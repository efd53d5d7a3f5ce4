package model

import "time"

const (
	UploadSessionActive   = "active"
	UploadSessionInactive = "inactive"
)

type UploadSession struct {
	ID string `gorm:"primaryKey;size:36"`

	SessionID string `gorm:"column:session_id;size:255;uniqueIndex;not null"`

	UserID string `gorm:"column:user_id;size:36;index;not null"`
	User   User   `gorm:"foreignKey:UserID;references:ID"`

	Status string `gorm:"column:status;size:20;not null;default:'active'"`

	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
}

// TableName returns the database table name.
func (UploadSession) TableName() string {
	return "upload_session"
}
