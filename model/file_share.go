package model

import "time"

type FileShare struct {
	ID string `gorm:"primaryKey;size:36"`

	ShareToken string `gorm:"column:share_token;size:255;uniqueIndex;not null"`

	FileID string     `gorm:"column:file_id;size:36;not null;index"`
	File   FileRecord `gorm:"foreignKey:FileID;references:ID;constraint:OnDelete:CASCADE"`

	SharedByUserID   string  `gorm:"column:shared_by_user_id;size:36;not null;index"`
	SharedWithUserID *string `gorm:"column:shared_with_user_id;size:36"`

	Permissions string `gorm:"column:permissions;type:text"`

	CreatedAt time.Time
	ExpiresAt *time.Time `gorm:"column:expires_at"`
}

// TableName returns the database table name.
func (FileShare) TableName() string {
	return "file_share"
}
