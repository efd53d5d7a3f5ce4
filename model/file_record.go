package model

import "time"

type FileRecord struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID string `gorm:"column:user_id;size:36;index;not null" json:"user_id,omitempty"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	OriginalName string `gorm:"column:original_name;size:255;not null" json:"original_name"`

	// StorageKey is the object's address in the store. Unique and never reused.
	StorageKey string `gorm:"column:storage_key;size:255;uniqueIndex;not null" json:"file_name"`

	Size      int64  `gorm:"column:size;not null" json:"size"`
	MimeType  string `gorm:"column:mime_type;size:100;not null" json:"mime_type"`
	Extension string `gorm:"column:extension;size:10;not null" json:"extension"`

	UploadedAt time.Time  `gorm:"column:uploaded_at;not null" json:"uploaded_at"`
	ExpiresAt  *time.Time `gorm:"column:expires_at;index" json:"expires_at"`

	DownloadURL string `gorm:"column:download_url;size:500;not null" json:"download_url"`
	Duration    string `gorm:"column:duration;size:20;not null;default:'unlimited'" json:"duration"`

	IsDeleted bool `gorm:"column:is_deleted;not null;default:false" json:"-"`
}

// TableName returns the database table name.
func (FileRecord) TableName() string {
	return "file_record"
}
