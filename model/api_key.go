package model

import "time"

type ApiKey struct {
	ID string `gorm:"primaryKey;size:36"`

	UserID string `gorm:"column:user_id;size:36;index;not null"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`

	Name string `gorm:"column:name;size:100;not null"`

	// HashedKey is the bcrypt hash used for verification. The raw key is never stored.
	HashedKey    string `gorm:"column:hashed_key;type:text;not null" json:"-"`
	EncryptedKey string `gorm:"column:encrypted_key;type:text;not null" json:"-"`

	Prefix string `gorm:"column:prefix;size:20;index;not null"`

	CreatedAt  time.Time
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
	RevokedAt  *time.Time `gorm:"column:revoked_at"`
}

// TableName returns the database table name.
func (ApiKey) TableName() string {
	return "api_key"
}
