package model

import "time"

type User struct {
	ID string `gorm:"primaryKey;size:36"`

	Email string `gorm:"column:email;type:varchar(255);not null;unique"`

	Name  string `gorm:"column:name;type:varchar(80);not null;default:''"`
	Image string `gorm:"column:image;type:varchar(512);not null;default:''"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null;default:''" json:"-"`

	IsActive bool `gorm:"column:is_active;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name.
func (User) TableName() string {
	return "user_db"
}
