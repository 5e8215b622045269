package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an admin editor account. The public site has no user-facing
// registration; rows are created by the seeder or another admin.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`

	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}
