package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. Password hash is nil for
// accounts provisioned through Google sign-in.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	Name         string     `gorm:"column:name;not null"`
	PhotoURL     *string    `gorm:"column:photo_url"`
	PasswordHash *string    `gorm:"column:password_hash"`
	Role         string     `gorm:"column:role;not null;default:user"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
