package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a customer record. Storefront sign-ins attach credentials
// (password hash or Google ID); records created from the back office may
// have neither.
type Client struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:120;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone        string         `gorm:"size:40" json:"phone"`
	Address      string         `gorm:"size:512" json:"address"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil unless Google sign-in
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
