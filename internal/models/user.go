// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account and, equivalently, a channel. Other users
// subscribe to a user to follow their uploads.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"unique;not null" json:"username"`
	Email      string `gorm:"unique;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	FullName   string `json:"fullName"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage,omitempty"`
	// SubscribersCount is not persisted; computed at query time on channel views
	SubscribersCount int `gorm:"->;-:migration" json:"subscribersCount,omitempty"`
	// IsSubscribed indicates whether the current requesting user follows this channel (computed)
	IsSubscribed bool           `gorm:"->;-:migration" json:"isSubscribed,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Videos       []Video        `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
}
