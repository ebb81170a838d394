// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a video.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null" json:"content"`
	OwnerID uint   `gorm:"not null;index" json:"ownerId"`
	VideoID uint   `gorm:"not null;index" json:"videoId"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner"`
	Video   Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likesCount"`
	// Liked indicates whether the current requesting user liked this comment (computed)
	Liked     bool           `gorm:"->;-:migration" json:"liked"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
