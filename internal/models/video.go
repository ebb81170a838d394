// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents an uploaded video and its metadata. The file itself lives
// in the blob store; FilePath and Thumbnail are hosted URLs.
type Video struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	FilePath    string  `gorm:"not null" json:"filePath"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `gorm:"not null" json:"duration"`
	Views       int64   `gorm:"not null;default:0" json:"views"`
	IsPublished bool    `gorm:"not null;default:true" json:"isPublished"`
	OwnerID     uint    `gorm:"not null;index" json:"ownerId"`
	Owner       User    `gorm:"foreignKey:OwnerID" json:"owner"`
	// FileKey and ThumbnailKey identify the stored objects for deletion.
	FileKey      string `json:"-"`
	ThumbnailKey string `json:"-"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likesCount"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"commentsCount"`
	// Liked indicates whether the current requesting user liked this video (computed)
	Liked bool `gorm:"->;-:migration" json:"liked"`
	// WatchedAt is populated on watch-history feeds only
	WatchedAt *time.Time     `gorm:"->;-:migration" json:"watchedAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
