package models

import (
	"time"
)

// WatchHistory records that a user watched a video. Re-watching bumps
// WatchedAt instead of inserting a second row.
type WatchHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_history_user_video" json:"userId"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_history_user_video" json:"videoId"`
	WatchedAt time.Time `gorm:"not null;index" json:"watchedAt"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

// TableName specifies the table name for GORM
func (WatchHistory) TableName() string {
	return "watch_history"
}
