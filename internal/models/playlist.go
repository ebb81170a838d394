package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist is an owned, ordered collection of videos.
type Playlist struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	OwnerID     uint            `gorm:"not null;index" json:"ownerId"`
	Owner       User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Entries     []PlaylistVideo `gorm:"foreignKey:PlaylistID" json:"entries,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// PlaylistVideo is the ordered membership of a video in a playlist.
// The combination of PlaylistID and VideoID must be unique.
type PlaylistVideo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"not null;uniqueIndex:idx_playlist_video" json:"playlistId"`
	VideoID    uint      `gorm:"not null;uniqueIndex:idx_playlist_video" json:"videoId"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"createdAt"`

	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}
