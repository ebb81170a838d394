package models

import (
	"time"
)

// Like is a reaction record pointing at exactly one of a video, comment, or
// tweet. Uniqueness per (owner, target) pair is enforced by partial unique
// indexes created during migration; a NULL target column keeps rows for
// different target kinds from colliding.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"ownerId"`
	VideoID   *uint     `gorm:"index" json:"videoId,omitempty"`
	CommentID *uint     `gorm:"index" json:"commentId,omitempty"`
	TweetID   *uint     `gorm:"index" json:"tweetId,omitempty"`
	Kind      string    `gorm:"type:varchar(20);not null;default:'like'" json:"kind"`
	CreatedAt time.Time `json:"createdAt"`

	// Relationships
	Owner   User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Video   *Video   `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	Comment *Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
	Tweet   *Tweet   `gorm:"foreignKey:TweetID" json:"tweet,omitempty"`
}
