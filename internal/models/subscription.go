package models

import (
	"time"
)

// Subscription records that Subscriber follows Channel. Both sides are users.
// The combination of SubscriberID and ChannelID must be unique.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel" json:"subscriberId"`
	ChannelID    uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel" json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`

	// Relationships
	Subscriber User `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel    User `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}
