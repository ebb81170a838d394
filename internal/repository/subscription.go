package repository

import (
	"context"

	"cliptide/internal/cache"
	"cliptide/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines interface for subscription operations
type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID uint) (subscribed bool, err error)
	ListSubscribers(ctx context.Context, channelID uint) ([]*models.User, error)
	ListChannels(ctx context.Context, subscriberID uint) ([]*models.User, error)
	CountForChannel(ctx context.Context, channelID uint) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Toggle flips the subscription state atomically, same shape as the like
// toggle: delete first, insert only when nothing was deleted.
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	var subscribed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?", subscriberID, channelID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			subscribed = false
			return nil
		}
		err := tx.Exec(
			"INSERT INTO subscriptions (subscriber_id, channel_id, created_at) VALUES (?, ?, NOW()) ON CONFLICT (subscriber_id, channel_id) DO NOTHING",
			subscriberID, channelID,
		).Error
		if err != nil {
			return err
		}
		subscribed = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, channelID)
	return subscribed, nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id", "users.username", "users.full_name", "users.avatar").
		Joins("JOIN subscriptions s ON users.id = s.subscriber_id").
		Where("s.channel_id = ? AND users.deleted_at IS NULL", channelID).
		Order("s.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id", "users.username", "users.full_name", "users.avatar").
		Joins("JOIN subscriptions s ON users.id = s.channel_id").
		Where("s.subscriber_id = ? AND users.deleted_at IS NULL", subscriberID).
		Order("s.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *subscriptionRepository) CountForChannel(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *subscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
