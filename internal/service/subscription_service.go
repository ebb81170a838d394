package service

import (
	"context"

	"cliptide/internal/models"
	"cliptide/internal/repository"
)

type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// ToggleSubscription flips the subscription and reports the resulting state.
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	if subscriberID == channelID {
		return false, models.NewValidationError("You cannot subscribe to your own channel")
	}
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return false, err
	}
	return s.subscriptionRepo.Toggle(ctx, subscriberID, channelID)
}

// ListSubscribers returns the users subscribed to the given channel.
func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID uint) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}
	return s.subscriptionRepo.ListSubscribers(ctx, channelID)
}

// ListSubscribedChannels returns the channels the given user follows.
func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uint) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, subscriberID); err != nil {
		return nil, err
	}
	return s.subscriptionRepo.ListChannels(ctx, subscriberID)
}
