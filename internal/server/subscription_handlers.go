package server

import (
	"cliptide/internal/models"
	"cliptide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription flips the caller's subscription to a channel (protected)
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	subscribed, err := s.subscriptionSvc().ToggleSubscription(ctx, userID, channelID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{"subscribed": subscribed}, "Subscription toggled")
}

// GetChannelSubscribers returns a channel's subscriber list with the total
// and the caller's own subscription state (protected)
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	subscribers, err := s.subscriptionSvc().ListSubscribers(ctx, channelID)
	if err != nil {
		return respondError(c, err)
	}

	total, err := s.subscriptionRepo.CountForChannel(ctx, channelID)
	if err != nil {
		return respondError(c, err)
	}

	isSubscribed, err := s.subscriptionRepo.IsSubscribed(ctx, userID, channelID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"subscribers":      subscribers,
		"totalSubscribers": total,
		"isSubscribed":     isSubscribed,
	}, "Subscribers")
}

// GetSubscribedChannels returns the channels a user follows (protected)
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	ctx := c.UserContext()

	subscriberID, err := s.parseID(c, "subscriberId")
	if err != nil {
		return nil
	}

	channels, err := s.subscriptionSvc().ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{"channels": channels}, "Subscribed channels")
}

func (s *Server) subscriptionSvc() *service.SubscriptionService {
	if s.subscriptionService == nil {
		s.subscriptionService = service.NewSubscriptionService(s.subscriptionRepo, s.userRepo)
	}
	return s.subscriptionService
}
