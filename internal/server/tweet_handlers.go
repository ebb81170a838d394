package server

import (
	"cliptide/internal/models"
	"cliptide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet posts a tweet on the caller's channel (protected)
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.tweetSvc().CreateTweet(ctx, service.CreateTweetInput{
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, created, "Tweet created")
}

// GetUserTweets returns a channel's tweets, newest first (public)
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	currentUserID, _ := s.optionalUserID(c)

	tweets, err := s.tweetSvc().ListUserTweets(ctx, ownerID, currentUserID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, tweets, "Tweets")
}

// UpdateTweet updates a tweet (only owner)
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	updated, err := s.tweetSvc().UpdateTweet(ctx, service.UpdateTweetInput{
		UserID:  userID,
		TweetID: tweetID,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, updated, "Tweet updated")
}

// DeleteTweet deletes a tweet (only owner)
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	_, err = s.tweetSvc().DeleteTweet(ctx, service.DeleteTweetInput{
		UserID:  userID,
		TweetID: tweetID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Tweet deleted")
}

func (s *Server) tweetSvc() *service.TweetService {
	if s.tweetService == nil {
		s.tweetService = service.NewTweetService(s.tweetRepo, s.userRepo)
	}
	return s.tweetService
}
