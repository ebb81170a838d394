package server

import (
	"cliptide/internal/models"
	"cliptide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleVideoLike flips the caller's like on a video (protected)
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	liked, err := s.likeSvc().ToggleVideoLike(ctx, userID, videoID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{"liked": liked}, "Like toggled")
}

// ToggleCommentLike flips the caller's like on a comment (protected)
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	liked, err := s.likeSvc().ToggleCommentLike(ctx, userID, commentID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{"liked": liked}, "Like toggled")
}

// ToggleTweetLike flips the caller's like on a tweet (protected)
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	liked, err := s.likeSvc().ToggleTweetLike(ctx, userID, tweetID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{"liked": liked}, "Like toggled")
}

// GetLikedVideos returns the caller's liked videos, newest like first (protected)
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	page := parsePage(c)

	videos, err := s.likeSvc().GetLikedVideos(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"videos":  videos,
		"hasMore": len(videos) == page.Limit,
	}, "Liked videos")
}

func (s *Server) likeSvc() *service.LikeService {
	if s.likeService == nil {
		s.likeService = service.NewLikeService(s.likeRepo, s.videoRepo, s.commentRepo, s.tweetRepo)
	}
	return s.likeService
}
