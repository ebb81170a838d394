package server

import (
	"cliptide/internal/models"
	"cliptide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetWatchHistory returns the caller's watch history feed (protected)
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	page := parsePage(c)

	videos, err := s.historySvc().ListWatchHistory(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"videos":  videos,
		"hasMore": len(videos) == page.Limit,
	}, "Watch history")
}

// RemoveFromHistory drops one video from the caller's history (protected)
func (s *Server) RemoveFromHistory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	if err := s.historySvc().RemoveFromHistory(ctx, userID, videoID); err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Removed from history")
}

// ClearHistory wipes the caller's entire watch history (protected)
func (s *Server) ClearHistory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	if err := s.historySvc().ClearHistory(ctx, userID); err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "History cleared")
}

func (s *Server) historySvc() *service.HistoryService {
	if s.historyService == nil {
		s.historyService = service.NewHistoryService(s.historyRepo)
	}
	return s.historyService
}
