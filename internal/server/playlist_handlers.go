package server

import (
	"cliptide/internal/models"
	"cliptide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlaylist handles POST /api/playlists (protected)
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.playlistSvc().CreatePlaylist(ctx, service.CreatePlaylistInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, created, "Playlist created")
}

// GetPlaylist returns a playlist with its videos in position order (public)
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()

	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistSvc().GetPlaylist(ctx, playlistID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Playlist")
}

// GetUserPlaylists returns a user's playlists (public)
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	playlists, err := s.playlistSvc().ListUserPlaylists(ctx, ownerID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, playlists, "Playlists")
}

// UpdatePlaylist handles PATCH /api/playlists/:playlistId (owner only)
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	updated, err := s.playlistSvc().UpdatePlaylist(ctx, service.UpdatePlaylistInput{
		UserID:      userID,
		PlaylistID:  playlistID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, updated, "Playlist updated")
}

// DeletePlaylist handles DELETE /api/playlists/:playlistId (owner only)
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	if err := s.playlistSvc().DeletePlaylist(ctx, userID, playlistID); err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Playlist deleted")
}

// AddVideoToPlaylist handles POST /api/playlists/:playlistId/videos/:videoId (owner only)
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistSvc().AddVideoToPlaylist(ctx, service.PlaylistVideoInput{
		UserID:     userID,
		PlaylistID: playlistID,
		VideoID:    videoID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Video added to playlist")
}

// RemoveVideoFromPlaylist handles DELETE /api/playlists/:playlistId/videos/:videoId (owner only)
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistSvc().RemoveVideoFromPlaylist(ctx, service.PlaylistVideoInput{
		UserID:     userID,
		PlaylistID: playlistID,
		VideoID:    videoID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Video removed from playlist")
}

func (s *Server) playlistSvc() *service.PlaylistService {
	if s.playlistService == nil {
		s.playlistService = service.NewPlaylistService(s.playlistRepo, s.videoRepo)
	}
	return s.playlistService
}
