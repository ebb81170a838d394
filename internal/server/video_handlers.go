package server

import (
	"cliptide/internal/models"
	"cliptide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PublishVideo handles POST /api/videos: multipart upload of a video file
// plus metadata and an optional thumbnail (protected)
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Video file is required"))
	}

	videoPath, videoType, cleanupVideo, err := s.saveUpload(c, videoFile)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	defer cleanupVideo()

	in := service.PublishVideoInput{
		UserID:      userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		VideoPath:   videoPath,
		VideoType:   videoType,
	}

	if thumbFile, thumbErr := c.FormFile("thumbnail"); thumbErr == nil {
		thumbPath, _, cleanupThumb, upErr := s.saveUpload(c, thumbFile)
		if upErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(upErr))
		}
		defer cleanupThumb()
		in.ThumbnailPath = thumbPath
	}

	video, err := s.videoSvc().PublishVideo(ctx, in)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, video, "Video published")
}

// GetVideos returns the published video feed (public)
func (s *Server) GetVideos(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePage(c)
	currentUserID, _ := s.optionalUserID(c)

	videos, err := s.videoSvc().ListVideos(ctx, service.ListVideosInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: currentUserID,
		Sort:          c.Query("sort", "new"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"videos":  videos,
		"hasMore": len(videos) == page.Limit,
	}, "Videos")
}

// GetVideo returns a single video and registers the view (public)
func (s *Server) GetVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	currentUserID, _ := s.optionalUserID(c)

	video, err := s.videoSvc().WatchVideo(ctx, videoID, currentUserID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, video, "Video")
}

// GetUserVideos returns a channel's videos (public)
func (s *Server) GetUserVideos(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePage(c)
	currentUserID, _ := s.optionalUserID(c)

	videos, err := s.videoSvc().GetUserVideos(ctx, ownerID, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"videos":  videos,
		"hasMore": len(videos) == page.Limit,
	}, "Channel videos")
}

// UpdateVideo handles PATCH /api/videos/:id (owner only)
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateVideoInput{
		UserID:      userID,
		VideoID:     videoID,
		Title:       req.Title,
		Description: req.Description,
	}

	if thumbFile, thumbErr := c.FormFile("thumbnail"); thumbErr == nil {
		thumbPath, _, cleanupThumb, upErr := s.saveUpload(c, thumbFile)
		if upErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(upErr))
		}
		defer cleanupThumb()
		in.ThumbnailPath = thumbPath
	}

	video, err := s.videoSvc().UpdateVideo(ctx, in)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, video, "Video updated")
}

// TogglePublish handles PATCH /api/videos/:id/publish (owner only)
func (s *Server) TogglePublish(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	video, err := s.videoSvc().TogglePublish(ctx, userID, videoID)
	if err != nil {
		return respondError(c, err)
	}

	message := "Video unpublished"
	if video.IsPublished {
		message = "Video published"
	}
	return models.Respond(c, fiber.StatusOK, video, message)
}

// DeleteVideo handles DELETE /api/videos/:id (owner only)
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.videoSvc().DeleteVideo(ctx, userID, videoID); err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Video deleted")
}

func (s *Server) videoSvc() *service.VideoService {
	if s.videoService == nil {
		s.videoService = service.NewVideoService(s.videoRepo, s.historyRepo, s.blobs)
	}
	return s.videoService
}
