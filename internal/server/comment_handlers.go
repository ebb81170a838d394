package server

import (
	"cliptide/internal/models"
	"cliptide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment creates a comment on a video (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentSvc().AddComment(ctx, service.AddCommentInput{
		UserID:  userID,
		VideoID: videoID,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, created, "Comment added")
}

// GetComments returns all comments for a video, newest first (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	currentUserID, _ := s.optionalUserID(c)

	comments, err := s.commentSvc().ListComments(ctx, videoID, currentUserID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, comments, "Comments")
}

// UpdateComment updates a comment (only owner)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	updated, err := s.commentSvc().UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, updated, "Comment updated")
}

// DeleteComment deletes a comment (comment owner or video owner)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	_, err = s.commentSvc().DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Comment deleted")
}

func (s *Server) commentSvc() *service.CommentService {
	if s.commentService == nil {
		s.commentService = service.NewCommentService(s.commentRepo, s.videoRepo)
	}
	return s.commentService
}
