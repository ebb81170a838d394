package server

import (
	"cliptide/internal/models"
	"cliptide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's own account (protected)
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	user, err := s.userSvc().GetCurrentUser(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, user, "Current user")
}

// UpdateMyProfile updates account fields and optionally replaces the avatar
// or cover image when files are attached (protected)
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		FullName string `json:"fullName" form:"fullName"`
		Email    string `json:"email" form:"email"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userSvc().UpdateAccount(ctx, service.UpdateAccountInput{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return respondError(c, err)
	}

	if file, fileErr := c.FormFile("avatar"); fileErr == nil {
		path, _, cleanup, upErr := s.saveUpload(c, file)
		if upErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(upErr))
		}
		defer cleanup()

		user, err = s.userSvc().UpdateAvatar(ctx, userID, path)
		if err != nil {
			return respondError(c, err)
		}
	}

	if file, fileErr := c.FormFile("coverImage"); fileErr == nil {
		path, _, cleanup, upErr := s.saveUpload(c, file)
		if upErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(upErr))
		}
		defer cleanup()

		user, err = s.userSvc().UpdateCoverImage(ctx, userID, path)
		if err != nil {
			return respondError(c, err)
		}
	}

	return models.Respond(c, fiber.StatusOK, user, "Account updated")
}

// ChangeMyPassword handles PUT /api/users/me/password (protected)
func (s *Server) ChangeMyPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	err := s.userSvc().ChangePassword(ctx, service.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Password changed")
}

// GetChannelProfile returns a user's channel view with subscriber count and
// the caller's subscription state (public)
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	channelID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	currentUserID, _ := s.optionalUserID(c)

	channel, err := s.userSvc().GetChannel(ctx, channelID, currentUserID)
	if err != nil {
		return respondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, channel, "Channel profile")
}

func (s *Server) userSvc() *service.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.userRepo, s.blobs)
	}
	return s.userService
}
