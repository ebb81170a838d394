package service

import (
	"context"
	"strings"

	"cliptide/internal/models"
	"cliptide/internal/repository"
	"cliptide/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	blobs    storage.Store

	// Swappable for tests; defaults to the webp re-encoding pipeline.
	normalizeImage func(path string) (string, string, error)
}

type UpdateAccountInput struct {
	UserID   uint
	FullName string
	Email    string
}

type ChangePasswordInput struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

func NewUserService(userRepo repository.UserRepository, blobs storage.Store) *UserService {
	return &UserService{
		userRepo:       userRepo,
		blobs:          blobs,
		normalizeImage: storage.NormalizeImage,
	}
}

func (s *UserService) GetCurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetChannel loads the channel view of a user: profile plus subscriber count
// and the requesting user's subscription state.
func (s *UserService) GetChannel(ctx context.Context, channelID, currentUserID uint) (*models.User, error) {
	return s.userRepo.GetChannelProfile(ctx, channelID, currentUserID)
}

func (s *UserService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if fullName := strings.TrimSpace(in.FullName); fullName != "" {
		user.FullName = fullName
	}
	if email := strings.TrimSpace(strings.ToLower(in.Email)); email != "" && email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Email is already in use")
		}
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if len(in.NewPassword) < 8 {
		return models.NewValidationError("Password must be at least 8 characters")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
		return models.NewUnauthorizedError("Old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// UpdateAvatar replaces the user's avatar with a freshly uploaded image.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, func(u *models.User, url string) {
		u.Avatar = url
	})
}

// UpdateCoverImage replaces the user's channel cover image.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID uint, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, func(u *models.User, url string) {
		u.CoverImage = url
	})
}

func (s *UserService) updateImage(ctx context.Context, userID uint, localPath string, assign func(*models.User, string)) (*models.User, error) {
	if localPath == "" {
		return nil, models.NewValidationError("Image file is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalized, contentType, err := s.normalizeImage(localPath)
	if err != nil {
		return nil, models.NewValidationError("Uploaded file is not a valid image")
	}

	url, _, err := s.blobs.Upload(ctx, normalized, contentType, storage.KindImage)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	assign(user, url)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
