package service

import (
	"context"
	"errors"
	"testing"

	"cliptide/internal/models"
	"cliptide/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_UpdateAccount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("email already in use", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 99, Email: email}, nil
		}
		svc := NewUserService(userRepo, &blobStoreStub{})
		_, err := svc.UpdateAccount(ctx, UpdateAccountInput{UserID: 1, Email: "taken@example.com"})
		assertValidationError(t, err)
	})

	t.Run("normalizes email and keeps existing full name", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FullName: "Alice Smith", Email: "alice@example.com"}, nil
		}
		var updated *models.User
		userRepo.updateFn = func(_ context.Context, user *models.User) error {
			updated = user
			return nil
		}
		svc := NewUserService(userRepo, &blobStoreStub{})
		_, err := svc.UpdateAccount(ctx, UpdateAccountInput{UserID: 1, Email: "  New@Example.COM "})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.Equal(t, "Alice Smith", updated.FullName)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepoWithPassword := func() *userRepoStub {
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Password: string(hashed)}, nil
		}
		return userRepo
	}

	t.Run("new password too short", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(userRepoWithPassword(), &blobStoreStub{})
		err := svc.ChangePassword(ctx, ChangePasswordInput{UserID: 1, OldPassword: "old-secret", NewPassword: "short"})
		assertValidationError(t, err)
	})

	t.Run("wrong old password", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(userRepoWithPassword(), &blobStoreStub{})
		err := svc.ChangePassword(ctx, ChangePasswordInput{UserID: 1, OldPassword: "not-it", NewPassword: "new-secret-1"})
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("rehashes and stores the new password", func(t *testing.T) {
		t.Parallel()
		userRepo := userRepoWithPassword()
		var updated *models.User
		userRepo.updateFn = func(_ context.Context, user *models.User) error {
			updated = user
			return nil
		}
		svc := NewUserService(userRepo, &blobStoreStub{})
		err := svc.ChangePassword(ctx, ChangePasswordInput{UserID: 1, OldPassword: "old-secret", NewPassword: "new-secret-1"})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-secret-1")))
	})
}

func newTestUserService(userRepo *userRepoStub, blobs *blobStoreStub) *UserService {
	svc := NewUserService(userRepo, blobs)
	svc.normalizeImage = func(path string) (string, string, error) { return path, "image/webp", nil }
	return svc
}

func TestUserService_UpdateAvatar(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("file is required", func(t *testing.T) {
		t.Parallel()
		svc := newTestUserService(noopUserRepo(), &blobStoreStub{})
		_, err := svc.UpdateAvatar(ctx, 1, "")
		assertValidationError(t, err)
	})

	t.Run("rejects files that are not images", func(t *testing.T) {
		t.Parallel()
		svc := newTestUserService(noopUserRepo(), &blobStoreStub{})
		svc.normalizeImage = func(_ string) (string, string, error) {
			return "", "", errors.New("unsupported image type application/pdf")
		}
		_, err := svc.UpdateAvatar(ctx, 1, "/tmp/resume.pdf")
		assertValidationError(t, err)
	})

	t.Run("stores the normalized image URL", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		var updated *models.User
		userRepo.updateFn = func(_ context.Context, user *models.User) error {
			updated = user
			return nil
		}
		blobs := &blobStoreStub{}
		var uploadedPath, uploadedType string
		blobs.uploadFn = func(_ context.Context, localPath, contentType string, kind storage.Kind) (string, string, error) {
			uploadedPath, uploadedType = localPath, contentType
			return "http://blobs/" + string(kind) + "/obj", string(kind) + "/obj", nil
		}

		svc := newTestUserService(userRepo, blobs)
		svc.normalizeImage = func(_ string) (string, string, error) { return "/tmp/avatar.webp", "image/webp", nil }
		_, err := svc.UpdateAvatar(ctx, 1, "/tmp/avatar.png")
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.NotEmpty(t, updated.Avatar)
		assert.Equal(t, "/tmp/avatar.webp", uploadedPath)
		assert.Equal(t, "image/webp", uploadedType)
	})
}
