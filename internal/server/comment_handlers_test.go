package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cliptide/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID, currentUserID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, videoID, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVideoRepository is a mock of the VideoRepository interface
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id, currentUserID uint) (*models.Video, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) List(ctx context.Context, limit, offset int, currentUserID uint, sort string) ([]*models.Video, error) {
	args := m.Called(ctx, limit, offset, currentUserID, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByOwner(ctx context.Context, ownerID uint, limit, offset int, currentUserID uint, includeUnpublished bool) ([]*models.Video, error) {
	args := m.Called(ctx, ownerID, limit, offset, currentUserID, includeUnpublished)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockVideoRepository) Update(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) IncrementViews(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateComment(t *testing.T) {
	app := fiber.New()
	commentRepo := new(MockCommentRepository)
	videoRepo := new(MockVideoRepository)
	s := &Server{commentRepo: commentRepo, videoRepo: videoRepo}

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Post("/videos/:videoId/comments", s.CreateComment)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"content": "Great video"},
			mockSetup: func() {
				videoRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
					Return(&models.Video{ID: 5, IsPublished: true}, nil)
				commentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				commentRepo.On("GetByID", mock.Anything, mock.Anything).
					Return(&models.Comment{ID: 1, Content: "Great video", VideoID: 5}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Empty Content",
			body: map[string]string{"content": "   "},
			mockSetup: func() {
				videoRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
					Return(&models.Video{ID: 5, IsPublished: true}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/videos/5/comments", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetComments(t *testing.T) {
	app := fiber.New()
	commentRepo := new(MockCommentRepository)
	videoRepo := new(MockVideoRepository)
	s := &Server{commentRepo: commentRepo, videoRepo: videoRepo}

	videoRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
		Return(&models.Video{ID: 5, IsPublished: true}, nil)
	commentRepo.On("ListByVideo", mock.Anything, uint(5), uint(0)).
		Return([]*models.Comment{{ID: 1, Content: "first"}, {ID: 2, Content: "second"}}, nil)

	app.Get("/videos/:videoId/comments", s.GetComments)

	req := httptest.NewRequest(http.MethodGet, "/videos/5/comments", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
}

func TestDeleteComment_NotOwner(t *testing.T) {
	app := fiber.New()
	commentRepo := new(MockCommentRepository)
	videoRepo := new(MockVideoRepository)
	s := &Server{commentRepo: commentRepo, videoRepo: videoRepo}

	commentRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Comment{ID: 3, OwnerID: 2, VideoID: 5}, nil)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Delete("/videos/comments/:commentId", s.DeleteComment)

	req := httptest.NewRequest(http.MethodDelete, "/videos/comments/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
