package server

import (
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

// MockHistoryRepository is a mock of the HistoryRepository interface
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Upsert(ctx context.Context, userID, videoID uint) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListVideos(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockHistoryRepository) Remove(ctx context.Context, userID, videoID uint) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

func (m *MockHistoryRepository) Clear(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestGetVideos(t *testing.T) {
	app := fiber.New()
	videoRepo := new(MockVideoRepository)
	s := &Server{videoRepo: videoRepo}

	videoRepo.On("List", mock.Anything, 2, 0, uint(0), "new").
		Return([]*models.Video{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}}, nil)

	app.Get("/videos", s.GetVideos)

	req := httptest.NewRequest(http.MethodGet, "/videos?limit=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["hasMore"])
	videoRepo.AssertExpectations(t)
}

func TestGetVideo_AnonymousCountsView(t *testing.T) {
	app := fiber.New()
	videoRepo := new(MockVideoRepository)
	historyRepo := new(MockHistoryRepository)
	s := &Server{videoRepo: videoRepo, historyRepo: historyRepo}

	videoRepo.On("GetByID", mock.Anything, uint(7), uint(0)).
		Return(&models.Video{ID: 7, IsPublished: true, Views: 3}, nil)
	videoRepo.On("IncrementViews", mock.Anything, uint(7)).Return(nil)

	app.Get("/videos/:id", s.GetVideo)

	req := httptest.NewRequest(http.MethodGet, "/videos/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), data["views"])

	// No history row without a logged-in viewer.
	historyRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	videoRepo.AssertExpectations(t)
}

func TestGetVideo_UnpublishedHiddenFromPublic(t *testing.T) {
	app := fiber.New()
	videoRepo := new(MockVideoRepository)
	s := &Server{videoRepo: videoRepo}

	videoRepo.On("GetByID", mock.Anything, uint(7), uint(0)).
		Return(&models.Video{ID: 7, OwnerID: 2, IsPublished: false}, nil)

	app.Get("/videos/:id", s.GetVideo)

	req := httptest.NewRequest(http.MethodGet, "/videos/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteVideo_NotOwner(t *testing.T) {
	app := fiber.New()
	videoRepo := new(MockVideoRepository)
	s := &Server{videoRepo: videoRepo}

	videoRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Video{ID: 7, OwnerID: 2, IsPublished: true}, nil)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Delete("/videos/:id", s.DeleteVideo)

	req := httptest.NewRequest(http.MethodDelete, "/videos/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	videoRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTogglePublish(t *testing.T) {
	app := fiber.New()
	videoRepo := new(MockVideoRepository)
	s := &Server{videoRepo: videoRepo}

	videoRepo.On("GetByID", mock.Anything, uint(7), uint(2)).
		Return(&models.Video{ID: 7, OwnerID: 2, IsPublished: true}, nil)
	videoRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(2))
		return c.Next()
	})
	app.Patch("/videos/:id/publish", s.TogglePublish)

	req := httptest.NewRequest(http.MethodPatch, "/videos/7/publish", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Video unpublished", body.Message)
}
