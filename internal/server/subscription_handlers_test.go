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

// MockSubscriptionRepository is a mock of the SubscriptionRepository interface
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscribers(ctx context.Context, channelID uint) ([]*models.User, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockSubscriptionRepository) ListChannels(ctx context.Context, subscriberID uint) ([]*models.User, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockSubscriptionRepository) CountForChannel(ctx context.Context, channelID uint) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func TestGetChannelSubscribers_TotalFromChannelCount(t *testing.T) {
	app := fiber.New()
	subRepo := new(MockSubscriptionRepository)
	userRepo := new(MockUserRepository)
	s := &Server{subscriptionRepo: subRepo, userRepo: userRepo}

	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "bob"}, nil)
	// The page shows two subscribers but the channel has five in total.
	subRepo.On("ListSubscribers", mock.Anything, uint(2)).
		Return([]*models.User{{ID: 7}, {ID: 8}}, nil)
	subRepo.On("CountForChannel", mock.Anything, uint(2)).
		Return(int64(5), nil)
	subRepo.On("IsSubscribed", mock.Anything, uint(1), uint(2)).
		Return(true, nil)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/subscriptions/u/:channelId", s.GetChannelSubscribers)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/u/2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), data["totalSubscribers"])
	assert.Equal(t, true, data["isSubscribed"])
	subRepo.AssertCalled(t, "CountForChannel", mock.Anything, uint(2))
}

func TestToggleSubscription_SelfSubscribe(t *testing.T) {
	app := fiber.New()
	subRepo := new(MockSubscriptionRepository)
	userRepo := new(MockUserRepository)
	s := &Server{subscriptionRepo: subRepo, userRepo: userRepo}

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(2))
		return c.Next()
	})
	app.Post("/subscriptions/c/:channelId", s.ToggleSubscription)

	req := httptest.NewRequest(http.MethodPost, "/subscriptions/c/2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	subRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
}
