package service

import (
	"context"
	"strings"

	"cliptide/internal/models"
	"cliptide/internal/repository"
)

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

type CreateTweetInput struct {
	UserID  uint
	Content string
}

type UpdateTweetInput struct {
	UserID  uint
	TweetID uint
	Content string
}

type DeleteTweetInput struct {
	UserID  uint
	TweetID uint
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
	}
}

const maxTweetLen = 280

func (s *TweetService) CreateTweet(ctx context.Context, in CreateTweetInput) (*models.Tweet, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxTweetLen {
		return nil, models.NewValidationError("Tweet too long (max 280 characters)")
	}

	tweet := &models.Tweet{
		Content: content,
		OwnerID: in.UserID,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	return s.tweetRepo.GetByID(ctx, tweet.ID)
}

func (s *TweetService) ListUserTweets(ctx context.Context, ownerID, currentUserID uint) ([]*models.Tweet, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.tweetRepo.ListByOwner(ctx, ownerID, currentUserID)
}

func (s *TweetService) UpdateTweet(ctx context.Context, in UpdateTweetInput) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID)
	if err != nil {
		return nil, err
	}

	if tweet.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own tweets")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxTweetLen {
		return nil, models.NewValidationError("Tweet too long (max 280 characters)")
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}

	return s.tweetRepo.GetByID(ctx, tweet.ID)
}

func (s *TweetService) DeleteTweet(ctx context.Context, in DeleteTweetInput) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID)
	if err != nil {
		return nil, err
	}

	if tweet.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own tweets")
	}

	if err := s.tweetRepo.Delete(ctx, in.TweetID); err != nil {
		return nil, err
	}

	return tweet, nil
}
