package service

import (
	"context"

	"cliptide/internal/models"
	"cliptide/internal/repository"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// ToggleVideoLike flips the like and reports the resulting state.
func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID uint) (bool, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID, 0); err != nil {
		return false, err
	}
	return s.likeRepo.ToggleVideo(ctx, userID, videoID)
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return false, err
	}
	return s.likeRepo.ToggleComment(ctx, userID, commentID)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, userID, tweetID uint) (bool, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return false, err
	}
	return s.likeRepo.ToggleTweet(ctx, userID, tweetID)
}

func (s *LikeService) GetLikedVideos(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	return s.likeRepo.ListLikedVideos(ctx, userID, limit, offset)
}
