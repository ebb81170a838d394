package repository

import (
	"context"
	"fmt"

	"cliptide/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines interface for like toggle operations
type LikeRepository interface {
	ToggleVideo(ctx context.Context, ownerID, videoID uint) (liked bool, err error)
	ToggleComment(ctx context.Context, ownerID, commentID uint) (liked bool, err error)
	ToggleTweet(ctx context.Context, ownerID, tweetID uint) (liked bool, err error)
	ListLikedVideos(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Video, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) ToggleVideo(ctx context.Context, ownerID, videoID uint) (bool, error) {
	return r.toggle(ctx, "video_id", ownerID, videoID)
}

func (r *likeRepository) ToggleComment(ctx context.Context, ownerID, commentID uint) (bool, error) {
	return r.toggle(ctx, "comment_id", ownerID, commentID)
}

func (r *likeRepository) ToggleTweet(ctx context.Context, ownerID, tweetID uint) (bool, error) {
	return r.toggle(ctx, "tweet_id", ownerID, tweetID)
}

// toggle flips the like state for one user and one target atomically. The
// delete-then-insert transaction plus the partial unique index means two
// concurrent toggles can never leave a duplicate row behind.
func (r *likeRepository) toggle(ctx context.Context, column string, ownerID, targetID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(fmt.Sprintf("DELETE FROM likes WHERE owner_id = ? AND %s = ?", column), ownerID, targetID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		insert := fmt.Sprintf(
			"INSERT INTO likes (owner_id, %s, kind, created_at) VALUES (?, ?, 'like', NOW()) ON CONFLICT DO NOTHING",
			column,
		)
		if err := tx.Exec(insert, ownerID, targetID).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return liked, nil
}

// ListLikedVideos returns published videos the user has liked, most recently
// liked first, with counts and liked status computed for the same user.
func (r *likeRepository) ListLikedVideos(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Video, error) {
	selectQuery := "videos.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes l2 WHERE l2.video_id = videos.id) as likes_count, " +
		"true as liked"

	var videos []*models.Video
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select(selectQuery).
		Joins("JOIN likes ON likes.video_id = videos.id").
		Where("likes.owner_id = ? AND videos.is_published = ?", ownerID, true).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Owner", ownerFields).
		Find(&videos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}
