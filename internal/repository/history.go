package repository

import (
	"context"

	"cliptide/internal/models"

	"gorm.io/gorm"
)

// HistoryRepository defines interface for watch history operations
type HistoryRepository interface {
	Upsert(ctx context.Context, userID, videoID uint) error
	ListVideos(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error)
	Remove(ctx context.Context, userID, videoID uint) error
	Clear(ctx context.Context, userID uint) error
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Upsert records a watch, bumping watched_at when the entry already exists
// so rewatches float back to the top of the history feed.
func (r *historyRepository) Upsert(ctx context.Context, userID, videoID uint) error {
	err := r.db.WithContext(ctx).Exec(
		"INSERT INTO watch_history (user_id, video_id, watched_at) VALUES (?, ?, NOW()) "+
			"ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW()",
		userID, videoID,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListVideos returns the user's watched videos, most recent first, with the
// watch timestamp exposed alongside the usual counts.
func (r *historyRepository) ListVideos(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	selectQuery := "videos.*, watch_history.watched_at as watched_at, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) as likes_count, " +
		"EXISTS(SELECT 1 FROM likes WHERE likes.video_id = videos.id AND likes.owner_id = ?) as liked"

	var videos []*models.Video
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select(selectQuery, userID).
		Joins("JOIN watch_history ON watch_history.video_id = videos.id").
		Where("watch_history.user_id = ?", userID).
		Order("watch_history.watched_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Owner", ownerFields).
		Find(&videos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

func (r *historyRepository) Remove(ctx context.Context, userID, videoID uint) error {
	res := r.db.WithContext(ctx).Exec(
		"DELETE FROM watch_history WHERE user_id = ? AND video_id = ?",
		userID, videoID,
	)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video", videoID)
	}
	return nil
}

func (r *historyRepository) Clear(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM watch_history WHERE user_id = ?", userID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
