package repository

import (
	"context"
	"errors"

	"cliptide/internal/cache"
	"cliptide/internal/models"

	"gorm.io/gorm"
)

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Video, error)
	List(ctx context.Context, limit, offset int, currentUserID uint, sort string) ([]*models.Video, error)
	GetByOwner(ctx context.Context, ownerID uint, limit, offset int, currentUserID uint, includeUnpublished bool) ([]*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

// videoRepository implements VideoRepository
type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Video, error) {
	var video models.Video
	key := cache.VideoKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, key, &video, cache.VideoTTL, func() error {
			return r.applyVideoDetails(r.db.WithContext(ctx), 0).
				Preload("Owner", ownerFields).
				First(&video, id).Error
		})
	} else {
		err = r.applyVideoDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Owner", ownerFields).
			First(&video, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Video", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, limit, offset int, currentUserID uint, sort string) ([]*models.Video, error) {
	var videos []*models.Video
	base := r.applyVideoDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Owner", ownerFields).
		Where("videos.is_published = ?", true)
	err := r.applySort(base, sort).
		Limit(limit).
		Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

func (r *videoRepository) GetByOwner(ctx context.Context, ownerID uint, limit, offset int, currentUserID uint, includeUnpublished bool) ([]*models.Video, error) {
	var videos []*models.Video
	db := r.applyVideoDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Owner", ownerFields).
		Where("videos.owner_id = ?", ownerID)
	if !includeUnpublished {
		db = db.Where("videos.is_published = ?", true)
	}
	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
// likes_count is a SELECT alias from applyVideoDetails; PostgreSQL allows
// referencing it in ORDER BY within the same query level.
func (r *videoRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "top":
		return db.Order("likes_count DESC, created_at DESC")
	case "popular":
		return db.Order("views DESC, created_at DESC")
	default: // "new" and anything unrecognized
		return db.Order("created_at DESC")
	}
}

// applyVideoDetails adds subqueries to fetch counts and liked status in a single query.
func (r *videoRepository) applyVideoDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "videos.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.video_id = videos.id AND likes.owner_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, video.ID)
	return nil
}

// Delete removes the video and everything hanging off it: likes on the video
// and on its comments, the comments themselves, playlist entries, and watch
// history, all in one transaction.
func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM likes WHERE comment_id IN (SELECT id FROM comments WHERE video_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM likes WHERE video_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM playlist_videos WHERE video_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM watch_history WHERE video_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}
