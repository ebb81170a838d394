package service

import (
	"context"
	"path/filepath"
	"strings"

	"cliptide/internal/models"
	"cliptide/internal/repository"
	"cliptide/internal/storage"
)

type VideoService struct {
	videoRepo   repository.VideoRepository
	historyRepo repository.HistoryRepository
	blobs       storage.Store

	// Swappable for tests; default to the ffmpeg and webp backed implementations.
	probeDuration    func(path string) (float64, error)
	extractThumbnail func(videoPath, outputDir string) (string, error)
	normalizeImage   func(path string) (string, string, error)
}

type PublishVideoInput struct {
	UserID        uint
	Title         string
	Description   string
	VideoPath     string
	VideoType     string
	ThumbnailPath string
}

type ListVideosInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Sort          string
}

type UpdateVideoInput struct {
	UserID        uint
	VideoID       uint
	Title         string
	Description   string
	ThumbnailPath string
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	historyRepo repository.HistoryRepository,
	blobs storage.Store,
) *VideoService {
	return &VideoService{
		videoRepo:        videoRepo,
		historyRepo:      historyRepo,
		blobs:            blobs,
		probeDuration:    storage.ProbeDuration,
		extractThumbnail: storage.ExtractThumbnail,
		normalizeImage:   storage.NormalizeImage,
	}
}

// PublishVideo probes the uploaded file, generates a thumbnail when none was
// provided, pushes both to the blob store and creates the video record.
func (s *VideoService) PublishVideo(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.VideoPath == "" {
		return nil, models.NewValidationError("Video file is required")
	}

	duration, err := s.probeDuration(in.VideoPath)
	if err != nil {
		return nil, models.NewValidationError("Uploaded file is not a readable video")
	}

	thumbnailPath := in.ThumbnailPath
	thumbnailType := "image/jpeg"
	if thumbnailPath == "" {
		thumbnailPath, err = s.extractThumbnail(in.VideoPath, filepath.Dir(in.VideoPath))
		if err != nil {
			return nil, models.NewInternalError(err)
		}
	} else {
		thumbnailPath, thumbnailType, err = s.normalizeImage(thumbnailPath)
		if err != nil {
			return nil, models.NewValidationError("Thumbnail is not a valid image")
		}
	}

	videoURL, videoKey, err := s.blobs.Upload(ctx, in.VideoPath, in.VideoType, storage.KindVideo)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	thumbURL, thumbKey, err := s.blobs.Upload(ctx, thumbnailPath, thumbnailType, storage.KindThumbnail)
	if err != nil {
		s.blobs.Remove(ctx, videoKey, storage.KindVideo)
		return nil, models.NewInternalError(err)
	}

	video := &models.Video{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		FilePath:     videoURL,
		FileKey:      videoKey,
		Thumbnail:    thumbURL,
		ThumbnailKey: thumbKey,
		Duration:     duration,
		IsPublished:  true,
		OwnerID:      in.UserID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	return s.videoRepo.GetByID(ctx, video.ID, in.UserID)
}

func (s *VideoService) ListVideos(ctx context.Context, in ListVideosInput) ([]*models.Video, error) {
	return s.videoRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID, in.Sort)
}

func (s *VideoService) GetUserVideos(ctx context.Context, ownerID uint, limit, offset int, currentUserID uint) ([]*models.Video, error) {
	// Owners see their own unpublished videos in the channel list.
	includeUnpublished := ownerID == currentUserID
	return s.videoRepo.GetByOwner(ctx, ownerID, limit, offset, currentUserID, includeUnpublished)
}

// GetVideo fetches a video for display. Unpublished videos are visible to
// their owner only; everyone else gets a not-found.
func (s *VideoService) GetVideo(ctx context.Context, id, currentUserID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != currentUserID {
		return nil, models.NewNotFoundError("Video", id)
	}
	return video, nil
}

// WatchVideo is GetVideo plus the side effects of a view: the counter is
// bumped and the watch lands in the viewer's history.
func (s *VideoService) WatchVideo(ctx context.Context, id, currentUserID uint) (*models.Video, error) {
	video, err := s.GetVideo(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	video.Views++

	if currentUserID != 0 {
		if err := s.historyRepo.Upsert(ctx, currentUserID, id); err != nil {
			return nil, err
		}
	}

	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID, in.UserID)
	if err != nil {
		return nil, err
	}

	if video.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own videos")
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		video.Title = title
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		video.Description = desc
	}

	if in.ThumbnailPath != "" {
		thumbPath, thumbType, err := s.normalizeImage(in.ThumbnailPath)
		if err != nil {
			return nil, models.NewValidationError("Thumbnail is not a valid image")
		}
		thumbURL, thumbKey, err := s.blobs.Upload(ctx, thumbPath, thumbType, storage.KindThumbnail)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if video.ThumbnailKey != "" {
			s.blobs.Remove(ctx, video.ThumbnailKey, storage.KindThumbnail)
		}
		video.Thumbnail = thumbURL
		video.ThumbnailKey = thumbKey
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}

	return s.videoRepo.GetByID(ctx, video.ID, in.UserID)
}

// TogglePublish flips the video's published flag and returns the new state.
func (s *VideoService) TogglePublish(ctx context.Context, userID, videoID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	if video.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only publish your own videos")
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

// DeleteVideo removes the record with all dependents, then clears the stored
// objects. Blob removal is best-effort; the record is already gone.
func (s *VideoService) DeleteVideo(ctx context.Context, userID, videoID uint) error {
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return err
	}

	if video.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own videos")
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}

	if s.blobs != nil {
		s.blobs.Remove(ctx, video.FileKey, storage.KindVideo)
		s.blobs.Remove(ctx, video.ThumbnailKey, storage.KindThumbnail)
	}
	return nil
}
