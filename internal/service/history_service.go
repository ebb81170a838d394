package service

import (
	"context"

	"cliptide/internal/models"
	"cliptide/internal/repository"
)

type HistoryService struct {
	historyRepo repository.HistoryRepository
}

func NewHistoryService(historyRepo repository.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// ListWatchHistory returns the user's watched videos, most recent first.
func (s *HistoryService) ListWatchHistory(ctx context.Context, userID uint, limit, offset int) ([]*models.Video, error) {
	return s.historyRepo.ListVideos(ctx, userID, limit, offset)
}

// RemoveFromHistory drops a single video from the user's history.
func (s *HistoryService) RemoveFromHistory(ctx context.Context, userID, videoID uint) error {
	return s.historyRepo.Remove(ctx, userID, videoID)
}

// ClearHistory wipes the user's entire watch history.
func (s *HistoryService) ClearHistory(ctx context.Context, userID uint) error {
	return s.historyRepo.Clear(ctx, userID)
}
