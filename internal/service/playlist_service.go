package service

import (
	"context"
	"strings"

	"cliptide/internal/models"
	"cliptide/internal/repository"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

type CreatePlaylistInput struct {
	UserID      uint
	Name        string
	Description string
}

type UpdatePlaylistInput struct {
	UserID      uint
	PlaylistID  uint
	Name        string
	Description string
}

type PlaylistVideoInput struct {
	UserID     uint
	PlaylistID uint
	VideoID    uint
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	playlist := &models.Playlist{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		OwnerID:     in.UserID,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}

	return s.playlistRepo.GetByID(ctx, playlist.ID)
}

func (s *PlaylistService) GetPlaylist(ctx context.Context, id uint) (*models.Playlist, error) {
	return s.playlistRepo.GetByID(ctx, id)
}

func (s *PlaylistService) ListUserPlaylists(ctx context.Context, ownerID uint) ([]*models.Playlist, error) {
	return s.playlistRepo.ListByOwner(ctx, ownerID)
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, in.PlaylistID)
	if err != nil {
		return nil, err
	}

	if playlist.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own playlists")
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		playlist.Name = name
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		playlist.Description = desc
	}

	// Save only the playlist row; Entries were preloaded for the read.
	playlist.Entries = nil
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}

	return s.playlistRepo.GetByID(ctx, playlist.ID)
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, userID, playlistID uint) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}

	if playlist.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own playlists")
	}

	return s.playlistRepo.Delete(ctx, playlistID)
}

func (s *PlaylistService) AddVideoToPlaylist(ctx context.Context, in PlaylistVideoInput) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, in.PlaylistID)
	if err != nil {
		return nil, err
	}

	if playlist.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only modify your own playlists")
	}

	if _, err := s.videoRepo.GetByID(ctx, in.VideoID, 0); err != nil {
		return nil, err
	}

	if err := s.playlistRepo.AddVideo(ctx, in.PlaylistID, in.VideoID); err != nil {
		return nil, err
	}

	return s.playlistRepo.GetByID(ctx, in.PlaylistID)
}

func (s *PlaylistService) RemoveVideoFromPlaylist(ctx context.Context, in PlaylistVideoInput) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, in.PlaylistID)
	if err != nil {
		return nil, err
	}

	if playlist.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only modify your own playlists")
	}

	if err := s.playlistRepo.RemoveVideo(ctx, in.PlaylistID, in.VideoID); err != nil {
		return nil, err
	}

	return s.playlistRepo.GetByID(ctx, in.PlaylistID)
}
