package service

import (
	"context"
	"testing"

	"cliptide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playlistRepoStub is a stub for repository.PlaylistRepository.
type playlistRepoStub struct {
	createFn      func(context.Context, *models.Playlist) error
	getByIDFn     func(context.Context, uint) (*models.Playlist, error)
	listByOwnerFn func(context.Context, uint) ([]*models.Playlist, error)
	updateFn      func(context.Context, *models.Playlist) error
	deleteFn      func(context.Context, uint) error
	addVideoFn    func(context.Context, uint, uint) error
	removeVideoFn func(context.Context, uint, uint) error
}

func (s *playlistRepoStub) Create(ctx context.Context, playlist *models.Playlist) error {
	return s.createFn(ctx, playlist)
}
func (s *playlistRepoStub) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	return s.getByIDFn(ctx, id)
}
func (s *playlistRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Playlist, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *playlistRepoStub) Update(ctx context.Context, playlist *models.Playlist) error {
	return s.updateFn(ctx, playlist)
}
func (s *playlistRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *playlistRepoStub) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	return s.addVideoFn(ctx, playlistID, videoID)
}
func (s *playlistRepoStub) RemoveVideo(ctx context.Context, playlistID, videoID uint) error {
	return s.removeVideoFn(ctx, playlistID, videoID)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		createFn: func(_ context.Context, _ *models.Playlist) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Playlist, error) {
			return &models.Playlist{ID: id, OwnerID: 1, Name: "Favorites"}, nil
		},
		listByOwnerFn: func(_ context.Context, _ uint) ([]*models.Playlist, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Playlist) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		addVideoFn:    func(_ context.Context, _, _ uint) error { return nil },
		removeVideoFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

func TestPlaylistService_CreatePlaylist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("name is required", func(t *testing.T) {
		t.Parallel()
		svc := NewPlaylistService(noopPlaylistRepo(), noopVideoRepo())
		_, err := svc.CreatePlaylist(ctx, CreatePlaylistInput{UserID: 1, Name: "   "})
		assertValidationError(t, err)
	})

	t.Run("trims name and description", func(t *testing.T) {
		t.Parallel()
		playlistRepo := noopPlaylistRepo()
		var created *models.Playlist
		playlistRepo.createFn = func(_ context.Context, playlist *models.Playlist) error {
			playlist.ID = 3
			created = playlist
			return nil
		}
		svc := NewPlaylistService(playlistRepo, noopVideoRepo())
		_, err := svc.CreatePlaylist(ctx, CreatePlaylistInput{UserID: 1, Name: " Favorites ", Description: " best clips "})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Favorites", created.Name)
		assert.Equal(t, "best clips", created.Description)
		assert.Equal(t, uint(1), created.OwnerID)
	})
}

func TestPlaylistService_UpdatePlaylist(t *testing.T) {
	t.Parallel()

	svc := NewPlaylistService(noopPlaylistRepo(), noopVideoRepo())
	_, err := svc.UpdatePlaylist(context.Background(), UpdatePlaylistInput{UserID: 42, PlaylistID: 3, Name: "new"})
	assertForbiddenError(t, err)
}

func TestPlaylistService_DeletePlaylist(t *testing.T) {
	t.Parallel()

	t.Run("only owner may delete", func(t *testing.T) {
		t.Parallel()
		svc := NewPlaylistService(noopPlaylistRepo(), noopVideoRepo())
		err := svc.DeletePlaylist(context.Background(), 42, 3)
		assertForbiddenError(t, err)
	})

	t.Run("owner delete succeeds", func(t *testing.T) {
		t.Parallel()
		deleted := false
		playlistRepo := noopPlaylistRepo()
		playlistRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewPlaylistService(playlistRepo, noopVideoRepo())
		err := svc.DeletePlaylist(context.Background(), 1, 3)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestPlaylistService_AddVideoToPlaylist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("only owner may add", func(t *testing.T) {
		t.Parallel()
		svc := NewPlaylistService(noopPlaylistRepo(), noopVideoRepo())
		_, err := svc.AddVideoToPlaylist(ctx, PlaylistVideoInput{UserID: 42, PlaylistID: 3, VideoID: 2})
		assertForbiddenError(t, err)
	})

	t.Run("missing video", func(t *testing.T) {
		t.Parallel()
		videoRepo := noopVideoRepo()
		videoRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Video, error) {
			return nil, models.NewNotFoundError("Video", 2)
		}
		svc := NewPlaylistService(noopPlaylistRepo(), videoRepo)
		_, err := svc.AddVideoToPlaylist(ctx, PlaylistVideoInput{UserID: 1, PlaylistID: 3, VideoID: 2})
		assertNotFoundError(t, err)
	})

	t.Run("duplicate add surfaces validation error", func(t *testing.T) {
		t.Parallel()
		playlistRepo := noopPlaylistRepo()
		playlistRepo.addVideoFn = func(_ context.Context, _, _ uint) error {
			return models.NewValidationError("Video is already in this playlist")
		}
		svc := NewPlaylistService(playlistRepo, noopVideoRepo())
		_, err := svc.AddVideoToPlaylist(ctx, PlaylistVideoInput{UserID: 1, PlaylistID: 3, VideoID: 2})
		assertValidationError(t, err)
	})
}

func TestPlaylistService_RemoveVideoFromPlaylist(t *testing.T) {
	t.Parallel()

	playlistRepo := noopPlaylistRepo()
	removed := false
	playlistRepo.removeVideoFn = func(_ context.Context, playlistID, videoID uint) error {
		removed = true
		assert.Equal(t, uint(3), playlistID)
		assert.Equal(t, uint(2), videoID)
		return nil
	}
	svc := NewPlaylistService(playlistRepo, noopVideoRepo())
	_, err := svc.RemoveVideoFromPlaylist(context.Background(), PlaylistVideoInput{UserID: 1, PlaylistID: 3, VideoID: 2})
	require.NoError(t, err)
	assert.True(t, removed)
}
