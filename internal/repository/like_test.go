package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_ToggleVideo_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	// No existing row to delete, so the toggle inserts.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM likes WHERE owner_id = \$1 AND video_id = \$2`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO likes \(owner_id, video_id, kind, created_at\)`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	liked, err := repo.ToggleVideo(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleVideo_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM likes WHERE owner_id = \$1 AND video_id = \$2`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := repo.ToggleVideo(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM likes WHERE owner_id = \$1 AND comment_id = \$2`).
		WithArgs(uint(3), uint(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO likes \(owner_id, comment_id, kind, created_at\)`).
		WithArgs(uint(3), uint(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	liked, err := repo.ToggleComment(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
