package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_Toggle_Subscribe(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	// No existing row to delete, so the toggle inserts.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM subscriptions WHERE subscriber_id = \$1 AND channel_id = \$2`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO subscriptions \(subscriber_id, channel_id, created_at\)`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	subscribed, err := repo.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, subscribed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_Toggle_Unsubscribe(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM subscriptions WHERE subscriber_id = \$1 AND channel_id = \$2`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	subscribed, err := repo.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, subscribed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_CountForChannel(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "subscriptions"`).
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountForChannel(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
