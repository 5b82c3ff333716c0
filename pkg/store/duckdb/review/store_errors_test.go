package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Driver-level failures are injected with sqlmock; the in-memory database
// cannot produce them.
func setupMockDB(t *testing.T) (Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st, err := NewStore(db)
	require.NoError(t, err)
	return st, mock
}

func TestReviewStore_QueryFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("create - exec failure", func(t *testing.T) {
		st, mock := setupMockDB(t)
		mock.ExpectExec("INSERT INTO reviews").WillReturnError(fmt.Errorf("io error"))

		err := st.Create(ctx, pendingReview("rev-1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert review")
	})

	t.Run("get latest - query failure", func(t *testing.T) {
		st, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT .* FROM reviews").WillReturnError(fmt.Errorf("io error"))

		_, err := st.GetLatest(ctx, "rev-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("list - query failure", func(t *testing.T) {
		st, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT .* FROM reviews").WillReturnError(fmt.Errorf("io error"))

		_, _, err := st.List(ctx, 10, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query reviews")
	})

	t.Run("update status - exec failure", func(t *testing.T) {
		st, mock := setupMockDB(t)
		mock.ExpectExec("UPDATE reviews").WillReturnError(fmt.Errorf("io error"))

		err := st.UpdateStatus(ctx, "rev-1", "FAILED", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "update review status")
	})

	t.Run("update status - zero rows is not found", func(t *testing.T) {
		st, mock := setupMockDB(t)
		mock.ExpectExec("UPDATE reviews").WillReturnResult(sqlmock.NewResult(0, 0))

		err := st.UpdateStatus(ctx, "rev-1", "FAILED", nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save results - zero rows is not found", func(t *testing.T) {
		st, mock := setupMockDB(t)
		mock.ExpectExec("UPDATE reviews").WillReturnResult(sqlmock.NewResult(0, 0))

		err := st.SaveResults(ctx, "rev-1", nil, nil, 75.0)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
