package customer

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*GroupStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewGroupStore(db)
	require.NoError(t, err)
	return store, mock
}

func TestNewGroupStore_RequiresDB(t *testing.T) {
	_, err := NewGroupStore(nil)
	assert.Error(t, err)
}

func TestGroupStore_GroupName(t *testing.T) {
	t.Run("resolves the group code", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT customer_group_code FROM customer_group`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_group_code"}).AddRow("Wholesale"))

		name, err := store.GroupName(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "Wholesale", name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("caches resolved names", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT customer_group_code FROM customer_group`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_group_code"}).AddRow("General"))

		_, err := store.GroupName(context.Background(), 1)
		require.NoError(t, err)

		// Second lookup must be served from the cache; the mock would fail
		// on an unexpected query.
		name, err := store.GroupName(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "General", name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id is an error", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT customer_group_code FROM customer_group`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := store.GroupName(context.Background(), 99)
		assert.Error(t, err)
	})
}
