package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		mockDB.Close()
	})
	return sqlx.NewDb(mockDB, DriverName), mock
}

func TestNewDB(t *testing.T) {
	t.Run("empty dsn", func(t *testing.T) {
		db, err := NewDB(Settings{})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("lazy open", func(t *testing.T) {
		db, err := NewDB(Settings{DSN: "postgres://localhost:1/fleet?sslmode=disable", MaxOpenConns: 3})
		require.NoError(t, err)
		defer db.Close()
		assert.Equal(t, 3, db.Stats().MaxOpenConnections)
	})
}

func TestInTransaction(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var seen *sqlx.Tx
		err := InTransaction(context.Background(), db, func(ctx context.Context) error {
			seen = GetTransaction(ctx)
			return nil
		})
		require.NoError(t, err)
		assert.NotNil(t, seen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := InTransaction(context.Background(), db, func(ctx context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reuses outer transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()

		tx, err := db.Beginx()
		require.NoError(t, err)
		ctx := WithTransaction(context.Background(), tx)

		err = InTransaction(ctx, db, func(inner context.Context) error {
			assert.Same(t, tx, GetTransaction(inner))
			return nil
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAfterCommit(t *testing.T) {
	t.Run("without transaction runs immediately", func(t *testing.T) {
		ran := false
		AfterCommit(context.Background(), func() { ran = true })
		assert.True(t, ran)
	})

	t.Run("runs after commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ran := false
		err := InTransaction(context.Background(), db, func(ctx context.Context) error {
			AfterCommit(ctx, func() { ran = true })
			assert.False(t, ran)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested scope waits for the outer commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var order []string
		err := InTransaction(context.Background(), db, func(ctx context.Context) error {
			err := InTransaction(ctx, db, func(inner context.Context) error {
				AfterCommit(inner, func() { order = append(order, "inner") })
				return nil
			})
			order = append(order, "outer body")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"outer body", "inner"}, order)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dropped on rollback", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ran := false
		err := InTransaction(context.Background(), db, func(ctx context.Context) error {
			AfterCommit(ctx, func() { ran = true })
			return errors.New("boom")
		})
		assert.Error(t, err)
		assert.False(t, ran)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dropped when commit fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

		ran := false
		err := InTransaction(context.Background(), db, func(ctx context.Context) error {
			AfterCommit(ctx, func() { ran = true })
			return nil
		})
		assert.ErrorContains(t, err, "commit transaction")
		assert.False(t, ran)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuerier(t *testing.T) {
	db, mock := newMockDB(t)
	assert.Equal(t, db, Querier(context.Background(), db))

	mock.ExpectBegin()
	tx, err := db.Beginx()
	require.NoError(t, err)
	assert.Equal(t, tx, Querier(WithTransaction(context.Background(), tx), db))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	db, err := Connect(context.Background(), Settings{DSN: dsn})
	require.NoError(t, err)
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	require.NoError(t, Migrate(db.DB, Up))
	// second run is a no-op
	require.NoError(t, Migrate(db.DB, Up))

	var count int
	err = db.Get(&count, `SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'fleet_scores'`)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, Migrate(db.DB, Down))
}
