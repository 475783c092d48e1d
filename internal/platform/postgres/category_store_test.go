package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/lessonboard/lessonboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryStore(t *testing.T) (*PostgresCategoryStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log, _ := logger.GetTestLogger(t)
	return NewPostgresCategoryStore(db, log), mock
}

func TestPostgresCategoryStore_Create(t *testing.T) {
	s, mock := newCategoryStore(t)

	category, err := domain.NewCategory("Math", "Numbers and such")
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Math", "Numbers and such", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, s.Create(context.Background(), category))
	assert.Equal(t, int64(1), category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryStore_CreateRejectsInvalid(t *testing.T) {
	s, mock := newCategoryStore(t)

	err := s.Create(context.Background(), &domain.Category{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryStore_GetByID(t *testing.T) {
	s, mock := newCategoryStore(t)
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM categories WHERE id = \\$1").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
				AddRow(int64(7), "Science", "", now, now))

		category, err := s.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), category.ID)
		assert.Equal(t, "Science", category.Name)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM categories WHERE id = \\$1").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}))

		_, err := s.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryStore_Update(t *testing.T) {
	s, mock := newCategoryStore(t)
	category := &domain.Category{ID: 3, Name: "History", UpdatedAt: time.Now().UTC()}

	mock.ExpectExec("UPDATE categories").
		WithArgs("History", "", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Update(context.Background(), category))

	mock.ExpectExec("UPDATE categories").
		WithArgs("History", "", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Update(context.Background(), category), store.ErrCategoryNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryStore_Delete(t *testing.T) {
	s, mock := newCategoryStore(t)

	mock.ExpectExec("DELETE FROM categories").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Delete(context.Background(), 1))

	mock.ExpectExec("DELETE FROM categories").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Delete(context.Background(), 1), store.ErrCategoryNotFound)

	mock.ExpectExec("DELETE FROM categories").WithArgs(int64(2)).
		WillReturnError(newPgError(foreignKeyViolationCode, "lessons_category_id_fkey"))
	err := s.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, store.ErrCategoryInUse)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryStore_ListAndCount(t *testing.T) {
	s, mock := newCategoryStore(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
		AddRow(int64(26), "A", "", now, now).
		AddRow(int64(27), "B", "", now, now)
	mock.ExpectQuery("SELECT (.+) FROM categories ORDER BY id LIMIT \\$1 OFFSET \\$2").
		WithArgs(25, 25).
		WillReturnRows(rows)

	categories, err := s.List(context.Background(), 25, 25)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(26), categories[0].ID)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM categories")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(27))
	total, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 27, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryStore_ListAll(t *testing.T) {
	s, mock := newCategoryStore(t)
	now := time.Now().UTC()

	t.Run("single query without limit", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(int64(2), "Art", "", now, now).
			AddRow(int64(1), "Math", "", now, now)
		mock.ExpectQuery("SELECT (.+) FROM categories ORDER BY name, id$").
			WillReturnRows(rows)

		categories, err := s.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Art", categories[0].Name)
	})

	t.Run("empty table", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM categories ORDER BY name, id$").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}))

		categories, err := s.ListAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, categories)
		assert.Empty(t, categories)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCategoryStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	log, _ := logger.GetTestLogger(t)
	s := NewPostgresCategoryStore(db, log)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM categories WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}))
	mock.ExpectRollback()

	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := s.WithTx(tx).GetByID(ctx, 7)
		return err
	})
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
