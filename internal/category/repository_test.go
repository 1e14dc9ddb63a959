package category

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success_Defaults", func(t *testing.T) {
		mock.ExpectQuery(`SELECT c.id, c.name, c.description FROM categories c ORDER BY c.name ASC LIMIT \$1 OFFSET \$2`).
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
				AddRow(1, "Fruit", "fresh").
				AddRow(2, "Grain", ""))

		res, err := repo.List(ctx, "", 0, 0)
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "Fruit", res[0].Name)
	})

	t.Run("Success_WithFilter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM categories c WHERE c.name ILIKE \$1 ORDER BY c.name ASC LIMIT \$2 OFFSET \$3`).
			WithArgs("%fru%", 10, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(1, "Fruit", ""))

		res, err := repo.List(ctx, "fru", 10, 2)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM categories c`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

		res, err := repo.List(ctx, "", 0, 0)
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM categories c`).WillReturnError(errors.New("db error"))

		_, err := repo.List(ctx, "", 0, 0)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO categories \(name, description\) VALUES \(\$1, \$2\) RETURNING id`).
			WithArgs("Fruit", "fresh").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		c, err := repo.Create(ctx, "Fruit", "fresh")
		require.NoError(t, err)
		assert.Equal(t, uint(5), c.ID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO categories`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, "Fruit", "")
		assert.ErrorIs(t, err, ErrCategoryExists)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT id, name, description FROM categories WHERE id = \$1`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(1, "Fruit", ""))

	c, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Fruit", c.Name)

	mock.ExpectQuery(`FROM categories WHERE id = \$1`).
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

	_, err = repo.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success_DetachesProducts", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products SET category_id = NULL, updated_at = NOW\(\) WHERE category_id = \$1`).
			WithArgs(uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
			WithArgs(uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, 3))
	})

	t.Run("NotFound_RollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products SET category_id = NULL`).
			WithArgs(uint(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
			WithArgs(uint(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Delete(ctx, 9), ErrCategoryNotFound)
	})

	t.Run("DetachError_RollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products SET category_id = NULL`).
			WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		assert.EqualError(t, repo.Delete(ctx, 3), "lock timeout")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
