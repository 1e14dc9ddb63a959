package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-be/internal/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileRowColumns = []string{
	"id", "username", "email", "password_hash", "kind", "phone", "address", "created_at", "updated_at",
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	newProfile := func() *Profile {
		return &Profile{
			Username:     "acme",
			Email:        "acme@example.com",
			PasswordHash: "hashed",
			Kind:         auth.KindSupplier,
			Phone:        "555",
			Address:      "Main St",
		}
	}

	t.Run("Success", func(t *testing.T) {
		p := newProfile()
		mock.ExpectQuery(`INSERT INTO profiles \(username, email, password_hash, kind, phone, address\)`).
			WithArgs("acme", "acme@example.com", "hashed", auth.KindSupplier, "555", "Main St").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, now, now))

		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), p.ID)
		assert.Equal(t, now, p.CreatedAt)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO profiles`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "profiles_email_key"})

		err := repo.Create(ctx, newProfile())
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO profiles`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "profiles_username_key"})

		err := repo.Create(ctx, newProfile())
		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO profiles`).
			WillReturnError(errors.New("db error"))

		err := repo.Create(ctx, newProfile())
		assert.EqualError(t, err, "db error")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, .* FROM profiles WHERE email = \$1`).
			WithArgs("b@example.com").
			WillReturnRows(sqlmock.NewRows(profileRowColumns).
				AddRow(4, "bob", "b@example.com", "hash", "BUYER", "", "", now, now))

		p, err := repo.FindByEmail(ctx, "b@example.com")
		require.NoError(t, err)
		assert.Equal(t, uint(4), p.ID)
		assert.Equal(t, auth.KindBuyer, p.Kind)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM profiles WHERE email = \$1`).
			WithArgs("x@example.com").
			WillReturnRows(sqlmock.NewRows(profileRowColumns))

		_, err := repo.FindByEmail(ctx, "x@example.com")
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`FROM profiles WHERE email = \$1`).
			WillReturnError(errors.New("boom"))

		_, err := repo.FindByEmail(ctx, "x@example.com")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM profiles WHERE id = \$1`).
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows(profileRowColumns).
			AddRow(2, "acme", "a@example.com", "hash", "SUPPLIER", "1", "x", now, now))

	p, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "acme", p.Username)

	mock.ExpectQuery(`FROM profiles WHERE id = \$1`).
		WithArgs(uint(99)).
		WillReturnRows(sqlmock.NewRows(profileRowColumns))

	_, err = repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()
	phone := "777"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE profiles SET .* WHERE id = \$4`).
			WithArgs(nil, "777", nil, uint(2)).
			WillReturnRows(sqlmock.NewRows(profileRowColumns).
				AddRow(2, "acme", "a@example.com", "hash", "SUPPLIER", "777", "x", now, now))

		p, err := repo.Update(context.Background(), 2, UpdateProfileParams{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "777", p.Phone)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE profiles SET`).
			WillReturnRows(sqlmock.NewRows(profileRowColumns))

		_, err := repo.Update(context.Background(), 5, UpdateProfileParams{Phone: &phone})
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE profiles SET`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "profiles_email_key"})

		_, err := repo.Update(context.Background(), 5, UpdateProfileParams{Phone: &phone})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}
