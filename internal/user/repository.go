package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	FindByID(ctx context.Context, id uint) (*Profile, error)
	Update(ctx context.Context, id uint, params UpdateProfileParams) (*Profile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const profileColumns = `id, username, email, password_hash, kind, phone, address, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.Kind,
		&p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("email", p.Email),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO profiles (username, email, password_hash, kind, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Username, p.Email, p.PasswordHash, p.Kind, p.Phone, p.Address).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to insert profile", zap.Error(err))
		return mapUniqueViolation(err)
	}

	log.Info("profile inserted", zap.Uint("profile_id", p.ID))
	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to find profile by email", zap.Error(err))
		return nil, fmt.Errorf("find profile by email: %w", err)
	}
	return p, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to find profile by id", zap.Uint("profile_id", id), zap.Error(err))
		return nil, fmt.Errorf("find profile by id: %w", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id uint, params UpdateProfileParams) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("profile_id", id),
	)

	row := r.db.QueryRowContext(ctx, `
		UPDATE profiles SET
			email = COALESCE($1, email),
			phone = COALESCE($2, phone),
			address = COALESCE($3, address),
			updated_at = NOW()
		WHERE id = $4
		RETURNING `+profileColumns,
		params.Email, params.Phone, params.Address, id,
	)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, mapUniqueViolation(err)
	}
	return p, nil
}

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != PgUniqueViolation {
		return err
	}
	if pqErr.Constraint == "profiles_username_key" {
		return ErrUsernameExists
	}
	return ErrEmailExists
}
