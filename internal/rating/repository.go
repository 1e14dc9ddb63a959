package rating

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
	Create(ctx context.Context, r *Rating) error
	Stats(ctx context.Context, supplierID uint) (*Stats, error)
	Recent(ctx context.Context, supplierID uint, limit int) ([]*Rating, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rt *Rating) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("order_id", rt.OrderID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ratings (order_id, rater_id, supplier_id, score, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, rt.OrderID, rt.RaterID, rt.SupplierID, rt.Score, rt.Comment).
		Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation &&
			pqErr.Constraint == ratingsOrderKey {
			log.Info("order already rated")
			return ErrAlreadyRated
		}
		log.Error("failed to insert rating", zap.Error(err))
		return fmt.Errorf("insert rating: %w", err)
	}

	log.Info("rating created", zap.Uint("rating_id", rt.ID))
	return nil
}

func (r *repository) Stats(ctx context.Context, supplierID uint) (*Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT ROUND(COALESCE(AVG(score), 0), 2), COUNT(*)
		FROM ratings
		WHERE supplier_id = $1
	`, supplierID).Scan(&s.Average, &s.Count)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load rating stats",
			zap.String("layer", "repository"),
			zap.Uint("supplier_id", supplierID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("rating stats: %w", err)
	}
	return &s, nil
}

func (r *repository) Recent(ctx context.Context, supplierID uint, limit int) ([]*Rating, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Recent"),
		zap.Uint("supplier_id", supplierID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, rater_id, supplier_id, score, comment, created_at, updated_at
		FROM ratings
		WHERE supplier_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, supplierID, limit)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	ratings := []*Rating{}
	for rows.Next() {
		var rt Rating
		if err := rows.Scan(
			&rt.ID, &rt.OrderID, &rt.RaterID, &rt.SupplierID,
			&rt.Score, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		ratings = append(ratings, &rt)
	}

	return ratings, rows.Err()
}
