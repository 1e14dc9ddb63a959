package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	Update(ctx context.Context, id, supplierID uint, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, id, supplierID uint) error
	List(ctx context.Context, opts ListOptions) ([]*Product, int, error)
	ListBySupplier(ctx context.Context, supplierID uint) ([]*Product, error)
	ListLowStock(ctx context.Context, supplierID uint) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `p.id, p.supplier_id, p.category_id, p.name, p.description,
	p.price, p.quantity, p.reorder_threshold, p.created_at, p.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner, extra ...any) (*Product, error) {
	var p Product
	dest := []any{
		&p.ID, &p.SupplierID, &p.CategoryID, &p.Name, &p.Description,
		&p.Price, &p.Quantity, &p.ReorderThreshold, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("supplier_id", p.SupplierID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (supplier_id, category_id, name, description, price, quantity, reorder_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.SupplierID, p.CategoryID, p.Name, p.Description, p.Price, p.Quantity, p.ReorderThreshold).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return fmt.Errorf("insert product: %w", err)
	}

	log.Info("product inserted", zap.Uint("product_id", p.ID))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update writes only the provided fields so a concurrent stock decrement is
// never overwritten by a stale quantity.
func (r *repository) Update(ctx context.Context, id, supplierID uint, input UpdateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("product_id", id),
	)

	row := r.db.QueryRowContext(ctx, `
		UPDATE products p SET
			name = COALESCE($1, p.name),
			description = COALESCE($2, p.description),
			price = COALESCE($3, p.price),
			quantity = COALESCE($4, p.quantity),
			reorder_threshold = COALESCE($5, p.reorder_threshold),
			category_id = CASE WHEN $6::boolean THEN NULL ELSE COALESCE($7, p.category_id) END,
			updated_at = NOW()
		WHERE p.id = $8 AND p.supplier_id = $9
		RETURNING `+productColumns,
		input.Name, input.Description, input.Price, input.Quantity, input.ReorderThreshold,
		input.ClearCategory, input.CategoryID, id, supplierID,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete refuses to remove a product that any order references. The product
// row is locked first so no order can be placed between the check and the
// delete.
func (r *repository) Delete(ctx context.Context, id, supplierID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.Uint("product_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var lockedID uint
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM products WHERE id = $1 AND supplier_id = $2 FOR UPDATE`,
		id, supplierID,
	).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to lock product", zap.Error(err))
		return err
	}

	var hasOrders bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE product_id = $1)`, id,
	).Scan(&hasOrders); err != nil {
		log.Error("failed to check product orders", zap.Error(err))
		return err
	}
	if hasOrders {
		return ErrProductHasOrders
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit product delete", zap.Error(err))
		return err
	}
	committed = true

	log.Info("product deleted")
	return nil
}

// List returns in-stock products matching the options plus the total match
// count for pagination.
func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, int, error) {
	limit, page, offset := utils.Page(opts.Limit, opts.Page)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("search", opts.Search),
		zap.Int("limit", limit),
		zap.Int("page", page),
	)

	where := []string{"p.quantity > 0"}
	args := []interface{}{}

	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}
	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	query := `SELECT ` + productColumns + `, COUNT(*) OVER() AS total_count FROM products p` +
		" WHERE " + strings.Join(where, " AND ") +
		" ORDER BY p.created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	log.Debug("executing product list query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	products := []*Product{}
	total := 0
	for rows.Next() {
		p, err := scanProduct(rows, &total)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	return products, total, nil
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID uint) ([]*Product, error) {
	return r.query(ctx, "ListBySupplier",
		`SELECT `+productColumns+` FROM products p WHERE p.supplier_id = $1 ORDER BY p.created_at DESC`,
		supplierID)
}

func (r *repository) ListLowStock(ctx context.Context, supplierID uint) ([]*Product, error) {
	return r.query(ctx, "ListLowStock",
		`SELECT `+productColumns+` FROM products p
		WHERE p.supplier_id = $1 AND p.quantity <= p.reorder_threshold
		ORDER BY p.quantity ASC, p.name ASC`,
		supplierID)
}

func (r *repository) query(ctx context.Context, method, query string, args ...any) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
