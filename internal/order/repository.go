package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)

	// ApplyTransition locks the order and its product, runs check on the
	// locked snapshot and then writes the new status (and stock, for accept)
	// in the same transaction.
	ApplyTransition(
		ctx context.Context,
		id uint,
		action Action,
		check func(*Snapshot) error,
	) (*Order, error)

	ListByBuyer(ctx context.Context, buyerID uint, limit, page int) ([]*Order, error)
	ListBySupplier(ctx context.Context, supplierID uint, status *Status, limit, page int) ([]*Order, error)
	Report(ctx context.Context, supplierID uint) (*Report, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const (
	orderColumns = `o.id, o.product_id, p.name, o.buyer_id, p.supplier_id,
		o.quantity, o.total, o.status, o.created_at, o.updated_at`
	orderFrom = ` FROM orders o JOIN products p ON p.id = o.product_id`

	orderSelect = `SELECT ` + orderColumns + orderFrom
)

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner, extra ...any) (*Order, error) {
	var o Order
	dest := []any{
		&o.ID, &o.ProductID, &o.ProductName, &o.BuyerID, &o.SupplierID,
		&o.Quantity, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("product_id", o.ProductID),
		zap.Uint("buyer_id", o.BuyerID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (product_id, buyer_id, quantity, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, o.ProductID, o.BuyerID, o.Quantity, o.Total, o.Status).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("insert order: %w", err)
	}

	log.Info("order inserted", zap.Uint("order_id", o.ID))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "repository"),
			zap.Uint("order_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *repository) ApplyTransition(
	ctx context.Context,
	id uint,
	action Action,
	check func(*Snapshot) error,
) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ApplyTransition"),
		zap.Uint("order_id", id),
		zap.String("action", string(action)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// 1. Lock order and product rows
	var snap Snapshot
	o, err := scanOrder(
		tx.QueryRowContext(ctx, `SELECT `+orderColumns+`, p.quantity`+orderFrom+` WHERE o.id = $1 FOR UPDATE`, id),
		&snap.Stock,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to lock order", zap.Error(err))
		return nil, fmt.Errorf("lock order: %w", err)
	}
	snap.Order = *o

	// 2. Domain rules on the locked snapshot
	if err := check(&snap); err != nil {
		log.Info("transition rejected", zap.String("status", string(o.Status)), zap.Error(err))
		return nil, err
	}

	// 3. Conditional stock decrement
	if action.MovesStock() {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET quantity = quantity - $1, updated_at = NOW()
			WHERE id = $2 AND quantity >= $1
		`, o.Quantity, o.ProductID)
		if err != nil {
			log.Error("failed to decrement stock", zap.Error(err))
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			log.Error("failed to read stock rows affected", zap.Error(err))
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		if n == 0 {
			return nil, ErrInsufficientStock
		}
	}

	// 4. Conditional status write
	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING updated_at
	`, action.To(), id, action.From()).Scan(&o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, fmt.Errorf("update order status: %w", err)
	}

	// 5. Commit
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transition", zap.Error(err))
		return nil, err
	}
	committed = true

	o.Status = action.To()
	log.Info("order transitioned", zap.String("status", string(o.Status)))
	return o, nil
}

func (r *repository) ListByBuyer(ctx context.Context, buyerID uint, limit, page int) ([]*Order, error) {
	limit, _, offset := utils.Page(limit, page)
	return r.query(ctx, "ListByBuyer",
		orderSelect+` WHERE o.buyer_id = $1 ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`,
		buyerID, limit, offset)
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID uint, status *Status, limit, page int) ([]*Order, error) {
	limit, _, offset := utils.Page(limit, page)

	where := []string{"p.supplier_id = $1"}
	args := []interface{}{supplierID}

	if status != nil {
		args = append(args, *status)
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}

	query := orderSelect +
		" WHERE " + strings.Join(where, " AND ") +
		" ORDER BY o.created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	return r.query(ctx, "ListBySupplier", query, args...)
}

func (r *repository) query(ctx context.Context, method, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)
	log.Debug("executing order query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

// Report aggregates per-product order counts for one supplier. Products
// without orders are included with zero counts.
func (r *repository) Report(ctx context.Context, supplierID uint) (*Report, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Report"),
		zap.Uint("supplier_id", supplierID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name,
			COUNT(o.id) AS orders,
			COUNT(o.id) FILTER (WHERE o.status = ANY($2)) AS active
		FROM products p
		LEFT JOIN orders o ON o.product_id = p.id
		WHERE p.supplier_id = $1
		GROUP BY p.id, p.name
		ORDER BY orders DESC, p.name ASC
	`, supplierID, pq.Array(activeStatuses()))
	if err != nil {
		log.Error("failed to query report", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	report := &Report{OrdersPerProduct: []ProductOrders{}}
	for rows.Next() {
		var po ProductOrders
		if err := rows.Scan(&po.ProductID, &po.ProductName, &po.Orders, &po.Active); err != nil {
			log.Error("failed to scan report row", zap.Error(err))
			return nil, err
		}
		report.ProductCount++
		report.TotalOrders += po.Orders
		report.ActiveOrders += po.Active
		report.OrdersPerProduct = append(report.OrdersPerProduct, po)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return report, nil
}
