package order

import (
	"context"
	"errors"
	"strconv"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/events"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"
	"marketplace-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductReader is the catalog view the lifecycle needs at order creation.
type ProductReader interface {
	GetByID(ctx context.Context, id uint) (*product.Product, error)
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, productID uint, quantity int) (*Order, error)
	Accept(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error)
	Decline(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error)
	Complete(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error)
	Cancel(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error)

	Get(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error)
	ListForBuyer(ctx context.Context, actor auth.Actor, limit, page int) ([]*Order, error)
	ListForSupplier(ctx context.Context, actor auth.Actor, status string, limit, page int) ([]*Order, error)
	SupplierReport(ctx context.Context, actor auth.Actor) (*Report, error)
}

type service struct {
	repo      Repository
	products  ProductReader
	publisher events.Publisher
	metrics   *metrics.Registry
}

func NewService(repo Repository, products ProductReader, publisher events.Publisher, reg *metrics.Registry) Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &service{
		repo:      repo,
		products:  products,
		publisher: publisher,
		metrics:   reg,
	}
}

// Create places a PENDING order. Stock is checked here but only reserved
// when the supplier accepts.
func (s *service) Create(ctx context.Context, actor auth.Actor, productID uint, quantity int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)
	log.Info("create order started")

	if !actor.IsBuyer() {
		return nil, ErrPermissionDenied
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		log.Warn("product lookup failed", zap.Error(err))
		return nil, err
	}
	if quantity > p.Quantity {
		log.Info("order exceeds stock", zap.Int("stock", p.Quantity))
		s.metrics.Inc("order.rejected.insufficient_stock")
		return nil, ErrInsufficientStock
	}

	o := &Order{
		ProductID:   p.ID,
		ProductName: p.Name,
		BuyerID:     actor.ProfileID,
		SupplierID:  p.SupplierID,
		Quantity:    quantity,
		Total:       p.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	s.metrics.Inc("order.created")
	s.publish(ctx, events.EventOrderCreated, o)

	log.Info("order created", zap.Uint("order_id", o.ID), zap.String("total", o.Total.StringFixed(2)))
	return o, nil
}

func (s *service) Accept(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error) {
	return s.transition(ctx, actor, orderID, ActionAccept)
}

func (s *service) Decline(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error) {
	return s.transition(ctx, actor, orderID, ActionDecline)
}

func (s *service) Complete(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error) {
	return s.transition(ctx, actor, orderID, ActionComplete)
}

func (s *service) Cancel(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error) {
	return s.transition(ctx, actor, orderID, ActionCancel)
}

var actionEvents = map[Action]string{
	ActionAccept:   events.EventOrderAccepted,
	ActionDecline:  events.EventOrderDeclined,
	ActionComplete: events.EventOrderCompleted,
	ActionCancel:   events.EventOrderCancelled,
}

func (s *service) transition(ctx context.Context, actor auth.Actor, orderID uint, action Action) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "transition"),
		zap.String("action", string(action)),
		zap.Uint("order_id", orderID),
	)

	o, err := s.repo.ApplyTransition(ctx, orderID, action, func(snap *Snapshot) error {
		return Authorize(snap, actor, action)
	})
	if err != nil {
		s.metrics.Inc("order.rejected." + rejectionReason(err))
		log.Warn("order transition rejected", zap.Error(err))
		return nil, err
	}

	s.metrics.Inc("order." + string(action))
	s.publish(ctx, actionEvents[action], o)

	log.Info("order transition applied", zap.String("status", string(o.Status)))
	return o, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrOrderNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (s *service) publish(ctx context.Context, eventType string, o *Order) {
	s.publisher.Publish(ctx, events.New(ctx, eventType, strconv.FormatUint(uint64(o.ID), 10), events.OrderPayload{
		OrderID:    o.ID,
		ProductID:  o.ProductID,
		BuyerID:    o.BuyerID,
		SupplierID: o.SupplierID,
		Quantity:   o.Quantity,
		Total:      o.Total.StringFixed(2),
		Status:     string(o.Status),
	}))
}

func (s *service) Get(ctx context.Context, actor auth.Actor, orderID uint) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.VisibleTo(actor) {
		logger.FromCtx(ctx).Warn("order access denied",
			zap.String("layer", "service"),
			zap.Uint("order_id", orderID),
		)
		return nil, ErrPermissionDenied
	}
	return o, nil
}

func (s *service) ListForBuyer(ctx context.Context, actor auth.Actor, limit, page int) ([]*Order, error) {
	if !actor.IsBuyer() {
		return nil, ErrPermissionDenied
	}
	return s.repo.ListByBuyer(ctx, actor.ProfileID, limit, page)
}

// ListForSupplier lists orders on the supplier's products. An empty status
// returns every order.
func (s *service) ListForSupplier(ctx context.Context, actor auth.Actor, status string, limit, page int) ([]*Order, error) {
	if !actor.IsSupplier() {
		return nil, ErrPermissionDenied
	}

	var filter *Status
	if status != "" {
		st, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = &st
	}

	return s.repo.ListBySupplier(ctx, actor.ProfileID, filter, limit, page)
}

func (s *service) SupplierReport(ctx context.Context, actor auth.Actor) (*Report, error) {
	if !actor.IsSupplier() {
		return nil, ErrPermissionDenied
	}
	return s.repo.Report(ctx, actor.ProfileID)
}
