package product

import (
	"context"
	"strings"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/category"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/utils"

	"go.uber.org/zap"
)

// CategoryLookup resolves category references before they are stored.
type CategoryLookup interface {
	GetByID(ctx context.Context, id uint) (*category.Category, error)
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, input CreateInput) (*Product, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	Get(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	ListBySupplier(ctx context.Context, actor auth.Actor) ([]*Product, error)
	LowStock(ctx context.Context, actor auth.Actor) ([]*Product, error)
}

type service struct {
	repo       Repository
	categories CategoryLookup
}

func NewService(repo Repository, categories CategoryLookup) Service {
	return &service{repo: repo, categories: categories}
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("supplier_id", actor.ProfileID),
	)
	log.Info("create product started")

	if !actor.IsSupplier() {
		return nil, ErrNotSupplier
	}

	name := strings.TrimSpace(input.Name)
	price := input.Price.Round(2)
	switch {
	case name == "":
		return nil, ErrInvalidName
	case !price.IsPositive():
		return nil, ErrInvalidPrice
	case input.Quantity < 0:
		return nil, ErrInvalidQuantity
	case input.ReorderThreshold != nil && *input.ReorderThreshold < 0:
		return nil, ErrInvalidThreshold
	}

	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	threshold := DefaultReorderThreshold
	if input.ReorderThreshold != nil {
		threshold = *input.ReorderThreshold
	}

	p := &Product{
		SupplierID:       actor.ProfileID,
		CategoryID:       input.CategoryID,
		Name:             name,
		Description:      strings.TrimSpace(input.Description),
		Price:            price,
		Quantity:         input.Quantity,
		ReorderThreshold: threshold,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Uint("product_id", id),
	)

	if err := s.checkOwnership(ctx, actor, id); err != nil {
		return nil, err
	}

	if input.Empty() {
		return nil, ErrNothingToUpdate
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, ErrInvalidName
		}
		input.Name = &trimmed
	}
	if input.Price != nil {
		rounded := input.Price.Round(2)
		if !rounded.IsPositive() {
			return nil, ErrInvalidPrice
		}
		input.Price = &rounded
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if input.ReorderThreshold != nil && *input.ReorderThreshold < 0 {
		return nil, ErrInvalidThreshold
	}
	if !input.ClearCategory {
		if err := s.checkCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	p, err := s.repo.Update(ctx, id, actor.ProfileID, input)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("product updated")
	return p, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if err := s.checkOwnership(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, actor.ProfileID); err != nil {
		logger.FromCtx(ctx).Warn("product delete rejected",
			zap.String("layer", "service"),
			zap.Uint("product_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	opts.Search = strings.TrimSpace(opts.Search)
	opts.Limit, opts.Page, _ = utils.Page(opts.Limit, opts.Page)

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &ListResult{Items: items, Total: total, Limit: opts.Limit, Page: opts.Page}, nil
}

func (s *service) ListBySupplier(ctx context.Context, actor auth.Actor) ([]*Product, error) {
	if !actor.IsSupplier() {
		return nil, ErrNotSupplier
	}
	return s.repo.ListBySupplier(ctx, actor.ProfileID)
}

func (s *service) LowStock(ctx context.Context, actor auth.Actor) ([]*Product, error) {
	if !actor.IsSupplier() {
		return nil, ErrNotSupplier
	}
	return s.repo.ListLowStock(ctx, actor.ProfileID)
}

func (s *service) checkOwnership(ctx context.Context, actor auth.Actor, id uint) error {
	if !actor.IsSupplier() {
		return ErrNotSupplier
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.OwnedBy(actor.ProfileID) {
		return ErrPermissionDenied
	}
	return nil
}

func (s *service) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	_, err := s.categories.GetByID(ctx, *id)
	return err
}
