package category

import (
	"context"
	"strings"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter string, limit, page int) ([]*Category, error)
	Create(ctx context.Context, actor auth.Actor, name, description string) (*Category, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter string, limit, page int) ([]*Category, error) {
	return s.repo.List(ctx, strings.TrimSpace(filter), limit, page)
}

func (s *service) Create(ctx context.Context, actor auth.Actor, name, description string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if !actor.IsSupplier() {
		log.Warn("non-supplier attempted to create category", zap.Uint("profile_id", actor.ProfileID))
		return nil, ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	return s.repo.Create(ctx, name, strings.TrimSpace(description))
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if !actor.IsSupplier() {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}
