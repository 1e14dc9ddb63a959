package user

import (
	"context"
	"errors"
	"strings"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

type TokenGenerator interface {
	Generate(a auth.Actor) (string, error)
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, *Profile, error)
	Login(ctx context.Context, email, password string) (string, *Profile, error)
	GetProfile(ctx context.Context, id uint) (*Profile, error)
	UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (*Profile, error)
}

type service struct {
	repo   Repository
	tokens TokenGenerator
}

func NewService(repo Repository, tokens TokenGenerator) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, *Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", input.Email),
		zap.String("kind", string(input.Kind)),
	)
	log.Info("register started")

	if !input.Kind.Valid() {
		return "", nil, auth.ErrInvalidKind
	}
	if err := validatePassword(input.Password); err != nil {
		return "", nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	p := &Profile{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hashed,
		Kind:         input.Kind,
		Phone:        input.Phone,
		Address:      input.Address,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create profile", zap.Error(err))
		return "", nil, err
	}

	token, err := s.tokens.Generate(p.Actor())
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("profile_id", p.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register completed", zap.Uint("profile_id", p.ID))
	return token, p, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	p, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrProfileNotFound) {
		log.Warn("login for unknown email")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !passwordMatches(p.PasswordHash, password) {
		log.Warn("password mismatch", zap.Uint("profile_id", p.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(p.Actor())
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", nil, err
	}
	return token, p, nil
}

func (s *service) GetProfile(ctx context.Context, id uint) (*Profile, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (*Profile, error) {
	if params.Empty() {
		return nil, ErrNothingToUpdate
	}
	if params.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*params.Email))
		params.Email = &normalized
	}

	p, err := s.repo.Update(ctx, id, params)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update profile",
			zap.String("layer", "service"),
			zap.Uint("profile_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return p, nil
}
