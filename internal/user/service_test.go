package user

import (
	"context"
	"errors"
	"testing"

	"marketplace-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, params UpdateProfileParams) (*Profile, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Generate(a auth.Actor) (string, error) {
	args := m.Called(a)
	return args.String(0), args.Error(1)
}

func validInput() RegisterInput {
	return RegisterInput{
		Username: " acme ",
		Email:    "ACME@Example.com",
		Password: "password123",
		Kind:     auth.KindSupplier,
		Phone:    "555",
		Address:  "Main St",
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		tokens := new(MockTokens)
		svc := NewService(repo, tokens)

		repo.On("Create", ctx, mock.MatchedBy(func(p *Profile) bool {
			return p.Email == "acme@example.com" && p.Username == "acme" &&
				p.Kind == auth.KindSupplier && passwordMatches(p.PasswordHash, "password123")
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Profile).ID = 10
		}).Return(nil)
		tokens.On("Generate", auth.Actor{ProfileID: 10, Email: "acme@example.com", Kind: auth.KindSupplier}).
			Return("jwt-token", nil)

		token, p, err := svc.Register(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", token)
		assert.Equal(t, uint(10), p.ID)
		repo.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("InvalidKind", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockTokens))
		in := validInput()
		in.Kind = "TRANSPORTER"

		_, _, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, auth.ErrInvalidKind)
	})

	t.Run("WeakPassword", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockTokens))
		in := validInput()
		in.Password = "short"

		_, _, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("EmailExists", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockTokens))
		repo.On("Create", ctx, mock.Anything).Return(ErrEmailExists)

		_, _, err := svc.Register(ctx, validInput())
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("TokenError", func(t *testing.T) {
		repo := new(MockRepository)
		tokens := new(MockTokens)
		svc := NewService(repo, tokens)
		repo.On("Create", ctx, mock.Anything).Return(nil)
		tokens.On("Generate", mock.Anything).Return("", auth.ErrMissingSecret)

		_, _, err := svc.Register(ctx, validInput())
		assert.ErrorIs(t, err, auth.ErrMissingSecret)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := hashPassword("password123")
	require.NoError(t, err)
	stored := &Profile{ID: 4, Email: "b@example.com", PasswordHash: hash, Kind: auth.KindBuyer}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		tokens := new(MockTokens)
		svc := NewService(repo, tokens)
		repo.On("FindByEmail", ctx, "b@example.com").Return(stored, nil)
		tokens.On("Generate", stored.Actor()).Return("jwt", nil)

		token, p, err := svc.Login(ctx, " B@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "jwt", token)
		assert.Equal(t, stored, p)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockTokens))
		repo.On("FindByEmail", ctx, "x@example.com").Return(nil, ErrProfileNotFound)

		_, _, err := svc.Login(ctx, "x@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockTokens))
		repo.On("FindByEmail", ctx, "b@example.com").Return(stored, nil)

		_, _, err := svc.Login(ctx, "b@example.com", "nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DBError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockTokens))
		repo.On("FindByEmail", ctx, "b@example.com").Return(nil, errors.New("db down"))

		_, _, err := svc.Login(ctx, "b@example.com", "password123")
		assert.EqualError(t, err, "db down")
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("NothingToUpdate", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockTokens))
		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileParams{})
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})

	t.Run("NormalizesEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockTokens))
		email := " New@Example.com "
		updated := &Profile{ID: 1, Email: "new@example.com"}

		repo.On("Update", ctx, uint(1), mock.MatchedBy(func(p UpdateProfileParams) bool {
			return p.Email != nil && *p.Email == "new@example.com"
		})).Return(updated, nil)

		p, err := svc.UpdateProfile(ctx, 1, UpdateProfileParams{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, updated, p)
	})

	t.Run("GetProfile", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockTokens))
		repo.On("FindByID", ctx, uint(3)).Return(nil, ErrProfileNotFound)

		_, err := svc.GetProfile(ctx, 3)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}
