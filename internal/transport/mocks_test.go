package transport

import (
	"context"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/category"
	"marketplace-be/internal/order"
	"marketplace-be/internal/product"
	"marketplace-be/internal/rating"
	"marketplace-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, input user.RegisterInput) (string, *user.Profile, error) {
	args := m.Called(ctx, input)
	p, _ := args.Get(1).(*user.Profile)
	return args.String(0), p, args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *user.Profile, error) {
	args := m.Called(ctx, email, password)
	p, _ := args.Get(1).(*user.Profile)
	return args.String(0), p, args.Error(2)
}

func (m *MockUserService) GetProfile(ctx context.Context, id uint) (*user.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*user.Profile)
	return p, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uint, params user.UpdateProfileParams) (*user.Profile, error) {
	args := m.Called(ctx, id, params)
	p, _ := args.Get(0).(*user.Profile)
	return p, args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) List(ctx context.Context, filter string, limit, page int) ([]*category.Category, error) {
	args := m.Called(ctx, filter, limit, page)
	c, _ := args.Get(0).([]*category.Category)
	return c, args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, actor auth.Actor, name, description string) (*category.Category, error) {
	args := m.Called(ctx, actor, name, description)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) Create(ctx context.Context, actor auth.Actor, input product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, actor, input)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, actor auth.Actor, id uint, input product.UpdateInput) (*product.Product, error) {
	args := m.Called(ctx, actor, id, input)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockProductService) Get(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, opts product.ListOptions) (*product.ListResult, error) {
	args := m.Called(ctx, opts)
	res, _ := args.Get(0).(*product.ListResult)
	return res, args.Error(1)
}

func (m *MockProductService) ListBySupplier(ctx context.Context, actor auth.Actor) ([]*product.Product, error) {
	args := m.Called(ctx, actor)
	p, _ := args.Get(0).([]*product.Product)
	return p, args.Error(1)
}

func (m *MockProductService) LowStock(ctx context.Context, actor auth.Actor) ([]*product.Product, error) {
	args := m.Called(ctx, actor)
	p, _ := args.Get(0).([]*product.Product)
	return p, args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Create(ctx context.Context, actor auth.Actor, productID uint, quantity int) (*order.Order, error) {
	args := m.Called(ctx, actor, productID, quantity)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) Accept(ctx context.Context, actor auth.Actor, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, actor, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) Decline(ctx context.Context, actor auth.Actor, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, actor, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) Complete(ctx context.Context, actor auth.Actor, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, actor, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) Cancel(ctx context.Context, actor auth.Actor, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, actor, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, actor auth.Actor, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, actor, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) ListForBuyer(ctx context.Context, actor auth.Actor, limit, page int) ([]*order.Order, error) {
	args := m.Called(ctx, actor, limit, page)
	o, _ := args.Get(0).([]*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) ListForSupplier(ctx context.Context, actor auth.Actor, status string, limit, page int) ([]*order.Order, error) {
	args := m.Called(ctx, actor, status, limit, page)
	o, _ := args.Get(0).([]*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) SupplierReport(ctx context.Context, actor auth.Actor) (*order.Report, error) {
	args := m.Called(ctx, actor)
	r, _ := args.Get(0).(*order.Report)
	return r, args.Error(1)
}

type MockRatingService struct{ mock.Mock }

func (m *MockRatingService) Create(ctx context.Context, actor auth.Actor, orderID uint, score int, comment string) (*rating.Rating, error) {
	args := m.Called(ctx, actor, orderID, score, comment)
	rt, _ := args.Get(0).(*rating.Rating)
	return rt, args.Error(1)
}

func (m *MockRatingService) SupplierSummary(ctx context.Context, supplierID uint) (*rating.Summary, error) {
	args := m.Called(ctx, supplierID)
	s, _ := args.Get(0).(*rating.Summary)
	return s, args.Error(1)
}
