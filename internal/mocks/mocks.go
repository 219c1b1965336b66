package mocks

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockStore satisfies repository.Store. Transact runs fn against the store
// itself, so tests see every repository call an operation makes in order;
// rollback semantics are asserted by expecting no further calls after the
// failing one.
type MockStore struct {
	mock.Mock
	OrderRepo     *MockOrderRepository
	InventoryRepo *MockInventoryRepository
	DiscountRepo  *MockDiscountRepository
}

func NewMockStore() *MockStore {
	return &MockStore{
		OrderRepo:     new(MockOrderRepository),
		InventoryRepo: new(MockInventoryRepository),
		DiscountRepo:  new(MockDiscountRepository),
	}
}

func (m *MockStore) Orders() repository.OrderRepository        { return m.OrderRepo }
func (m *MockStore) Inventory() repository.InventoryRepository { return m.InventoryRepo }
func (m *MockStore) Discounts() repository.DiscountRepository  { return m.DiscountRepo }

func (m *MockStore) Transact(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(m)
}

func (m *MockStore) AssertExpectations(t mock.TestingT) {
	m.OrderRepo.AssertExpectations(t)
	m.InventoryRepo.AssertExpectations(t)
	m.DiscountRepo.AssertExpectations(t)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ApplyDiscountCode(ctx context.Context, id uint64, code string, grandTotal float64) error {
	args := m.Called(ctx, id, code, grandTotal)
	return args.Error(0)
}

func (m *MockOrderRepository) SetDeleted(ctx context.Context, id uint64, deleted bool) error {
	args := m.Called(ctx, id, deleted)
	return args.Error(0)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) VariantStock(ctx context.Context, productID uint64, sizeName string) (int, error) {
	args := m.Called(ctx, productID, sizeName)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) Decrement(ctx context.Context, productID uint64, sizeName string, quantity int) error {
	args := m.Called(ctx, productID, sizeName, quantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) Increment(ctx context.Context, productID uint64, sizeName string, quantity int) error {
	args := m.Called(ctx, productID, sizeName, quantity)
	return args.Error(0)
}

type MockDiscountRepository struct {
	mock.Mock
}

func (m *MockDiscountRepository) Create(ctx context.Context, d *domain.Discount) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiscountRepository) Update(ctx context.Context, d *domain.Discount) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiscountRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDiscountRepository) FindByID(ctx context.Context, id uint64) (*domain.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discount), args.Error(1)
}

func (m *MockDiscountRepository) FindByCode(ctx context.Context, code string) (*domain.Discount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discount), args.Error(1)
}

func (m *MockDiscountRepository) FindByCodeForUpdate(ctx context.Context, code string) (*domain.Discount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discount), args.Error(1)
}

func (m *MockDiscountRepository) List(ctx context.Context) ([]domain.Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Discount), args.Error(1)
}

func (m *MockDiscountRepository) Redeem(ctx context.Context, discountID, orderID uint64) error {
	args := m.Called(ctx, discountID, orderID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}
