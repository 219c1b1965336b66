package repository

import (
	"context"

	"storefront-service/internal/domain"
)

// Store groups the three ledgers behind one transaction boundary. Transact
// runs fn against a Store whose repositories share a single unit of work;
// returning an error aborts everything fn did. All writers to stock counters
// and discount usage go through Transact.
type Store interface {
	Orders() OrderRepository
	Inventory() InventoryRepository
	Discounts() DiscountRepository
	Transact(ctx context.Context, fn func(tx Store) error) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// FindByID excludes soft-deleted orders.
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	// FindByIDForUpdate locks the order row for the remainder of the
	// transaction, so the status read stays true until the transition commits;
	// only meaningful inside Transact.
	FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Order, error)
	FindByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	// ListByStatus returns non-deleted orders in the given state, newest
	// first; limit <= 0 means no limit.
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
	Update(ctx context.Context, order *domain.Order) error
	ApplyDiscountCode(ctx context.Context, id uint64, code string, grandTotal float64) error
	// SetDeleted flips the soft-delete flag regardless of its current value.
	SetDeleted(ctx context.Context, id uint64, deleted bool) error
}

type InventoryRepository interface {
	// VariantStock returns the current stock of a variant, distinguishing a
	// missing product from a missing size.
	VariantStock(ctx context.Context, productID uint64, sizeName string) (int, error)
	// Decrement reduces stock only if enough remains at write time; a stale
	// earlier availability check is never trusted.
	Decrement(ctx context.Context, productID uint64, sizeName string, quantity int) error
	Increment(ctx context.Context, productID uint64, sizeName string, quantity int) error
}

type DiscountRepository interface {
	Create(ctx context.Context, d *domain.Discount) error
	Update(ctx context.Context, d *domain.Discount) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*domain.Discount, error)
	FindByCode(ctx context.Context, code string) (*domain.Discount, error)
	// FindByCodeForUpdate locks the discount row for the remainder of the
	// transaction; only meaningful inside Transact.
	FindByCodeForUpdate(ctx context.Context, code string) (*domain.Discount, error)
	List(ctx context.Context) ([]domain.Discount, error)
	// Redeem increments the usage counter and records the order in one step.
	// The guarded increment is the serialization point for the usage limit.
	Redeem(ctx context.Context, discountID, orderID uint64) error
}
