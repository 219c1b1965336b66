package mysql

import (
	"context"

	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) repository.Store {
	return &store{db: db}
}

func (s *store) Orders() repository.OrderRepository       { return &orderRepo{db: s.db} }
func (s *store) Inventory() repository.InventoryRepository { return &inventoryRepo{db: s.db} }
func (s *store) Discounts() repository.DiscountRepository  { return &discountRepo{db: s.db} }

// Transact maps the unit of work onto a database transaction. Repositories
// obtained from the Store passed to fn all run on the same connection, so a
// returned error rolls back every write fn made.
func (s *store) Transact(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
