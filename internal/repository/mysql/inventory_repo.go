package mysql

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/domain"

	"gorm.io/gorm"
)

type inventoryRepo struct {
	db *gorm.DB
}

func (r *inventoryRepo) VariantStock(ctx context.Context, productID uint64, sizeName string) (int, error) {
	var v domain.SizeVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND size_name = ?", productID, sizeName).
		First(&v).Error
	if err == nil {
		return v.Stock, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", productID).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, productID)
	}
	return 0, fmt.Errorf("%w: %q for product %d", domain.ErrVariantNotFound, sizeName, productID)
}

// Decrement performs the authoritative availability check at write time: the
// guarded UPDATE only matches while enough stock remains, so a concurrent
// transaction that already committed a reservation makes this one fail even
// if an earlier read saw sufficient stock.
func (r *inventoryRepo) Decrement(ctx context.Context, productID uint64, sizeName string, quantity int) error {
	if quantity <= 0 {
		return domain.Validationf("quantity must be positive")
	}
	res := r.db.WithContext(ctx).
		Model(&domain.SizeVariant{}).
		Where("product_id = ? AND size_name = ? AND stock >= ?", productID, sizeName, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a short counter from a missing row.
		if _, err := r.VariantStock(ctx, productID, sizeName); err != nil {
			return err
		}
		return fmt.Errorf("%w: %q for product %d", domain.ErrInsufficientStock, sizeName, productID)
	}
	return nil
}

func (r *inventoryRepo) Increment(ctx context.Context, productID uint64, sizeName string, quantity int) error {
	if quantity <= 0 {
		return domain.Validationf("quantity must be positive")
	}
	res := r.db.WithContext(ctx).
		Model(&domain.SizeVariant{}).
		Where("product_id = ? AND size_name = ?", productID, sizeName).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.VariantStock(ctx, productID, sizeName); err != nil {
			return err
		}
	}
	return nil
}
