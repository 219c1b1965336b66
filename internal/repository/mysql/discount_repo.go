package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type discountRepo struct {
	db *gorm.DB
}

func (r *discountRepo) Create(ctx context.Context, d *domain.Discount) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Validationf("discount code already exists")
	}
	return err
}

func (r *discountRepo) Update(ctx context.Context, d *domain.Discount) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Discount{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"code":                d.Code,
			"discount_percentage": d.DiscountPercentage,
			"is_active":           d.IsActive,
			"expiration_date":     d.ExpirationDate,
			"usage_limit":         d.UsageLimit,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.Validationf("discount code already exists")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Discount{}).
			Where("id = ?", d.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrDiscountNotFound
		}
	}
	return nil
}

func (r *discountRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Discount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDiscountNotFound
	}
	return nil
}

func (r *discountRepo) FindByID(ctx context.Context, id uint64) (*domain.Discount, error) {
	var d domain.Discount
	err := r.db.WithContext(ctx).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDiscountNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *discountRepo) FindByCode(ctx context.Context, code string) (*domain.Discount, error) {
	return r.findByCode(ctx, code, false)
}

func (r *discountRepo) FindByCodeForUpdate(ctx context.Context, code string) (*domain.Discount, error) {
	return r.findByCode(ctx, code, true)
}

func (r *discountRepo) findByCode(ctx context.Context, code string, lock bool) (*domain.Discount, error) {
	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var d domain.Discount
	err := q.Where("code = ?", code).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDiscountNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *discountRepo) List(ctx context.Context) ([]domain.Discount, error) {
	var out []domain.Discount
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

// Redeem is the serialization point for the usage limit: the guarded UPDATE
// only matches while used_count < usage_limit, so of two concurrent
// redemptions racing for the last use exactly one commits. The redemption row
// carries a unique (discount_id, order_id) index, which rejects applying the
// same code to one order twice.
func (r *discountRepo) Redeem(ctx context.Context, discountID, orderID uint64) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Discount{}).
		Where("id = ? AND used_count < usage_limit", discountID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Discount{}).
			Where("id = ?", discountID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrDiscountNotFound
		}
		return domain.ErrDiscountExhausted
	}

	err := r.db.WithContext(ctx).Create(&domain.DiscountRedemption{
		DiscountID: discountID,
		OrderID:    orderID,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDiscountAlreadyApplied
	}
	return err
}
