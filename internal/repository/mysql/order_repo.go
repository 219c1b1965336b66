package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDForUpdate takes a row lock so concurrent status transitions line up
// behind each other and each one computes its stock delta from the status the
// previous one committed.
func (r *orderRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ? AND is_deleted = ?", number, false).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) ListByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND is_deleted = ?", status, false).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.Order
	err := q.Find(&out).Error
	return out, err
}

// ensurePresent distinguishes a no-change UPDATE from a missing order: MySQL
// reports zero affected rows for both, and only the latter is an error.
func (r *orderRepo) ensurePresent(ctx context.Context, id uint64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ensurePresent(ctx, id)
	}
	return nil
}

func (r *orderRepo) Update(ctx context.Context, order *domain.Order) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND is_deleted = ?", order.ID, false).
		Updates(map[string]any{
			"full_name":     order.FullName,
			"date_of_birth": order.DateOfBirth,
			"phone_number":  order.PhoneNumber,
			"email":         order.Email,
			"country":       order.Country,
			"city":          order.City,
			"district":      order.District,
			"ward":          order.Ward,
			"address":       order.Address,
			"order_note":    order.OrderNote,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Resubmitting identical contact data affects no rows; that is not a
		// missing order.
		return r.ensurePresent(ctx, order.ID)
	}
	return nil
}

func (r *orderRepo) ApplyDiscountCode(ctx context.Context, id uint64, code string, grandTotal float64) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"discount_code": code, "grand_total": grandTotal})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ensurePresent(ctx, id)
	}
	return nil
}

func (r *orderRepo) SetDeleted(ctx context.Context, id uint64, deleted bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("is_deleted", deleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// The flag may already hold the requested value; treat a present row
		// as success.
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Order{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrOrderNotFound
		}
	}
	return nil
}
