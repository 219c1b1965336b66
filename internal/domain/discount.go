package domain

import (
	"math"
	"time"
)

type Discount struct {
	ID                 uint64               `json:"id" gorm:"primaryKey;autoIncrement"`
	Code               string               `json:"code" gorm:"size:64;uniqueIndex;not null"`
	DiscountPercentage float64              `json:"discountPercentage" gorm:"not null"`
	IsActive           bool                 `json:"isActive" gorm:"not null;default:true"`
	ExpirationDate     time.Time            `json:"expirationDate" gorm:"not null"`
	UsageLimit         int                  `json:"usageLimit" gorm:"not null"`
	UsedCount          int                  `json:"usedCount" gorm:"not null;default:0"`
	Redemptions        []DiscountRedemption `json:"redemptions,omitempty" gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time            `json:"createdAt" gorm:"autoCreateTime"`
}

// DiscountRedemption links a discount to an order it has been applied to.
// The unique index makes double application of a code to one order impossible
// regardless of request interleaving; UsedCount equals the number of these
// rows because both only ever change together in one transaction.
type DiscountRedemption struct {
	ID         uint64    `json:"-" gorm:"primaryKey;autoIncrement"`
	DiscountID uint64    `json:"discountId" gorm:"not null;uniqueIndex:idx_redemption_discount_order"`
	OrderID    uint64    `json:"orderId" gorm:"not null;uniqueIndex:idx_redemption_discount_order"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// Usable checks whether the discount can still be redeemed at the given
// moment. An inactive code is reported as not found, same as a missing one.
func (d *Discount) Usable(now time.Time) error {
	if !d.IsActive {
		return ErrDiscountNotFound
	}
	if now.After(d.ExpirationDate) {
		return ErrDiscountExpired
	}
	if d.UsedCount >= d.UsageLimit {
		return ErrDiscountExhausted
	}
	return nil
}

// GrandTotal computes the discounted total, rounded to the nearest unit.
func (d *Discount) GrandTotal(totalAmount float64) float64 {
	return math.Round(totalAmount * (1 - d.DiscountPercentage/100))
}

// GrandTotalTolerance is the allowed drift between a caller-supplied grand
// total and the recomputed one before the application is rejected.
const GrandTotalTolerance = 0.01
