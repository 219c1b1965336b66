package domain

import "time"

type Product struct {
	ID        uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string        `json:"name" gorm:"size:255;not null"`
	Price     float64       `json:"price" gorm:"not null"`
	Purchases uint64        `json:"purchases" gorm:"not null;default:0"`
	Variants  []SizeVariant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `json:"createdAt" gorm:"autoCreateTime"`
}

// SizeVariant is the unit at which stock is tracked. Stock never goes
// negative; every mutation goes through the inventory repository's guarded
// updates inside a fulfillment transaction.
type SizeVariant struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint64 `json:"productId" gorm:"not null;uniqueIndex:idx_variant_product_size"`
	SizeName  string `json:"sizeName" gorm:"size:64;not null;uniqueIndex:idx_variant_product_size"`
	Stock     int    `json:"stock" gorm:"not null;default:0"`
}
