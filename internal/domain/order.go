package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipping  OrderStatus = "shipping"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusReturning OrderStatus = "returning"
	StatusReturned  OrderStatus = "returned"
)

type Order struct {
	ID           uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Number       string      `json:"number" gorm:"size:36;uniqueIndex;not null"`
	FullName     string      `json:"fullName" gorm:"size:255;not null"`
	DateOfBirth  *time.Time  `json:"dateOfBirth,omitempty"`
	PhoneNumber  string      `json:"phoneNumber" gorm:"size:32;not null"`
	Email        string      `json:"email" gorm:"size:255;not null"`
	Country      string      `json:"country" gorm:"size:128;not null"`
	City         string      `json:"city" gorm:"size:128;not null"`
	District     string      `json:"district" gorm:"size:128;not null"`
	Ward         string      `json:"ward" gorm:"size:128;not null"`
	Address      string      `json:"address" gorm:"size:512;not null"`
	OrderNote    string      `json:"orderNote,omitempty" gorm:"size:1024"`
	Items        []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount  float64     `json:"totalAmount" gorm:"not null"`
	GrandTotal   float64     `json:"grandTotal" gorm:"not null"`
	DiscountCode string      `json:"discountCode,omitempty" gorm:"size:64;index"`
	Status       OrderStatus `json:"status" gorm:"type:enum('pending','shipping','delivered','cancelled','returning','returned');default:'pending';index"`
	IsDeleted    bool        `json:"isDeleted" gorm:"not null;default:false;index"`
	CreatedAt    time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

type OrderItem struct {
	ID          uint64  `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID     uint64  `json:"-" gorm:"not null;index"`
	ProductID   uint64  `json:"productId" gorm:"not null"`
	ProductName string  `json:"productName" gorm:"size:255;not null"`
	SizeName    string  `json:"sizeName" gorm:"size:64;not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
}
