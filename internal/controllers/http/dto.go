package http

import "time"

type OrderItemRequest struct {
	ProductID   uint64  `json:"productId" binding:"required"`
	ProductName string  `json:"productName" binding:"required"`
	SizeName    string  `json:"sizeName" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type CreateOrderRequest struct {
	FullName     string             `json:"fullName" binding:"required"`
	DateOfBirth  *time.Time         `json:"dateOfBirth"`
	PhoneNumber  string             `json:"phoneNumber" binding:"required"`
	Email        string             `json:"email" binding:"required,email"`
	Country      string             `json:"country" binding:"required"`
	City         string             `json:"city" binding:"required"`
	District     string             `json:"district" binding:"required"`
	Ward         string             `json:"ward" binding:"required"`
	Address      string             `json:"address" binding:"required"`
	OrderNote    string             `json:"orderNote"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount  float64            `json:"totalAmount" binding:"gte=0"`
	GrandTotal   float64            `json:"grandTotal" binding:"gte=0"`
	DiscountCode string             `json:"discountCode"`
}

type UpdateOrderRequest struct {
	FullName    string     `json:"fullName" binding:"required"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	PhoneNumber string     `json:"phoneNumber" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Country     string     `json:"country" binding:"required"`
	City        string     `json:"city" binding:"required"`
	District    string     `json:"district" binding:"required"`
	Ward        string     `json:"ward" binding:"required"`
	Address     string     `json:"address" binding:"required"`
	OrderNote   string     `json:"orderNote"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type DiscountRequest struct {
	Code               string    `json:"code" binding:"required"`
	DiscountPercentage float64   `json:"discountPercentage" binding:"gte=0,lte=100"`
	ExpirationDate     time.Time `json:"expirationDate" binding:"required"`
	UsageLimit         int       `json:"usageLimit" binding:"required,gte=1"`
	IsActive           *bool     `json:"isActive"`
}

type PreviewDiscountRequest struct {
	Code        string  `json:"code" binding:"required"`
	TotalAmount float64 `json:"totalAmount" binding:"gte=0"`
}

type ApplyDiscountRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderID     uint64  `json:"orderId" binding:"required"`
	TotalAmount float64 `json:"totalAmount" binding:"gte=0"`
}
