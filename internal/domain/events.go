package domain

import "time"

type OrderCreatedEvent struct {
	OrderID      uint64    `json:"orderId"`
	Number       string    `json:"number"`
	TotalAmount  float64   `json:"totalAmount"`
	GrandTotal   float64   `json:"grandTotal"`
	DiscountCode string    `json:"discountCode,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint64      `json:"orderId"`
	Number    string      `json:"number"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	ChangedAt time.Time   `json:"changedAt"`
}
