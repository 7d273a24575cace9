package models

import "time"

const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusCOD     = "cod"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPlaced     = "placed"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusDispatched = "dispatched"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is server-owned; consumed read-only here except at creation.
type Order struct {
	OrderID       string      `json:"orderId"`
	OrderNumber   string      `json:"orderNumber"`
	Items         []OrderItem `json:"items,omitempty"`
	TotalAmount   float64     `json:"totalAmount"`
	PaymentMethod string      `json:"paymentMethod"`
	PaymentStatus string      `json:"paymentStatus"`
	OrderStatus   string      `json:"orderStatus"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// CanCancel reports whether the order is still in a cancellable state. The
// server remains the final arbiter; this only gates the UI action.
func (o Order) CanCancel() bool {
	return o.OrderStatus == OrderStatusPlaced || o.OrderStatus == OrderStatusPending
}
