package domain

import "time"

// OrderStatusPending is the status every order starts in. Later statuses are
// free-form admin-assigned strings; no transition table is enforced and no
// status is terminal.
const OrderStatusPending = "Pending"

// Order is an immutable snapshot of cart contents taken at checkout. Only the
// status field changes after creation; the total is never recomputed.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id,omitempty"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      int64           `json:"total_price"`
	ShippingDetails ShippingDetails `json:"shipping_details"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is one product line frozen into an order.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// ShippingDetails is the delivery contact block captured at checkout.
type ShippingDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city"`
	Address  string `json:"address"`
}
