package models

import "time"

// OrderType selects the tier discount applied during pricing.
type OrderType string

const (
	OrderTypePremium   OrderType = "premium"
	OrderTypeRegular   OrderType = "regular"
	OrderTypeWholesale OrderType = "wholesale"
)

// OrderRequest represents an incoming order request.
type OrderRequest struct {
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	OrderType    OrderType   `json:"order_type"`
	Items        []OrderItem `json:"items"`
	DiscountCode string      `json:"discount_code,omitempty"`
}

// OrderItem represents a single line item in an order.
// Items carry their own unit price; there is no product catalog to consult.
type OrderItem struct {
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is a persisted order record, one row in the orders table.
type Order struct {
	ID       int64     `json:"id"`
	Customer string    `json:"customer"`
	Total    float64   `json:"total"`
	Date     time.Time `json:"date"`
}

// Receipt is returned to the caller after an order has been processed.
// OrderID lets the caller fetch the stored record later.
type Receipt struct {
	OrderID   int64     `json:"order_id"`
	Customer  string    `json:"customer"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}
