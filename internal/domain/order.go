package domain

import "time"

// OrderStatusPending is the only status this API ever writes; transitions
// beyond pending are handled out of band.
const OrderStatusPending = "pending"

type OrderItem struct {
	ProductID string  `json:"productId" dynamodbav:"product_id"`
	Title     string  `json:"title" dynamodbav:"title"`
	Price     float64 `json:"price" dynamodbav:"price"`
	Quantity  int     `json:"quantity" dynamodbav:"quantity"`
}

type Order struct {
	OrderID   string      `json:"id" dynamodbav:"order_id"`
	UserID    string      `json:"userId" dynamodbav:"user_id"`
	Items     []OrderItem `json:"items" dynamodbav:"items"`
	Total     float64     `json:"total" dynamodbav:"total"`
	Status    string      `json:"status" dynamodbav:"status"`
	Address   string      `json:"address,omitempty" dynamodbav:"address"`
	CreatedAt time.Time   `json:"createdAt" dynamodbav:"created_at"`
}

type CreateOrderRequest struct {
	UserID  string      `json:"userId" validate:"required"`
	Items   []OrderItem `json:"items" validate:"required,min=1,dive"`
	Address string      `json:"address"`
}
