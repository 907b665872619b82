package domain

import (
	"context"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

type Order struct {
	ID              int         `json:"id"`
	UserID          int         `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentStatus   string      `json:"paymentStatus"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem keeps the unit price at checkout time, independent of later
// catalog price changes.
type OrderItem struct {
	DrugID   int     `json:"drugId"`
	DrugName string  `json:"drugName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderRepository interface {
	// CreateOrderFromCart moves the user's cart into a new order atomically.
	CreateOrderFromCart(ctx context.Context, userID int, address Address, paymentMethod string) (*Order, error)
	GetOrderByID(ctx context.Context, id int) (*Order, error)
	ListOrdersByUserID(ctx context.Context, userID int) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status OrderStatus) (*Order, error)
}

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
