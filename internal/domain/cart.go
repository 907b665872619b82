package domain

import "context"

// CartRepository stores at most one line per (user, drug).
type CartRepository interface {
	ListCartLines(ctx context.Context, userID int) ([]CartLine, error)
	// AddCartLine inserts the line or increments its quantity in one statement.
	AddCartLine(ctx context.Context, userID, drugID, quantity int) error
	SetCartLineQuantity(ctx context.Context, userID, drugID, quantity int) error
	DeleteCartLine(ctx context.Context, userID, drugID int) error
	ClearCart(ctx context.Context, userID int) error
}
