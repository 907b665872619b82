package usecase

import (
	"context"
	"fmt"
	"strings"

	"pharmacare/internal/domain"

	"github.com/sirupsen/logrus"
)

var paymentMethods = map[string]bool{
	"cod":           true,
	"bank_transfer": true,
	"e_wallet":      true,
	"credit_card":   true,
}

type OrderUseCase interface {
	Checkout(ctx context.Context, userID int, address domain.Address, paymentMethod string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
}

type orderUseCase struct {
	orderRepo domain.OrderRepository
	log       *logrus.Logger
}

func NewOrderUseCase(repo domain.OrderRepository, logger *logrus.Logger) OrderUseCase {
	return &orderUseCase{
		orderRepo: repo,
		log:       logger,
	}
}

func (uc *orderUseCase) Checkout(ctx context.Context, userID int, address domain.Address, paymentMethod string) (*domain.Order, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(address.Street) == "" || strings.TrimSpace(address.City) == "" {
		uc.log.Warnf("Use Case: Checkout for user %d without street or city", userID)
		return nil, fmt.Errorf("%w: shipping address requires street and city", domain.ErrInvalidInput)
	}
	if !paymentMethods[paymentMethod] {
		uc.log.Warnf("Use Case: Checkout for user %d with unsupported payment method %q", userID, paymentMethod)
		return nil, fmt.Errorf("%w: unsupported payment method %q", domain.ErrInvalidInput, paymentMethod)
	}

	uc.log.Infof("Use Case: Checking out cart of user %d", userID)
	order, err := uc.orderRepo.CreateOrderFromCart(ctx, userID, address, paymentMethod)
	if err != nil {
		uc.log.Errorf("Use Case: Checkout failed for user %d: %v", userID, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Order %d placed by user %d", order.ID, userID)
	return order, nil
}

func (uc *orderUseCase) GetOrderByID(ctx context.Context, id int) (*domain.Order, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get order with invalid ID: %d", id)
		return nil, fmt.Errorf("order with id %d %w", id, domain.ErrNotFound)
	}
	return uc.orderRepo.GetOrderByID(ctx, id)
}

func (uc *orderUseCase) ListOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.ListOrdersByUserID(ctx, userID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders for user %d: %v", userID, err)
		return nil, err
	}
	return orders, nil
}

func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: order id must be a positive integer", domain.ErrInvalidInput)
	}
	if !domain.IsValidStatus(status) {
		uc.log.Warnf("Use Case: Invalid status %q for order %d", status, id)
		return nil, fmt.Errorf("%w: invalid order status %q", domain.ErrInvalidInput, status)
	}
	order, err := uc.orderRepo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update status of order %d: %v", id, err)
		return nil, err
	}
	return order, nil
}
