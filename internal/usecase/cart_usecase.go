package usecase

import (
	"context"
	"fmt"

	"pharmacare/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CartUseCase interface {
	GetCart(ctx context.Context, userID int) (*domain.Cart, error)
	GetCartItems(ctx context.Context, userID int) ([]domain.CartLine, error)
	AddToCart(ctx context.Context, userID, drugID, quantity int) error
	UpdateCartItem(ctx context.Context, userID, drugID, quantity int) error
	ClearCart(ctx context.Context, userID int) error
}

type cartUseCase struct {
	cartRepo domain.CartRepository
	log      *logrus.Logger
}

func NewCartUseCase(repo domain.CartRepository, logger *logrus.Logger) CartUseCase {
	return &cartUseCase{
		cartRepo: repo,
		log:      logger,
	}
}

// GetCart returns the cart lines together with the item count and a subtotal
// rounded to two decimal places.
func (uc *cartUseCase) GetCart(ctx context.Context, userID int) (*domain.Cart, error) {
	lines, err := uc.GetCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := &domain.Cart{UserID: userID, Items: lines}
	subtotal := decimal.Zero
	for _, line := range lines {
		cart.ItemCount += line.Quantity
		subtotal = subtotal.Add(decimal.NewFromFloat(line.Drug.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	cart.Subtotal = subtotal.Round(2).InexactFloat64()
	return cart, nil
}

func (uc *cartUseCase) GetCartItems(ctx context.Context, userID int) ([]domain.CartLine, error) {
	if err := validateUserID(userID); err != nil {
		uc.log.Warnf("Use Case: Cart read with invalid user ID %d", userID)
		return nil, err
	}
	lines, err := uc.cartRepo.ListCartLines(ctx, userID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list cart for user %d: %v", userID, err)
		return nil, err
	}
	return lines, nil
}

// AddToCart is additive: adding the same drug twice sums the quantities.
// Stock is not checked here.
func (uc *cartUseCase) AddToCart(ctx context.Context, userID, drugID, quantity int) error {
	if err := validateLine(userID, drugID); err != nil {
		uc.log.Warnf("Use Case: Add to cart rejected (user %d, drug %d): %v", userID, drugID, err)
		return err
	}
	if quantity < 1 {
		uc.log.Warnf("Use Case: Add to cart with non-positive quantity %d", quantity)
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrInvalidInput)
	}

	uc.log.Infof("Use Case: Adding drug %d (qty %d) to cart of user %d", drugID, quantity, userID)
	if err := uc.cartRepo.AddCartLine(ctx, userID, drugID, quantity); err != nil {
		uc.log.Errorf("Use Case: Repository failed to add cart line: %v", err)
		return err
	}
	return nil
}

// UpdateCartItem sets the quantity of a line, removing it at zero. Updating a
// line that does not exist is a no-op, not an error.
func (uc *cartUseCase) UpdateCartItem(ctx context.Context, userID, drugID, quantity int) error {
	if err := validateLine(userID, drugID); err != nil {
		uc.log.Warnf("Use Case: Cart update rejected (user %d, drug %d): %v", userID, drugID, err)
		return err
	}
	if quantity < 0 {
		uc.log.Warnf("Use Case: Cart update with negative quantity %d", quantity)
		return fmt.Errorf("%w: quantity cannot be negative", domain.ErrInvalidInput)
	}

	if quantity == 0 {
		uc.log.Infof("Use Case: Removing drug %d from cart of user %d", drugID, userID)
		if err := uc.cartRepo.DeleteCartLine(ctx, userID, drugID); err != nil {
			uc.log.Errorf("Use Case: Repository failed to delete cart line: %v", err)
			return err
		}
		return nil
	}

	uc.log.Infof("Use Case: Setting drug %d to qty %d in cart of user %d", drugID, quantity, userID)
	if err := uc.cartRepo.SetCartLineQuantity(ctx, userID, drugID, quantity); err != nil {
		uc.log.Errorf("Use Case: Repository failed to update cart line: %v", err)
		return err
	}
	return nil
}

func (uc *cartUseCase) ClearCart(ctx context.Context, userID int) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := uc.cartRepo.ClearCart(ctx, userID); err != nil {
		uc.log.Errorf("Use Case: Repository failed to clear cart of user %d: %v", userID, err)
		return err
	}
	uc.log.Infof("Use Case: Cart cleared for user %d", userID)
	return nil
}

func validateUserID(userID int) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id must be a positive integer", domain.ErrInvalidInput)
	}
	return nil
}

func validateLine(userID, drugID int) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if drugID <= 0 {
		return fmt.Errorf("%w: drug id must be a positive integer", domain.ErrInvalidInput)
	}
	return nil
}
