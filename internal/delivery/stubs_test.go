package delivery

import (
	"context"
	"io"

	"pharmacare/internal/domain"
	"pharmacare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubCatalog struct {
	drugs      []domain.Drug
	categories []domain.Category
	err        error
	called     string
	arg        any
}

func (s *stubCatalog) GetAllDrugs(ctx context.Context) ([]domain.Drug, error) {
	s.called = "all"
	return s.drugs, s.err
}

func (s *stubCatalog) GetDrugByID(ctx context.Context, id int) (*domain.Drug, error) {
	s.called, s.arg = "byID", id
	if s.err != nil {
		return nil, s.err
	}
	return &s.drugs[0], nil
}

func (s *stubCatalog) SearchDrugs(ctx context.Context, term string) ([]domain.Drug, error) {
	s.called, s.arg = "search", term
	return s.drugs, s.err
}

func (s *stubCatalog) GetDrugsByCategory(ctx context.Context, categoryID int) ([]domain.Drug, error) {
	s.called, s.arg = "category", categoryID
	return s.drugs, s.err
}

func (s *stubCatalog) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func (s *stubCatalog) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	s.arg = slug
	if s.err != nil {
		return nil, s.err
	}
	return &s.categories[0], nil
}

func (s *stubCatalog) Browse(ctx context.Context, query, categorySlug string) (*usecase.BrowseResult, error) {
	s.called, s.arg = "browse", [2]string{query, categorySlug}
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.BrowseResult{Drugs: s.drugs, Categories: s.categories, Total: 10}, nil
}

type stubCart struct {
	cart     *domain.Cart
	err      error
	lastCall []int
}

func (s *stubCart) GetCart(ctx context.Context, userID int) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCart) GetCartItems(ctx context.Context, userID int) ([]domain.CartLine, error) {
	return s.cart.Items, s.err
}

func (s *stubCart) AddToCart(ctx context.Context, userID, drugID, quantity int) error {
	s.lastCall = []int{userID, drugID, quantity}
	return s.err
}

func (s *stubCart) UpdateCartItem(ctx context.Context, userID, drugID, quantity int) error {
	s.lastCall = []int{userID, drugID, quantity}
	return s.err
}

func (s *stubCart) ClearCart(ctx context.Context, userID int) error {
	s.lastCall = []int{userID}
	return s.err
}

type stubUsers struct {
	user *domain.User
	err  error
}

func (s *stubUsers) RegisterUser(ctx context.Context, name, email, password, phone string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUsers) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUsers) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return s.user, s.err
}

type stubOrders struct {
	order *domain.Order
	err   error
}

func (s *stubOrders) Checkout(ctx context.Context, userID int, address domain.Address, paymentMethod string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrders) GetOrderByID(ctx context.Context, id int) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrders) ListOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Order{*s.order}, nil
}

func (s *stubOrders) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	return s.order, s.err
}
