package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pharmacare/internal/domain"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeDrugRepo struct {
	drugs   []domain.Drug
	err     error
	calls   int
	lastArg any
}

func (f *fakeDrugRepo) ListDrugs(ctx context.Context) ([]domain.Drug, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.drugs, nil
}

func (f *fakeDrugRepo) GetDrugByID(ctx context.Context, id int) (*domain.Drug, error) {
	f.calls++
	f.lastArg = id
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.drugs {
		if d.ID == id {
			drug := d
			return &drug, nil
		}
	}
	return nil, fmt.Errorf("drug with id %d %w", id, domain.ErrNotFound)
}

func (f *fakeDrugRepo) SearchDrugs(ctx context.Context, term string) ([]domain.Drug, error) {
	f.calls++
	f.lastArg = term
	if f.err != nil {
		return nil, f.err
	}
	result := []domain.Drug{}
	for _, d := range f.drugs {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(term)) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeDrugRepo) ListDrugsByCategory(ctx context.Context, categoryID int) ([]domain.Drug, error) {
	f.calls++
	f.lastArg = categoryID
	if f.err != nil {
		return nil, f.err
	}
	result := []domain.Drug{}
	for _, d := range f.drugs {
		if d.CategoryID == categoryID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeDrugRepo) UpsertDrug(ctx context.Context, drug *domain.Drug) (*domain.Drug, error) {
	return drug, f.err
}

type fakeCategoryRepo struct {
	categories []domain.Category
	err        error
}

func (f *fakeCategoryRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeCategoryRepo) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, fmt.Errorf("category %q %w", slug, domain.ErrNotFound)
}

func (f *fakeCategoryRepo) UpsertCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return category, f.err
}

type cartKey struct{ user, drug int }

// fakeCartRepo keeps quantities per (user, drug) and joins drugs from catalog.
type fakeCartRepo struct {
	catalog []domain.Drug
	lines   map[cartKey]int
	order   []cartKey
	err     error
	deleted []cartKey
}

func newFakeCartRepo(catalog ...domain.Drug) *fakeCartRepo {
	return &fakeCartRepo{catalog: catalog, lines: map[cartKey]int{}}
}

func (f *fakeCartRepo) ListCartLines(ctx context.Context, userID int) ([]domain.CartLine, error) {
	if f.err != nil {
		return nil, f.err
	}
	lines := []domain.CartLine{}
	for _, k := range f.order {
		qty, ok := f.lines[k]
		if !ok || k.user != userID {
			continue
		}
		for _, d := range f.catalog {
			if d.ID == k.drug {
				lines = append(lines, domain.CartLine{Drug: d, Quantity: qty})
			}
		}
	}
	return lines, nil
}

func (f *fakeCartRepo) AddCartLine(ctx context.Context, userID, drugID, quantity int) error {
	if f.err != nil {
		return f.err
	}
	k := cartKey{userID, drugID}
	if _, ok := f.lines[k]; !ok {
		f.order = append(f.order, k)
	}
	f.lines[k] += quantity
	return nil
}

func (f *fakeCartRepo) SetCartLineQuantity(ctx context.Context, userID, drugID, quantity int) error {
	if f.err != nil {
		return f.err
	}
	k := cartKey{userID, drugID}
	if _, ok := f.lines[k]; ok {
		f.lines[k] = quantity
	}
	return nil
}

func (f *fakeCartRepo) DeleteCartLine(ctx context.Context, userID, drugID int) error {
	if f.err != nil {
		return f.err
	}
	k := cartKey{userID, drugID}
	f.deleted = append(f.deleted, k)
	delete(f.lines, k)
	return nil
}

func (f *fakeCartRepo) ClearCart(ctx context.Context, userID int) error {
	if f.err != nil {
		return f.err
	}
	for k := range f.lines {
		if k.user == userID {
			delete(f.lines, k)
		}
	}
	return nil
}

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, fmt.Errorf("%w: email taken", domain.ErrConflict)
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %w", domain.ErrNotFound)
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user with id %d %w", id, domain.ErrNotFound)
}

type fakeOrderRepo struct {
	orders        map[int]*domain.Order
	err           error
	checkoutCalls int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int]*domain.Order{}}
}

func (f *fakeOrderRepo) CreateOrderFromCart(ctx context.Context, userID int, address domain.Address, paymentMethod string) (*domain.Order, error) {
	f.checkoutCalls++
	if f.err != nil {
		return nil, f.err
	}
	order := &domain.Order{
		ID:              len(f.orders) + 1,
		UserID:          userID,
		Status:          domain.StatusPending,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   "unpaid",
		Items:           []domain.OrderItem{},
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id int) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("order with id %d %w", id, domain.ErrNotFound)
}

func (f *fakeOrderRepo) ListOrdersByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	orders := []domain.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with id %d %w", id, domain.ErrNotFound)
	}
	o.Status = status
	return o, nil
}
