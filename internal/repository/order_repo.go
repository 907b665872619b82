package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pharmacare/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

type checkoutLine struct {
	cartItemID int
	drugID     int
	name       string
	price      decimal.Decimal
	quantity   int
}

func (r *postgresOrderRepository) CreateOrderFromCart(ctx context.Context, userID int, address domain.Address, paymentMethod string) (order *domain.Order, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Failed to begin checkout transaction for user %d: %v", userID, err)
		return nil, wrapStoreError("start transaction", err)
	}
	defer func() {
		if err == nil {
			return
		}
		r.log.Warnf("Rolling back checkout for user %d: %v", userID, err)
		if rbErr := tx.Rollback(); rbErr != nil {
			r.log.Errorf("Failed to rollback checkout transaction: %v", rbErr)
		}
	}()

	// Drug rows are locked in id order so concurrent checkouts cannot deadlock.
	// Cart lines are locked too: a concurrent add waits until the order commits.
	linesQuery := `
        SELECT ci.id, d.id, d.name, d.price, ci.quantity
        FROM cart_items ci
        JOIN drugs d ON ci.drug_id = d.id
        WHERE ci.user_id = $1
        ORDER BY d.id
        FOR UPDATE OF d, ci`
	lines, err := r.readCheckoutLines(ctx, tx, linesQuery, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart of user %d is empty", domain.ErrInvalidInput, userID)
	}

	total := decimal.Zero
	for _, line := range lines {
		res, execErr := tx.ExecContext(ctx, `
        UPDATE drugs SET stock = stock - $1, updated_at = CURRENT_TIMESTAMP
        WHERE id = $2 AND stock >= $1`, line.quantity, line.drugID)
		if execErr != nil {
			return nil, wrapStoreError("reserve stock", execErr)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, fmt.Errorf("%w for drug %q", domain.ErrInsufficientStock, line.name)
		}
		total = total.Add(line.price.Mul(decimal.NewFromInt(int64(line.quantity))))
	}

	addressJSON, err := json.Marshal(address)
	if err != nil {
		return nil, fmt.Errorf("could not encode shipping address: %w", err)
	}

	order = &domain.Order{
		UserID:          userID,
		Total:           total.Round(2).InexactFloat64(),
		Status:          domain.StatusPending,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   "unpaid",
	}
	err = tx.QueryRowContext(ctx, `
        INSERT INTO orders (user_id, total, status, shipping_address, payment_method, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`,
		userID, total.Round(2), order.Status, string(addressJSON), paymentMethod, order.PaymentStatus,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.log.Errorf("Failed to insert order for user %d: %v", userID, err)
		return nil, wrapStoreError("create order", err)
	}

	order.Items = make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		_, err = tx.ExecContext(ctx, `
        INSERT INTO order_items (order_id, drug_id, quantity, price)
        VALUES ($1, $2, $3, $4)`, order.ID, line.drugID, line.quantity, line.price)
		if err != nil {
			r.log.Errorf("Failed to insert order item (drug_id: %d) for order %d: %v", line.drugID, order.ID, err)
			return nil, wrapStoreError("create order item", err)
		}
		order.Items = append(order.Items, domain.OrderItem{
			DrugID:   line.drugID,
			DrugName: line.name,
			Quantity: line.quantity,
			Price:    line.price.InexactFloat64(),
		})
	}

	// Only the lines that went into the order are removed.
	cartItemIDs := make([]int, 0, len(lines))
	for _, line := range lines {
		cartItemIDs = append(cartItemIDs, line.cartItemID)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ANY($1)`, pq.Array(cartItemIDs)); err != nil {
		return nil, wrapStoreError("clear cart", err)
	}

	if err = tx.Commit(); err != nil {
		r.log.Errorf("Failed to commit checkout for user %d: %v", userID, err)
		return nil, wrapStoreError("commit checkout", err)
	}

	r.log.Infof("Order %d created for user %d with %d items, total %s", order.ID, userID, len(order.Items), total.StringFixed(2))
	return order, nil
}

func (r *postgresOrderRepository) readCheckoutLines(ctx context.Context, tx *sql.Tx, query string, userID int) ([]checkoutLine, error) {
	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Failed to read cart for checkout of user %d: %v", userID, err)
		return nil, wrapStoreError("read cart for checkout", err)
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		if err := rows.Scan(&line.cartItemID, &line.drugID, &line.name, &line.price, &line.quantity); err != nil {
			return nil, wrapStoreError("scan checkout line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("iterate checkout lines", err)
	}
	return lines, nil
}

const orderColumns = `id, user_id, total, status, shipping_address, payment_method, payment_status, created_at, updated_at`

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %d not found", id)
			return nil, fmt.Errorf("order with id %d %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get order by ID %d: %v", id, err)
		return nil, wrapStoreError("get order", err)
	}

	itemsByOrder, err := r.orderItems(ctx, []int{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = itemsByOrder[order.ID]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	return order, nil
}

func (r *postgresOrderRepository) ListOrdersByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Failed to list orders for user ID %d: %v", userID, err)
		return nil, wrapStoreError("list orders", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	orderIDs := []int{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Errorf("Failed to scan order row for user ID %d: %v", userID, err)
			return nil, wrapStoreError("scan order", err)
		}
		orders = append(orders, *order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapStoreError("iterate orders", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.orderItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}

	r.log.Debugf("Retrieved %d orders for user ID %d", len(orders), userID)
	return orders, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	query := `UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		r.log.Errorf("Failed to update status for order ID %d: %v", id, err)
		return nil, wrapStoreError("update order status", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		r.log.Warnf("Order with ID %d not found for status update", id)
		return nil, fmt.Errorf("order with id %d %w", id, domain.ErrNotFound)
	}
	r.log.Infof("Order %d moved to status '%s'", id, status)
	return r.GetOrderByID(ctx, id)
}

func (r *postgresOrderRepository) orderItems(ctx context.Context, orderIDs []int) (map[int][]domain.OrderItem, error) {
	query := `
        SELECT oi.order_id, oi.drug_id, d.name, oi.quantity, oi.price
        FROM order_items oi
        LEFT JOIN drugs d ON oi.drug_id = d.id
        WHERE oi.order_id = ANY($1)
        ORDER BY oi.order_id, oi.id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		r.log.Errorf("Failed to query items for orders %v: %v", orderIDs, err)
		return nil, wrapStoreError("list order items", err)
	}
	defer rows.Close()

	items := make(map[int][]domain.OrderItem)
	for rows.Next() {
		var (
			orderID int
			name    sql.NullString
			price   decimal.Decimal
			item    domain.OrderItem
		)
		if err := rows.Scan(&orderID, &item.DrugID, &name, &item.Quantity, &price); err != nil {
			return nil, wrapStoreError("scan order item", err)
		}
		item.DrugName = name.String
		item.Price = price.InexactFloat64()
		items[orderID] = append(items[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("iterate order items", err)
	}
	return items, nil
}

func scanOrder(s rowScanner) (*domain.Order, error) {
	var (
		order   domain.Order
		total   decimal.Decimal
		address []byte
		method  sql.NullString
		payment sql.NullString
	)
	err := s.Scan(&order.ID, &order.UserID, &total, &order.Status, &address,
		&method, &payment, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address of order %d: %w", order.ID, err)
		}
	}
	order.Total = total.InexactFloat64()
	order.PaymentMethod = method.String
	order.PaymentStatus = payment.String
	return &order, nil
}
