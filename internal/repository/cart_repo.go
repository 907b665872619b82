package repository

import (
	"context"
	"database/sql"

	"pharmacare/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresCartRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCartRepository(db *sql.DB, logger *logrus.Logger) domain.CartRepository {
	return &postgresCartRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresCartRepository) ListCartLines(ctx context.Context, userID int) ([]domain.CartLine, error) {
	query := `SELECT ci.quantity,` + drugColumns + `
        FROM cart_items ci
        JOIN drugs d ON ci.drug_id = d.id
        LEFT JOIN categories c ON d.category_id = c.id
        WHERE ci.user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Failed to query cart for user %d: %v", userID, err)
		return nil, wrapStoreError("list cart items", err)
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var (
			quantity int
			row      DrugRow
		)
		dest := append([]any{&quantity}, row.scanTargets()...)
		if err := rows.Scan(dest...); err != nil {
			r.log.Errorf("Failed to scan cart row for user %d: %v", userID, err)
			return nil, wrapStoreError("scan cart item", err)
		}
		lines = append(lines, domain.CartLine{Drug: row.ToDrug(), Quantity: quantity})
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during cart iteration for user %d: %v", userID, err)
		return nil, wrapStoreError("iterate cart items", err)
	}

	r.log.Debugf("Retrieved %d cart lines for user %d", len(lines), userID)
	return lines, nil
}

// AddCartLine is a single upsert so concurrent adds for the same pair both land.
func (r *postgresCartRepository) AddCartLine(ctx context.Context, userID, drugID, quantity int) error {
	query := `
        INSERT INTO cart_items (user_id, drug_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, drug_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, userID, drugID, quantity); err != nil {
		r.log.Errorf("Failed to add drug %d (qty %d) to cart of user %d: %v", drugID, quantity, userID, err)
		return wrapStoreError("add cart item", err)
	}
	r.log.Infof("Added drug %d (qty %d) to cart of user %d", drugID, quantity, userID)
	return nil
}

// SetCartLineQuantity overwrites the quantity of an existing line. A missing
// line is left missing.
func (r *postgresCartRepository) SetCartLineQuantity(ctx context.Context, userID, drugID, quantity int) error {
	query := `
        UPDATE cart_items
        SET quantity = $3, updated_at = CURRENT_TIMESTAMP
        WHERE user_id = $1 AND drug_id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, drugID, quantity)
	if err != nil {
		r.log.Errorf("Failed to set quantity of drug %d in cart of user %d: %v", drugID, userID, err)
		return wrapStoreError("update cart item", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		r.log.Debugf("No cart line for user %d and drug %d, update skipped", userID, drugID)
	}
	return nil
}

func (r *postgresCartRepository) DeleteCartLine(ctx context.Context, userID, drugID int) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND drug_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, drugID); err != nil {
		r.log.Errorf("Failed to remove drug %d from cart of user %d: %v", drugID, userID, err)
		return wrapStoreError("delete cart item", err)
	}
	r.log.Infof("Removed drug %d from cart of user %d", drugID, userID)
	return nil
}

func (r *postgresCartRepository) ClearCart(ctx context.Context, userID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Errorf("Failed to clear cart of user %d: %v", userID, err)
		return wrapStoreError("clear cart", err)
	}
	n, _ := result.RowsAffected()
	r.log.Infof("Cleared %d cart lines for user %d", n, userID)
	return nil
}
