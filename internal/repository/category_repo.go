package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pharmacare/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

const categoryGroupBy = `
        GROUP BY c.id, c.name, c.slug, c.description, c.icon, c.created_at, c.updated_at`

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT` + categoryColumns + `
        FROM categories c
        LEFT JOIN drugs d ON c.id = d.category_id` + categoryGroupBy + `
        ORDER BY c.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, wrapStoreError("list categories", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var row CategoryRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			r.log.Errorf("Failed to scan category row: %v", err)
			return nil, wrapStoreError("scan category", err)
		}
		categories = append(categories, row.ToCategory())
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during categories list iteration: %v", err)
		return nil, wrapStoreError("iterate categories", err)
	}

	r.log.Debugf("Retrieved %d categories", len(categories))
	return categories, nil
}

func (r *postgresCategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `SELECT` + categoryColumns + `
        FROM categories c
        LEFT JOIN drugs d ON c.id = d.category_id
        WHERE c.slug = $1` + categoryGroupBy
	var row CategoryRow
	err := r.db.QueryRowContext(ctx, query, slug).Scan(row.scanTargets()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with slug %q not found", slug)
			return nil, fmt.Errorf("category %q %w", slug, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get category by slug %q: %v", slug, err)
		return nil, wrapStoreError("get category by slug", err)
	}
	category := row.ToCategory()
	return &category, nil
}

// UpsertCategory writes a category keyed by slug. Count is left at zero.
func (r *postgresCategoryRepository) UpsertCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
        INSERT INTO categories (name, slug, description, icon)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (slug) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            icon = EXCLUDED.icon,
            updated_at = CURRENT_TIMESTAMP
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		category.Name, category.Slug, nullString(category.Description), nullString(category.Icon),
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		r.log.Errorf("Failed to upsert category '%s': %v", category.Slug, err)
		return nil, wrapStoreError("upsert category", err)
	}
	r.log.Infof("Category upserted with ID: %d, Slug: %s", category.ID, category.Slug)
	return category, nil
}
