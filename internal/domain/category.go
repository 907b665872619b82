package domain

import "context"

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	UpsertCategory(ctx context.Context, category *Category) (*Category, error)
}
