package usecase

import (
	"context"
	"fmt"

	"pharmacare/internal/domain"
	"pharmacare/internal/filter"

	"github.com/sirupsen/logrus"
)

// CatalogUseCase answers every read the storefront makes against drugs and
// categories. None of its operations write.
type CatalogUseCase interface {
	GetAllDrugs(ctx context.Context) ([]domain.Drug, error)
	GetDrugByID(ctx context.Context, id int) (*domain.Drug, error)
	SearchDrugs(ctx context.Context, term string) ([]domain.Drug, error)
	GetDrugsByCategory(ctx context.Context, categoryID int) ([]domain.Drug, error)
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// Browse loads the full catalog and narrows it with filter.Drugs.
	Browse(ctx context.Context, query, categorySlug string) (*BrowseResult, error)
}

type BrowseResult struct {
	Drugs      []domain.Drug
	Categories []domain.Category
	Total      int
}

type catalogUseCase struct {
	drugRepo     domain.DrugRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCatalogUseCase(dRepo domain.DrugRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) CatalogUseCase {
	return &catalogUseCase{
		drugRepo:     dRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (uc *catalogUseCase) GetAllDrugs(ctx context.Context) ([]domain.Drug, error) {
	drugs, err := uc.drugRepo.ListDrugs(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list drugs: %v", err)
		return nil, err
	}
	uc.log.Debugf("Use Case: Retrieved %d drugs", len(drugs))
	return drugs, nil
}

func (uc *catalogUseCase) GetDrugByID(ctx context.Context, id int) (*domain.Drug, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Drug lookup with invalid ID %d treated as not found", id)
		return nil, fmt.Errorf("drug with id %d %w", id, domain.ErrNotFound)
	}
	drug, err := uc.drugRepo.GetDrugByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get drug ID %d: %v", id, err)
		return nil, err
	}
	return drug, nil
}

// SearchDrugs forwards the term unchanged. An empty term matches every drug.
func (uc *catalogUseCase) SearchDrugs(ctx context.Context, term string) ([]domain.Drug, error) {
	uc.log.Infof("Use Case: Searching drugs for %q", term)
	drugs, err := uc.drugRepo.SearchDrugs(ctx, term)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to search drugs: %v", err)
		return nil, err
	}
	return drugs, nil
}

func (uc *catalogUseCase) GetDrugsByCategory(ctx context.Context, categoryID int) ([]domain.Drug, error) {
	if categoryID <= 0 {
		uc.log.Warnf("Use Case: Attempted list by category with invalid category ID: %d", categoryID)
		return nil, fmt.Errorf("%w: category id must be a positive integer", domain.ErrInvalidInput)
	}
	drugs, err := uc.drugRepo.ListDrugsByCategory(ctx, categoryID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list drugs for category %d: %v", categoryID, err)
		return nil, err
	}
	uc.log.Debugf("Use Case: Retrieved %d drugs for category %d", len(drugs), categoryID)
	return drugs, nil
}

func (uc *catalogUseCase) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, err
	}
	return categories, nil
}

func (uc *catalogUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, fmt.Errorf("category %w", domain.ErrNotFound)
	}
	category, err := uc.categoryRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category %q: %v", slug, err)
		return nil, err
	}
	return category, nil
}

func (uc *catalogUseCase) Browse(ctx context.Context, query, categorySlug string) (*BrowseResult, error) {
	drugs, err := uc.drugRepo.ListDrugs(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Browse failed to load drugs: %v", err)
		return nil, err
	}
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Browse failed to load categories: %v", err)
		return nil, err
	}

	matched := filter.Drugs(drugs, categories, query, categorySlug)
	uc.log.Debugf("Use Case: Browse q=%q category=%q matched %d of %d drugs", query, categorySlug, len(matched), len(drugs))
	return &BrowseResult{
		Drugs:      matched,
		Categories: categories,
		Total:      len(drugs),
	}, nil
}
