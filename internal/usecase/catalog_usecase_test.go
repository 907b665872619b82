package usecase

import (
	"context"
	"errors"
	"testing"

	"pharmacare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paracetamol = domain.Drug{ID: 1, Name: "Paracetamol", Description: "fever reducer", Price: 15000, CategoryID: 1}
	amoxicillin = domain.Drug{ID: 7, Name: "Amoxicillin", Description: "antibiotic", Composition: "para-aminophenol free", Price: 55000, CategoryID: 2}

	feverCategory      = domain.Category{ID: 1, Name: "Obat Demam", Slug: "obat-demam"}
	antibioticCategory = domain.Category{ID: 2, Name: "Antibiotik", Slug: "antibiotik"}
)

func newCatalog(drugs *fakeDrugRepo) CatalogUseCase {
	cats := &fakeCategoryRepo{categories: []domain.Category{feverCategory, antibioticCategory}}
	return NewCatalogUseCase(drugs, cats, quietLogger())
}

func TestGetDrugByID_NonPositiveIDSkipsStore(t *testing.T) {
	repo := &fakeDrugRepo{drugs: []domain.Drug{paracetamol}}
	uc := newCatalog(repo)

	for _, id := range []int{0, -3} {
		drug, err := uc.GetDrugByID(context.Background(), id)
		assert.Nil(t, drug)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.Zero(t, repo.calls)
}

func TestGetDrugByID_PropagatesNotFound(t *testing.T) {
	uc := newCatalog(&fakeDrugRepo{drugs: []domain.Drug{paracetamol}})

	_, err := uc.GetDrugByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	drug, err := uc.GetDrugByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", drug.Name)
}

func TestGetDrugsByCategory_RejectsInvalidID(t *testing.T) {
	repo := &fakeDrugRepo{}
	uc := newCatalog(repo)

	_, err := uc.GetDrugsByCategory(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, repo.calls)
}

func TestGetDrugsByCategory_UnknownCategoryIsEmpty(t *testing.T) {
	uc := newCatalog(&fakeDrugRepo{drugs: []domain.Drug{paracetamol}})

	drugs, err := uc.GetDrugsByCategory(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, drugs)
}

func TestSearchDrugs_ForwardsTermUnchanged(t *testing.T) {
	repo := &fakeDrugRepo{drugs: []domain.Drug{paracetamol}}
	uc := newCatalog(repo)

	_, err := uc.SearchDrugs(context.Background(), "  PARA ")
	require.NoError(t, err)
	assert.Equal(t, "  PARA ", repo.lastArg)
}

func TestGetAllDrugs_StoreFailure(t *testing.T) {
	storeErr := errors.New("db down")
	uc := newCatalog(&fakeDrugRepo{err: storeErr})

	drugs, err := uc.GetAllDrugs(context.Background())
	assert.Nil(t, drugs)
	assert.ErrorIs(t, err, storeErr)
}

func TestGetCategoryBySlug(t *testing.T) {
	uc := newCatalog(&fakeDrugRepo{})

	category, err := uc.GetCategoryBySlug(context.Background(), "obat-demam")
	require.NoError(t, err)
	assert.Equal(t, 1, category.ID)

	_, err = uc.GetCategoryBySlug(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetCategoryBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrowse(t *testing.T) {
	uc := newCatalog(&fakeDrugRepo{drugs: []domain.Drug{paracetamol, amoxicillin}})

	result, err := uc.Browse(context.Background(), "para", "all")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []domain.Drug{paracetamol, amoxicillin}, result.Drugs)

	result, err = uc.Browse(context.Background(), "para", "obat-demam")
	require.NoError(t, err)
	assert.Equal(t, []domain.Drug{paracetamol}, result.Drugs)
	assert.Len(t, result.Categories, 2)
}
