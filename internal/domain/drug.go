package domain

import "context"

type DrugRepository interface {
	ListDrugs(ctx context.Context) ([]Drug, error)
	GetDrugByID(ctx context.Context, id int) (*Drug, error)
	SearchDrugs(ctx context.Context, term string) ([]Drug, error)
	ListDrugsByCategory(ctx context.Context, categoryID int) ([]Drug, error)
	UpsertDrug(ctx context.Context, drug *Drug) (*Drug, error)
}
