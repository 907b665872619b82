package repository

import (
	"database/sql"
	"time"

	"pharmacare/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// drugColumns is the select list every drug query shares; scanTargets must
// follow the same order.
const drugColumns = `
        d.id, d.name, d.description, d.composition, d.price, d.stock,
        d.category_id, c.name, d.manufacturer, d.dosage,
        d.side_effects, d.contraindications, d.image_url, d.requires_prescription,
        d.created_at, d.updated_at`

// DrugRow is the raw drugs row as stored, plus the joined category name.
type DrugRow struct {
	ID                   int
	Name                 string
	Description          sql.NullString
	Composition          sql.NullString
	Price                decimal.Decimal
	Stock                int
	CategoryID           sql.NullInt64
	CategoryName         sql.NullString
	Manufacturer         sql.NullString
	Dosage               sql.NullString
	SideEffects          pq.StringArray
	Contraindications    pq.StringArray
	ImageURL             sql.NullString
	RequiresPrescription bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (r *DrugRow) scanTargets() []any {
	return []any{
		&r.ID, &r.Name, &r.Description, &r.Composition, &r.Price, &r.Stock,
		&r.CategoryID, &r.CategoryName, &r.Manufacturer, &r.Dosage,
		&r.SideEffects, &r.Contraindications, &r.ImageURL, &r.RequiresPrescription,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

// ToDrug coerces the row into a domain.Drug. Nothing is validated.
func (r *DrugRow) ToDrug() domain.Drug {
	drug := domain.Drug{
		ID:                   r.ID,
		Name:                 r.Name,
		Description:          r.Description.String,
		Composition:          r.Composition.String,
		Price:                r.Price.InexactFloat64(),
		Stock:                r.Stock,
		Category:             r.CategoryName.String,
		Manufacturer:         r.Manufacturer.String,
		Dosage:               r.Dosage.String,
		SideEffects:          []string(r.SideEffects),
		Contraindications:    []string(r.Contraindications),
		ImageURL:             r.ImageURL.String,
		RequiresPrescription: r.RequiresPrescription,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
	if r.CategoryID.Valid {
		drug.CategoryID = int(r.CategoryID.Int64)
	}
	if drug.SideEffects == nil {
		drug.SideEffects = []string{}
	}
	if drug.Contraindications == nil {
		drug.Contraindications = []string{}
	}
	return drug
}

// NewDrugRow is the inverse of ToDrug for the stored columns. Empty strings and
// a zero category id become NULL.
func NewDrugRow(drug *domain.Drug) DrugRow {
	row := DrugRow{
		ID:                   drug.ID,
		Name:                 drug.Name,
		Description:          nullString(drug.Description),
		Composition:          nullString(drug.Composition),
		Price:                decimal.NewFromFloat(drug.Price),
		Stock:                drug.Stock,
		Manufacturer:         nullString(drug.Manufacturer),
		Dosage:               nullString(drug.Dosage),
		SideEffects:          pq.StringArray(drug.SideEffects),
		Contraindications:    pq.StringArray(drug.Contraindications),
		ImageURL:             nullString(drug.ImageURL),
		RequiresPrescription: drug.RequiresPrescription,
		CreatedAt:            drug.CreatedAt,
		UpdatedAt:            drug.UpdatedAt,
	}
	if drug.CategoryID != 0 {
		row.CategoryID = sql.NullInt64{Int64: int64(drug.CategoryID), Valid: true}
	}
	if row.SideEffects == nil {
		row.SideEffects = pq.StringArray{}
	}
	if row.Contraindications == nil {
		row.Contraindications = pq.StringArray{}
	}
	return row
}

const categoryColumns = `
        c.id, c.name, c.slug, c.description, c.icon, c.created_at, c.updated_at,
        COUNT(d.id)`

type CategoryRow struct {
	ID          int
	Name        string
	Slug        string
	Description sql.NullString
	Icon        sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DrugCount   int64
}

func (r *CategoryRow) scanTargets() []any {
	return []any{
		&r.ID, &r.Name, &r.Slug, &r.Description, &r.Icon, &r.CreatedAt, &r.UpdatedAt, &r.DrugCount,
	}
}

func (r *CategoryRow) ToCategory() domain.Category {
	return domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description.String,
		Icon:        r.Icon.String,
		Count:       int(r.DrugCount),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDrug(s rowScanner) (domain.Drug, error) {
	var row DrugRow
	if err := s.Scan(row.scanTargets()...); err != nil {
		return domain.Drug{}, err
	}
	return row.ToDrug(), nil
}
