package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pharmacare/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresDrugRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresDrugRepository(db *sql.DB, logger *logrus.Logger) domain.DrugRepository {
	return &postgresDrugRepository{
		db:  db,
		log: logger,
	}
}

const drugFrom = `
        FROM drugs d
        LEFT JOIN categories c ON d.category_id = c.id`

func (r *postgresDrugRepository) ListDrugs(ctx context.Context) ([]domain.Drug, error) {
	query := `SELECT` + drugColumns + drugFrom + `
        ORDER BY d.name`
	drugs, err := r.queryDrugs(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list drugs: %v", err)
		return nil, wrapStoreError("list drugs", err)
	}
	r.log.Debugf("Retrieved %d drugs", len(drugs))
	return drugs, nil
}

func (r *postgresDrugRepository) GetDrugByID(ctx context.Context, id int) (*domain.Drug, error) {
	query := `SELECT` + drugColumns + drugFrom + `
        WHERE d.id = $1`
	drug, err := scanDrug(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Drug with ID %d not found", id)
			return nil, fmt.Errorf("drug with id %d %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get drug by ID %d: %v", id, err)
		return nil, wrapStoreError("get drug by id", err)
	}
	return &drug, nil
}

func (r *postgresDrugRepository) SearchDrugs(ctx context.Context, term string) ([]domain.Drug, error) {
	query := `SELECT` + drugColumns + drugFrom + `
        WHERE d.name ILIKE $1 OR d.description ILIKE $1 OR d.composition ILIKE $1
        ORDER BY d.name`
	drugs, err := r.queryDrugs(ctx, query, containsPattern(term))
	if err != nil {
		r.log.Errorf("Failed to search drugs for %q: %v", term, err)
		return nil, wrapStoreError("search drugs", err)
	}
	r.log.Debugf("Search %q matched %d drugs", term, len(drugs))
	return drugs, nil
}

func (r *postgresDrugRepository) ListDrugsByCategory(ctx context.Context, categoryID int) ([]domain.Drug, error) {
	query := `SELECT` + drugColumns + drugFrom + `
        WHERE d.category_id = $1
        ORDER BY d.name`
	drugs, err := r.queryDrugs(ctx, query, categoryID)
	if err != nil {
		r.log.Errorf("Failed to list drugs for category %d: %v", categoryID, err)
		return nil, wrapStoreError("list drugs by category", err)
	}
	r.log.Debugf("Retrieved %d drugs for category %d", len(drugs), categoryID)
	return drugs, nil
}

// UpsertDrug writes a drug keyed by its unique name. Used by the seeder; the
// storefront itself never writes drugs.
func (r *postgresDrugRepository) UpsertDrug(ctx context.Context, drug *domain.Drug) (*domain.Drug, error) {
	row := NewDrugRow(drug)
	query := `
        INSERT INTO drugs (name, description, composition, price, stock, category_id,
                           manufacturer, dosage, side_effects, contraindications,
                           image_url, requires_prescription)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (name) DO UPDATE SET
            description = EXCLUDED.description,
            composition = EXCLUDED.composition,
            price = EXCLUDED.price,
            stock = EXCLUDED.stock,
            category_id = EXCLUDED.category_id,
            manufacturer = EXCLUDED.manufacturer,
            dosage = EXCLUDED.dosage,
            side_effects = EXCLUDED.side_effects,
            contraindications = EXCLUDED.contraindications,
            image_url = EXCLUDED.image_url,
            requires_prescription = EXCLUDED.requires_prescription,
            updated_at = CURRENT_TIMESTAMP
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		row.Name, row.Description, row.Composition, row.Price, row.Stock, row.CategoryID,
		row.Manufacturer, row.Dosage, row.SideEffects, row.Contraindications,
		row.ImageURL, row.RequiresPrescription,
	).Scan(&drug.ID, &drug.CreatedAt, &drug.UpdatedAt)
	if err != nil {
		r.log.Errorf("Failed to upsert drug '%s': %v", drug.Name, err)
		return nil, wrapStoreError("upsert drug", err)
	}
	r.log.Infof("Drug upserted with ID: %d, Name: %s", drug.ID, drug.Name)
	return drug, nil
}

func (r *postgresDrugRepository) queryDrugs(ctx context.Context, query string, args ...any) ([]domain.Drug, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drugs := []domain.Drug{}
	for rows.Next() {
		drug, err := scanDrug(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning drug row: %w", err)
		}
		drugs = append(drugs, drug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drugs: %w", err)
	}
	return drugs, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere. LIKE
// metacharacters in term are matched literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
