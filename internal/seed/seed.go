// Package seed loads the demo catalog into the store. Running it twice leaves
// the same rows behind: categories are matched by slug, drugs by name.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"pharmacare/internal/domain"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type Fixtures struct {
	Categories []CategoryFixture `yaml:"categories"`
	Drugs      []DrugFixture     `yaml:"drugs"`
}

type CategoryFixture struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type DrugFixture struct {
	Name                 string   `yaml:"name"`
	Description          string   `yaml:"description"`
	Composition          string   `yaml:"composition"`
	Price                float64  `yaml:"price"`
	Stock                int      `yaml:"stock"`
	Category             string   `yaml:"category"` // category slug
	Manufacturer         string   `yaml:"manufacturer"`
	Dosage               string   `yaml:"dosage"`
	SideEffects          []string `yaml:"sideEffects"`
	Contraindications    []string `yaml:"contraindications"`
	ImageURL             string   `yaml:"imageUrl"`
	RequiresPrescription bool     `yaml:"requiresPrescription"`
}

func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// ParseFixtures decodes YAML fixtures, rejecting unknown keys and drugs that
// point at a category slug the file does not define.
func ParseFixtures(data []byte) (*Fixtures, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	slugs := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		if c.Slug == "" || c.Name == "" {
			return nil, fmt.Errorf("%w: category fixture needs a name and a slug", domain.ErrInvalidInput)
		}
		slugs[c.Slug] = true
	}
	for _, d := range f.Drugs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: drug fixture without a name", domain.ErrInvalidInput)
		}
		if d.Category != "" && !slugs[d.Category] {
			return nil, fmt.Errorf("%w: drug %q references unknown category %q", domain.ErrInvalidInput, d.Name, d.Category)
		}
	}
	return &f, nil
}

type Seeder struct {
	drugRepo     domain.DrugRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewSeeder(dRepo domain.DrugRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) *Seeder {
	return &Seeder{
		drugRepo:     dRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (s *Seeder) Run(ctx context.Context, f *Fixtures) error {
	categoryIDs := make(map[string]int, len(f.Categories))
	for _, fc := range f.Categories {
		category, err := s.categoryRepo.UpsertCategory(ctx, &domain.Category{
			Name:        fc.Name,
			Slug:        fc.Slug,
			Description: fc.Description,
			Icon:        fc.Icon,
		})
		if err != nil {
			return fmt.Errorf("seed category %q: %w", fc.Slug, err)
		}
		categoryIDs[fc.Slug] = category.ID
	}
	s.log.Infof("Seed: upserted %d categories", len(categoryIDs))

	for _, fd := range f.Drugs {
		drug := &domain.Drug{
			Name:                 fd.Name,
			Description:          fd.Description,
			Composition:          fd.Composition,
			Price:                fd.Price,
			Stock:                fd.Stock,
			CategoryID:           categoryIDs[fd.Category],
			Manufacturer:         fd.Manufacturer,
			Dosage:               fd.Dosage,
			SideEffects:          fd.SideEffects,
			Contraindications:    fd.Contraindications,
			ImageURL:             fd.ImageURL,
			RequiresPrescription: fd.RequiresPrescription,
		}
		if _, err := s.drugRepo.UpsertDrug(ctx, drug); err != nil {
			return fmt.Errorf("seed drug %q: %w", fd.Name, err)
		}
	}
	s.log.Infof("Seed: upserted %d drugs", len(f.Drugs))
	return nil
}
