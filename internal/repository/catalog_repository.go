package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/superstudio/showcase-api/internal/models"
)

// CatalogRepository reads the published showcase documents backing the
// public endpoints.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListProjects returns all published project documents.
func (r *CatalogRepository) ListProjects(ctx context.Context) ([]models.StoredProject, error) {
	rows, err := r.listDocs(ctx, "projects")
	if err != nil {
		return nil, err
	}

	projects := make([]models.StoredProject, 0, len(rows))
	for _, raw := range rows {
		var p models.StoredProject
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// ListStudios returns all studio documents.
func (r *CatalogRepository) ListStudios(ctx context.Context) ([]models.StoredStudio, error) {
	rows, err := r.listDocs(ctx, "studios")
	if err != nil {
		return nil, err
	}

	studios := make([]models.StoredStudio, 0, len(rows))
	for _, raw := range rows {
		var s models.StoredStudio
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode studio: %w", err)
		}
		studios = append(studios, s)
	}
	return studios, nil
}

// ListSchools returns all institution documents.
func (r *CatalogRepository) ListSchools(ctx context.Context) ([]models.School, error) {
	rows, err := r.listDocs(ctx, "schools")
	if err != nil {
		return nil, err
	}

	schools := make([]models.School, 0, len(rows))
	for _, raw := range rows {
		var s models.School
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode school: %w", err)
		}
		schools = append(schools, s)
	}
	return schools, nil
}

// ListDemands returns all demand documents.
func (r *CatalogRepository) ListDemands(ctx context.Context) ([]models.Demand, error) {
	rows, err := r.listDocs(ctx, "demands")
	if err != nil {
		return nil, err
	}

	demands := make([]models.Demand, 0, len(rows))
	for _, raw := range rows {
		var d models.Demand
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode demand: %w", err)
		}
		demands = append(demands, d)
	}
	return demands, nil
}

func (r *CatalogRepository) listDocs(ctx context.Context, table string) ([][]byte, error) {
	query := fmt.Sprintf("SELECT doc FROM %s ORDER BY id", table)
	var rows [][]byte
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}
