package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
}

// NewCategoryRepository creates a new CategoryRepository. m may be nil.
func NewCategoryRepository(pool *pgxpool.Pool, m *metrics.Metrics) *CategoryRepository {
	return &CategoryRepository{pool: pool, metrics: m}
}

// List retrieves all categories keyed by ID.
func (r *CategoryRepository) List(ctx context.Context) (_ domain.CategoryMap, err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "list", "categories", start, err) }()

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make(domain.CategoryMap)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
