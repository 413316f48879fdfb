package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// GetAll retrieves all categories with their products eagerly loaded.
func (r *categoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, category_name
		FROM categories
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.CategoryName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	if err := r.attachProducts(ctx, categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// GetByID retrieves a single category with its products, or nil if absent.
func (r *categoryRepository) GetByID(ctx context.Context, id int) (*model.Category, error) {
	query := `
		SELECT id, category_name
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.CategoryName)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	categories := []model.Category{c}
	if err := r.attachProducts(ctx, categories); err != nil {
		return nil, err
	}

	return &categories[0], nil
}

// Create inserts a category and returns it with its assigned id.
func (r *categoryRepository) Create(ctx context.Context, categoryName string) (*model.Category, error) {
	query := `
		INSERT INTO categories (category_name)
		VALUES ($1)
		RETURNING id, category_name
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, categoryName).Scan(&c.ID, &c.CategoryName)
	if err != nil {
		r.logger.Error().Err(err).Str("category_name", categoryName).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	r.logger.Debug().Int("category_id", c.ID).Msg("category created successfully")

	return &c, nil
}

// Update renames the category matching the id, returning rows affected.
func (r *categoryRepository) Update(ctx context.Context, id int, categoryName string) (int64, error) {
	query := `
		UPDATE categories
		SET category_name = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, categoryName)
	if err != nil {
		r.logger.Error().Err(err).Int("category_id", id).Msg("failed to update category")
		return 0, fmt.Errorf("failed to update category: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes the category matching the id, returning rows affected.
// Products referencing the category keep their rows; the foreign key is
// cleared by the schema's ON DELETE SET NULL.
func (r *categoryRepository) Delete(ctx context.Context, id int) (int64, error) {
	query := `
		DELETE FROM categories
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int("category_id", id).Msg("failed to delete category")
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}

	return tag.RowsAffected(), nil
}

// attachProducts loads the products for each category by foreign key and
// assembles them onto the category values in place.
func (r *categoryRepository) attachProducts(ctx context.Context, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}

	ids := make([]int, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	query := `
		SELECT id, product_name, price, stock, category_id
		FROM products
		WHERE category_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query category products")
		return fmt.Errorf("failed to query category products: %w", err)
	}
	defer rows.Close()

	byCategory := make(map[int][]model.Product)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return fmt.Errorf("failed to scan product: %w", err)
		}
		if p.CategoryID != nil {
			byCategory[*p.CategoryID] = append(byCategory[*p.CategoryID], p)
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return fmt.Errorf("error iterating products: %w", err)
	}

	for i := range categories {
		categories[i].Products = byCategory[categories[i].ID]
	}

	return nil
}
