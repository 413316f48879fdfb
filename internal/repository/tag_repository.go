package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tagRepository implements the TagRepository interface using PostgreSQL.
type tagRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTagRepository creates a new PostgreSQL-backed tag repository.
func NewTagRepository(pool *pgxpool.Pool, logger zerolog.Logger) TagRepository {
	return &tagRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tag").Logger(),
	}
}

// GetAll retrieves all tags with their products eagerly loaded.
func (r *tagRepository) GetAll(ctx context.Context) ([]model.Tag, error) {
	query := `
		SELECT id, tag_name
		FROM tags
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query tags")
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.TagName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan tag row")
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating tag rows")
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	if err := r.attachProducts(ctx, tags); err != nil {
		return nil, err
	}

	return tags, nil
}

// GetByID retrieves a single tag with its products, or nil if absent.
func (r *tagRepository) GetByID(ctx context.Context, id int) (*model.Tag, error) {
	query := `
		SELECT id, tag_name
		FROM tags
		WHERE id = $1
	`

	var t model.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.TagName)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("tag_id", id).Msg("tag not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("tag_id", id).Msg("failed to query tag")
		return nil, fmt.Errorf("failed to query tag: %w", err)
	}

	tags := []model.Tag{t}
	if err := r.attachProducts(ctx, tags); err != nil {
		return nil, err
	}

	return &tags[0], nil
}

// Create inserts a tag and returns it with its assigned id.
func (r *tagRepository) Create(ctx context.Context, tagName string) (*model.Tag, error) {
	query := `
		INSERT INTO tags (tag_name)
		VALUES ($1)
		RETURNING id, tag_name
	`

	var t model.Tag
	err := r.pool.QueryRow(ctx, query, tagName).Scan(&t.ID, &t.TagName)
	if err != nil {
		r.logger.Error().Err(err).Str("tag_name", tagName).Msg("failed to create tag")
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	r.logger.Debug().Int("tag_id", t.ID).Msg("tag created successfully")

	return &t, nil
}

// Update renames the tag matching the id, returning rows affected.
func (r *tagRepository) Update(ctx context.Context, id int, tagName string) (int64, error) {
	query := `
		UPDATE tags
		SET tag_name = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, tagName)
	if err != nil {
		r.logger.Error().Err(err).Int("tag_id", id).Msg("failed to update tag")
		return 0, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes the tag matching the id, returning rows affected. Join rows
// referencing the tag are removed by the schema's ON DELETE CASCADE.
func (r *tagRepository) Delete(ctx context.Context, id int) (int64, error) {
	query := `
		DELETE FROM tags
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int("tag_id", id).Msg("failed to delete tag")
		return 0, fmt.Errorf("failed to delete tag: %w", err)
	}

	return tag.RowsAffected(), nil
}

// attachProducts loads the products linked to each tag via the join table and
// assembles them onto the tag values in place.
func (r *tagRepository) attachProducts(ctx context.Context, tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	ids := make([]int, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}

	query := `
		SELECT pt.tag_id, p.id, p.product_name, p.price, p.stock, p.category_id
		FROM product_tags pt
		JOIN products p ON p.id = pt.product_id
		WHERE pt.tag_id = ANY($1)
		ORDER BY p.id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query tag products")
		return fmt.Errorf("failed to query tag products: %w", err)
	}
	defer rows.Close()

	byTag := make(map[int][]model.Product)
	for rows.Next() {
		var tagID int
		var p model.Product
		if err := rows.Scan(&tagID, &p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return fmt.Errorf("failed to scan product: %w", err)
		}
		byTag[tagID] = append(byTag[tagID], p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return fmt.Errorf("error iterating products: %w", err)
	}

	for i := range tags {
		tags[i].Products = byTag[tags[i].ID]
	}

	return nil
}
