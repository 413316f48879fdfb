package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign key violations.
const pgForeignKeyViolation = "23503"

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves all products with category and tags eagerly loaded.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, product_name, price, stock, category_id
		FROM products
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if err := r.attachAssociations(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID retrieves a single product with its associations, or nil if absent.
func (r *productRepository) GetByID(ctx context.Context, id int) (*model.Product, error) {
	query := `
		SELECT id, product_name, price, stock, category_id
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	products := []model.Product{p}
	if err := r.attachAssociations(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// Create inserts a product and returns it with its assigned id.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (product_name, price, stock, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_name, price, stock, category_id
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query,
		product.ProductName,
		product.Price,
		product.Stock,
		product.CategoryID,
	).Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.logger.Warn().Err(err).Msg("product references missing category")
			return nil, model.ErrInvalidReference
		}
		r.logger.Error().Err(err).Str("product_name", product.ProductName).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int("product_id", p.ID).Msg("product created successfully")

	return &p, nil
}

// Update applies the non-nil fields of the request to the product matching
// the id, returning rows affected.
func (r *productRepository) Update(ctx context.Context, id int, req *model.ProductUpdateRequest) (int64, error) {
	setClauses := make([]string, 0, 4)
	args := make([]any, 0, 5)
	args = append(args, id)

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.ProductName != nil {
		addSet("product_name", *req.ProductName)
	}
	if req.Price != nil {
		addSet("price", *req.Price)
	}
	if req.Stock != nil {
		addSet("stock", *req.Stock)
	}
	if req.CategoryID != nil {
		addSet("category_id", *req.CategoryID)
	}

	if len(setClauses) == 0 {
		// Nothing to write; report whether the row exists so the caller can
		// still distinguish not-found.
		var exists bool
		err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			r.logger.Error().Err(err).Int("product_id", id).Msg("failed to check product existence")
			return 0, fmt.Errorf("failed to check product existence: %w", err)
		}
		if exists {
			return 1, nil
		}
		return 0, nil
	}

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $1`, strings.Join(setClauses, ", "))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.logger.Warn().Err(err).Int("product_id", id).Msg("product update references missing category")
			return 0, model.ErrInvalidReference
		}
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to update product")
		return 0, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteWithTags removes the product and all its join rows in one
// transaction. Join rows go first so the foreign key on product_tags never
// dangles mid-delete.
func (r *productRepository) DeleteWithTags(ctx context.Context, id int) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	_, err = tx.Exec(ctx, `DELETE FROM product_tags WHERE product_id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to delete product tags")
		return 0, fmt.Errorf("failed to delete product tags: %w", err)
	}

	var tag pgconn.CommandTag
	tag, err = tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to delete product")
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to commit transaction")
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug().
		Int("product_id", id).
		Int64("rows_affected", tag.RowsAffected()).
		Msg("product delete cascade completed")

	return tag.RowsAffected(), nil
}

// GetProductTags retrieves the join rows currently linking the product to tags.
func (r *productRepository) GetProductTags(ctx context.Context, productID int) ([]model.ProductTag, error) {
	query := `
		SELECT id, product_id, tag_id
		FROM product_tags
		WHERE product_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Int("product_id", productID).Msg("failed to query product tags")
		return nil, fmt.Errorf("failed to query product tags: %w", err)
	}
	defer rows.Close()

	var productTags []model.ProductTag
	for rows.Next() {
		var pt model.ProductTag
		if err := rows.Scan(&pt.ID, &pt.ProductID, &pt.TagID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product tag row")
			return nil, fmt.Errorf("failed to scan product tag: %w", err)
		}
		productTags = append(productTags, pt)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product tag rows")
		return nil, fmt.Errorf("error iterating product tags: %w", err)
	}

	return productTags, nil
}

// CreateProductTags bulk-inserts join rows linking the product to each tag id.
func (r *productRepository) CreateProductTags(ctx context.Context, productID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_tags (product_id, tag_id)
		VALUES ($1, $2)
	`

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(query, productID, tagID)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(tagIDs); i++ {
		if _, err := results.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				r.logger.Warn().
					Err(err).
					Int("product_id", productID).
					Int("tag_id", tagIDs[i]).
					Msg("join row references missing tag")
				return model.ErrInvalidReference
			}
			r.logger.Error().
				Err(err).
				Int("product_id", productID).
				Int("tag_id", tagIDs[i]).
				Msg("failed to create product tag")
			return fmt.Errorf("failed to create product tag: %w", err)
		}
	}

	r.logger.Debug().
		Int("product_id", productID).
		Int("count", len(tagIDs)).
		Msg("product tags created successfully")

	return nil
}

// DeleteProductTags bulk-deletes join rows by their own ids.
func (r *productRepository) DeleteProductTags(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		DELETE FROM product_tags
		WHERE id = ANY($1)
	`

	if _, err := r.pool.Exec(ctx, query, ids); err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to delete product tags")
		return fmt.Errorf("failed to delete product tags: %w", err)
	}

	r.logger.Debug().Int("count", len(ids)).Msg("product tags deleted successfully")

	return nil
}

// attachAssociations loads the category and tags for each product by foreign
// key and assembles them onto the product values in place.
func (r *productRepository) attachAssociations(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int, len(products))
	categoryIDs := make([]int, 0, len(products))
	for i, p := range products {
		ids[i] = p.ID
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	categories := make(map[int]model.Category)
	if len(categoryIDs) > 0 {
		rows, err := r.pool.Query(ctx, `
			SELECT id, category_name
			FROM categories
			WHERE id = ANY($1)
		`, categoryIDs)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to query product categories")
			return fmt.Errorf("failed to query product categories: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var c model.Category
			if err := rows.Scan(&c.ID, &c.CategoryName); err != nil {
				r.logger.Error().Err(err).Msg("failed to scan category row")
				return fmt.Errorf("failed to scan category: %w", err)
			}
			categories[c.ID] = c
		}

		if err := rows.Err(); err != nil {
			r.logger.Error().Err(err).Msg("error iterating category rows")
			return fmt.Errorf("error iterating categories: %w", err)
		}
	}

	tagRows, err := r.pool.Query(ctx, `
		SELECT pt.product_id, t.id, t.tag_name
		FROM product_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.product_id = ANY($1)
		ORDER BY t.id
	`, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query product tags")
		return fmt.Errorf("failed to query product tags: %w", err)
	}
	defer tagRows.Close()

	tagsByProduct := make(map[int][]model.Tag)
	for tagRows.Next() {
		var productID int
		var t model.Tag
		if err := tagRows.Scan(&productID, &t.ID, &t.TagName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan tag row")
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		tagsByProduct[productID] = append(tagsByProduct[productID], t)
	}

	if err := tagRows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating tag rows")
		return fmt.Errorf("error iterating tags: %w", err)
	}

	for i := range products {
		if products[i].CategoryID != nil {
			if c, ok := categories[*products[i].CategoryID]; ok {
				products[i].Category = &c
			}
		}
		products[i].Tags = tagsByProduct[products[i].ID]
	}

	return nil
}

// isForeignKeyViolation reports whether the error is a PostgreSQL foreign key
// constraint failure.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
