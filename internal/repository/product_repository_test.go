package repository

import (
	"context"
	"testing"
	"time"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	createSchema(t, pool)

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the necessary database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			category_name VARCHAR(255) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tags (
			id SERIAL PRIMARY KEY,
			tag_name VARCHAR(255) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			product_name VARCHAR(255) NOT NULL,
			price NUMERIC(10, 2) NOT NULL,
			stock INTEGER NOT NULL DEFAULT 10 CHECK (stock >= 0),
			category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL
		);

		CREATE TABLE IF NOT EXISTS product_tags (
			id SERIAL PRIMARY KEY,
			product_id INTEGER NOT NULL REFERENCES products(id),
			tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			UNIQUE (product_id, tag_id)
		);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// cleanTables removes all rows between subtests.
func cleanTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	for _, table := range []string{"product_tags", "products", "tags", "categories"} {
		_, err := pool.Exec(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
}

// seedCategory inserts a category and returns its id.
func seedCategory(t *testing.T, pool *pgxpool.Pool, name string) int {
	t.Helper()

	var id int
	err := pool.QueryRow(context.Background(),
		"INSERT INTO categories (category_name) VALUES ($1) RETURNING id", name).Scan(&id)
	require.NoError(t, err)
	return id
}

// seedTag inserts a tag and returns its id.
func seedTag(t *testing.T, pool *pgxpool.Pool, name string) int {
	t.Helper()

	var id int
	err := pool.QueryRow(context.Background(),
		"INSERT INTO tags (tag_name) VALUES ($1) RETURNING id", name).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestProductRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping repository test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)
	ctx := context.Background()

	t.Run("Create persists product and assigns id", func(t *testing.T) {
		cleanTables(t, pool)
		categoryID := seedCategory(t, pool, "Shirts")

		created, err := repo.Create(ctx, &model.Product{
			ProductName: "Plain T-Shirt",
			Price:       14.99,
			Stock:       14,
			CategoryID:  &categoryID,
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Greater(t, created.ID, 0)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, "Plain T-Shirt", fetched.ProductName)
		assert.Equal(t, 14.99, fetched.Price)
		assert.Equal(t, 14, fetched.Stock)
		require.NotNil(t, fetched.CategoryID)
		assert.Equal(t, categoryID, *fetched.CategoryID)
	})

	t.Run("Create with unknown category returns invalid reference", func(t *testing.T) {
		cleanTables(t, pool)
		missing := 999

		_, err := repo.Create(ctx, &model.Product{
			ProductName: "Orphan",
			Price:       9.99,
			Stock:       10,
			CategoryID:  &missing,
		})
		assert.ErrorIs(t, err, model.ErrInvalidReference)
	})

	t.Run("GetByID returns nil for missing product", func(t *testing.T) {
		cleanTables(t, pool)

		product, err := repo.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("GetByID loads category and tags", func(t *testing.T) {
		cleanTables(t, pool)
		categoryID := seedCategory(t, pool, "Shoes")
		summerID := seedTag(t, pool, "summer")
		sportID := seedTag(t, pool, "sport")

		created, err := repo.Create(ctx, &model.Product{
			ProductName: "Running Sneakers",
			Price:       90.00,
			Stock:       25,
			CategoryID:  &categoryID,
		})
		require.NoError(t, err)
		require.NoError(t, repo.CreateProductTags(ctx, created.ID, []int{summerID, sportID}))

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		require.NotNil(t, fetched.Category)
		assert.Equal(t, "Shoes", fetched.Category.CategoryName)
		assert.Len(t, fetched.Tags, 2)
	})

	t.Run("GetAll returns all products with associations", func(t *testing.T) {
		cleanTables(t, pool)
		categoryID := seedCategory(t, pool, "Shirts")

		for _, name := range []string{"Plain T-Shirt", "Striped Shirt", "Hoodie"} {
			_, err := repo.Create(ctx, &model.Product{
				ProductName: name,
				Price:       19.99,
				Stock:       10,
				CategoryID:  &categoryID,
			})
			require.NoError(t, err)
		}

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 3)
		for _, p := range products {
			require.NotNil(t, p.Category)
			assert.Equal(t, "Shirts", p.Category.CategoryName)
		}
	})

	t.Run("Update applies only provided fields", func(t *testing.T) {
		cleanTables(t, pool)

		created, err := repo.Create(ctx, &model.Product{
			ProductName: "Plain T-Shirt",
			Price:       14.99,
			Stock:       14,
		})
		require.NoError(t, err)

		newStock := 5
		affected, err := repo.Update(ctx, created.ID, &model.ProductUpdateRequest{Stock: &newStock})
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, fetched.Stock)
		assert.Equal(t, "Plain T-Shirt", fetched.ProductName)
		assert.Equal(t, 14.99, fetched.Price)
	})

	t.Run("Update with no columns reports existence", func(t *testing.T) {
		cleanTables(t, pool)

		created, err := repo.Create(ctx, &model.Product{
			ProductName: "Plain T-Shirt",
			Price:       14.99,
			Stock:       14,
		})
		require.NoError(t, err)

		affected, err := repo.Update(ctx, created.ID, &model.ProductUpdateRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		affected, err = repo.Update(ctx, 999, &model.ProductUpdateRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})

	t.Run("Update missing product affects zero rows", func(t *testing.T) {
		cleanTables(t, pool)

		newStock := 5
		affected, err := repo.Update(ctx, 999, &model.ProductUpdateRequest{Stock: &newStock})
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})

	t.Run("Update with unknown category returns invalid reference", func(t *testing.T) {
		cleanTables(t, pool)

		created, err := repo.Create(ctx, &model.Product{
			ProductName: "Plain T-Shirt",
			Price:       14.99,
			Stock:       14,
		})
		require.NoError(t, err)

		missing := 999
		_, err = repo.Update(ctx, created.ID, &model.ProductUpdateRequest{CategoryID: &missing})
		assert.ErrorIs(t, err, model.ErrInvalidReference)
	})

	t.Run("Join rows round trip", func(t *testing.T) {
		cleanTables(t, pool)
		summerID := seedTag(t, pool, "summer")
		saleID := seedTag(t, pool, "sale")

		created, err := repo.Create(ctx, &model.Product{
			ProductName: "Plain T-Shirt",
			Price:       14.99,
			Stock:       14,
		})
		require.NoError(t, err)

		require.NoError(t, repo.CreateProductTags(ctx, created.ID, []int{summerID, saleID}))

		links, err := repo.GetProductTags(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, links, 2)
		for _, link := range links {
			assert.Equal(t, created.ID, link.ProductID)
		}

		require.NoError(t, repo.DeleteProductTags(ctx, []int{links[0].ID}))

		links, err = repo.GetProductTags(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("CreateProductTags with unknown tag returns invalid reference", func(t *testing.T) {
		cleanTables(t, pool)

		created, err := repo.Create(ctx, &model.Product{
			ProductName: "Plain T-Shirt",
			Price:       14.99,
			Stock:       14,
		})
		require.NoError(t, err)

		err = repo.CreateProductTags(ctx, created.ID, []int{999})
		assert.ErrorIs(t, err, model.ErrInvalidReference)
	})

	t.Run("DeleteWithTags removes product and its join rows", func(t *testing.T) {
		cleanTables(t, pool)
		summerID := seedTag(t, pool, "summer")

		created, err := repo.Create(ctx, &model.Product{
			ProductName: "Plain T-Shirt",
			Price:       14.99,
			Stock:       14,
		})
		require.NoError(t, err)
		require.NoError(t, repo.CreateProductTags(ctx, created.ID, []int{summerID}))

		affected, err := repo.DeleteWithTags(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched)

		var count int
		err = pool.QueryRow(ctx, "SELECT COUNT(*) FROM product_tags WHERE product_id = $1", created.ID).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("DeleteWithTags missing product affects zero rows", func(t *testing.T) {
		cleanTables(t, pool)

		affected, err := repo.DeleteWithTags(ctx, 999)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}
