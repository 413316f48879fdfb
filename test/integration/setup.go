package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

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

		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
		CREATE INDEX IF NOT EXISTS idx_product_tags_product_id ON product_tags(product_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalog inserts baseline categories and tags and returns their ids by name.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) (categories map[string]int, tags map[string]int) {
	t.Helper()

	ctx := context.Background()
	categories = make(map[string]int)
	tags = make(map[string]int)

	for _, name := range []string{"Shirts", "Shoes", "Hats"} {
		var id int
		err := pool.QueryRow(ctx,
			"INSERT INTO categories (category_name) VALUES ($1) RETURNING id", name).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed category %s: %v", name, err)
		}
		categories[name] = id
	}

	for _, name := range []string{"summer", "winter", "sale", "sport"} {
		var id int
		err := pool.QueryRow(ctx,
			"INSERT INTO tags (tag_name) VALUES ($1) RETURNING id", name).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed tag %s: %v", name, err)
		}
		tags[name] = id
	}

	return categories, tags
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"product_tags", "products", "tags", "categories"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
