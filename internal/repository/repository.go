package repository

import (
	"context"

	"catalog-api/internal/model"
)

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// GetAll retrieves all categories with their products eagerly loaded.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category with its products, or nil if absent.
	GetByID(ctx context.Context, id int) (*model.Category, error)

	// Create inserts a category and returns it with its assigned id.
	Create(ctx context.Context, categoryName string) (*model.Category, error)

	// Update renames the category matching the id, returning rows affected.
	Update(ctx context.Context, id int, categoryName string) (int64, error)

	// Delete removes the category matching the id, returning rows affected.
	Delete(ctx context.Context, id int) (int64, error)
}

// TagRepository defines the interface for tag data access operations.
type TagRepository interface {
	// GetAll retrieves all tags with their products eagerly loaded.
	GetAll(ctx context.Context) ([]model.Tag, error)

	// GetByID retrieves a single tag with its products, or nil if absent.
	GetByID(ctx context.Context, id int) (*model.Tag, error)

	// Create inserts a tag and returns it with its assigned id.
	Create(ctx context.Context, tagName string) (*model.Tag, error)

	// Update renames the tag matching the id, returning rows affected.
	Update(ctx context.Context, id int, tagName string) (int64, error)

	// Delete removes the tag matching the id, returning rows affected.
	Delete(ctx context.Context, id int) (int64, error)
}

// ProductRepository defines the interface for product data access operations,
// including the product_tags join rows whose lifecycle product writes own.
type ProductRepository interface {
	// GetAll retrieves all products with category and tags eagerly loaded.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product with its associations, or nil if absent.
	GetByID(ctx context.Context, id int) (*model.Product, error)

	// Create inserts a product and returns it with its assigned id.
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// Update applies the non-nil fields of the request to the product
	// matching the id, returning rows affected.
	Update(ctx context.Context, id int, req *model.ProductUpdateRequest) (int64, error)

	// DeleteWithTags removes the product and all its join rows in one
	// transaction, returning product rows affected.
	DeleteWithTags(ctx context.Context, id int) (int64, error)

	// GetProductTags retrieves the join rows currently linking the product to tags.
	GetProductTags(ctx context.Context, productID int) ([]model.ProductTag, error)

	// CreateProductTags bulk-inserts join rows linking the product to each tag id.
	CreateProductTags(ctx context.Context, productID int, tagIDs []int) error

	// DeleteProductTags bulk-deletes join rows by their own ids.
	DeleteProductTags(ctx context.Context, ids []int) error
}
