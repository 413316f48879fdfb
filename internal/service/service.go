package service

import (
	"context"

	"catalog-api/internal/model"
)

// CategoryService defines operations for category management.
type CategoryService interface {
	// GetAll retrieves all categories with their products.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category with its products.
	GetByID(ctx context.Context, id int) (*model.Category, error)

	// Create validates and inserts a new category.
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)

	// Update validates and renames an existing category.
	Update(ctx context.Context, id int, req *model.CategoryRequest) error

	// Delete removes a category.
	Delete(ctx context.Context, id int) error
}

// TagService defines operations for tag management.
type TagService interface {
	// GetAll retrieves all tags with their products.
	GetAll(ctx context.Context) ([]model.Tag, error)

	// GetByID retrieves a single tag with its products.
	GetByID(ctx context.Context, id int) (*model.Tag, error)

	// Create validates and inserts a new tag.
	Create(ctx context.Context, req *model.TagRequest) (*model.Tag, error)

	// Update validates and renames an existing tag.
	Update(ctx context.Context, id int, req *model.TagRequest) error

	// Delete removes a tag.
	Delete(ctx context.Context, id int) error
}

// ProductService defines operations for product management, including the
// tag associations owned by product writes.
type ProductService interface {
	// GetAll retrieves all products with category and tags.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product with category and tags.
	GetByID(ctx context.Context, id int) (*model.Product, error)

	// Create validates and inserts a new product, attaching any requested tags.
	Create(ctx context.Context, req *model.ProductCreateRequest) (*model.Product, error)

	// Update applies a partial update and reconciles tag associations when
	// the request carries tag ids.
	Update(ctx context.Context, id int, req *model.ProductUpdateRequest) error

	// Delete removes a product together with its join rows.
	Delete(ctx context.Context, id int) error
}
