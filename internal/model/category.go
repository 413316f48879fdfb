package model

// Category groups products under a display name.
type Category struct {
	ID           int    `json:"id" db:"id"`
	CategoryName string `json:"category_name" db:"category_name"`

	// Products is populated on read paths that eager-load associations.
	Products []Product `json:"products,omitempty"`
}

// CategoryRequest represents the request payload for creating or updating a category.
type CategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required"`
}
