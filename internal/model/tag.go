package model

// Tag is a free-form label attached to products via the product_tags join table.
type Tag struct {
	ID      int    `json:"id" db:"id"`
	TagName string `json:"tag_name" db:"tag_name"`

	// Products is populated on read paths that eager-load associations.
	Products []Product `json:"products,omitempty"`
}

// TagRequest represents the request payload for creating or updating a tag.
type TagRequest struct {
	TagName string `json:"tag_name" validate:"required"`
}

// ProductTag is a join row linking one product to one tag. Join rows are
// created and destroyed only as a side effect of product writes; they have
// no endpoint of their own.
type ProductTag struct {
	ID        int `json:"id" db:"id"`
	ProductID int `json:"product_id" db:"product_id"`
	TagID     int `json:"tag_id" db:"tag_id"`
}
