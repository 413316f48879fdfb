package model

// DefaultStock is applied when a create request omits the stock field.
const DefaultStock = 10

// Product represents a catalogue product.
type Product struct {
	ID          int     `json:"id" db:"id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Price       float64 `json:"price" db:"price"`
	Stock       int     `json:"stock" db:"stock"`
	CategoryID  *int    `json:"category_id" db:"category_id"`

	// Category and Tags are populated on read paths that eager-load
	// associations; Category stays nil when category_id is unset.
	Category *Category `json:"category,omitempty"`
	Tags     []Tag     `json:"tags,omitempty"`
}

// ProductCreateRequest represents the request payload for creating a product.
// Stock defaults to DefaultStock when omitted. TagIDs, when present, are
// attached to the new product as join rows.
type ProductCreateRequest struct {
	ProductName string   `json:"product_name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,decimal"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int     `json:"category_id"`
	TagIDs      []int    `json:"tagIds"`
}

// ProductUpdateRequest represents a partial product update. Only non-nil
// fields are written. A non-empty TagIDs triggers tag reconciliation.
type ProductUpdateRequest struct {
	ProductName *string  `json:"product_name"`
	Price       *float64 `json:"price" validate:"omitempty,decimal"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int     `json:"category_id"`
	TagIDs      []int    `json:"tagIds"`
}

// HasFields reports whether the update carries at least one column change.
func (r *ProductUpdateRequest) HasFields() bool {
	return r.ProductName != nil || r.Price != nil || r.Stock != nil || r.CategoryID != nil
}
