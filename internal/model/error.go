package model

import (
	"fmt"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string            `json:"error"`
	Details       map[string]string `json:"details,omitempty"`
	CorrelationID string            `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeTagNotFound      = "TAG_NOT_FOUND"
	ErrCodeInvalidReference = "INVALID_REFERENCE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-logic error mapped to an HTTP status at the
// handler boundary.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCategoryNotFound = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrTagNotFound      = NewDomainError(ErrCodeTagNotFound, "Tag not found")

	// ErrInvalidReference covers foreign-key failures: a category_id or tag id
	// in the request that does not exist in the store.
	ErrInvalidReference = NewDomainError(ErrCodeInvalidReference, "Referenced category or tag does not exist")
)

// ValidationError carries per-field constraint failures from request
// validation. It is always a client error.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates a validation error from field failures.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
