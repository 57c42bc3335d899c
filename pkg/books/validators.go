package books

import (
	"github.com/findar/bookstore/pkg/models"
)

type RegisterBookPayload struct {
	ID         *int64           `json:"id" validate:"required"`
	Title      string           `json:"title" mod:"trim" validate:"required,max=300"`
	Author     string           `json:"author" mod:"trim" validate:"required,max=300"`
	Price      float64          `json:"price" validate:"min=0"`
	Category   *models.Category `json:"category" validate:"required"`
	TotalCount int              `json:"total_count"`
}

// UpdateBookPayload mirrors RegisterBookPayload except that the id is
// optional. When present it has to match the path id; the handler enforces
// that, so absence and a matching id behave the same.
type UpdateBookPayload struct {
	ID         *int64           `json:"id,omitempty"`
	Title      string           `json:"title" mod:"trim" validate:"required,max=300"`
	Author     string           `json:"author" mod:"trim" validate:"required,max=300"`
	Price      float64          `json:"price" validate:"min=0"`
	Category   *models.Category `json:"category" validate:"required"`
	TotalCount int              `json:"total_count"`
}

// RestockPayload carries the quantity to add to a book's stock. A pointer so
// that an explicit zero passes required, and negative quantities are allowed
// for stock corrections.
type RestockPayload struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type ListBooksQuery struct {
	Category *string `query:"category" json:"category,omitempty" validate:"omitempty,max=50"`
	Keyword  *string `query:"keyword" json:"keyword,omitempty" validate:"omitempty,max=100"`
}
