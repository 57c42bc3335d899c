package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a persisted inventory record. The id is chosen by the caller at
// registration time and is never generated by this service.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID         int64     `bun:"id,pk" json:"id"`
	Title      string    `bun:"title" json:"title"`
	Author     string    `bun:"author" json:"author"`
	Price      float64   `bun:"price" json:"price"`
	Category   Category  `bun:"category" json:"category"`
	TotalCount int       `bun:"total_count" json:"total_count"`
	CreatedAt  time.Time `bun:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at" json:"updated_at"`
}
