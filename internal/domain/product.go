package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Description string          `json:"description" db:"description"`
	Image       string          `json:"image" db:"image"`
	Category    string          `json:"category" db:"category"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// ProductPatch is a sparse update. Nil fields are left untouched and never
// reach the UPDATE statement.
type ProductPatch struct {
	Title       *string
	Price       *decimal.Decimal
	Description *string
	Image       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Title == nil && p.Price == nil && p.Description == nil && p.Image == nil
}

// Columns lists the columns the patch sets, in a fixed order.
func (p ProductPatch) Columns() []string {
	var cols []string
	if p.Title != nil {
		cols = append(cols, "title")
	}
	if p.Price != nil {
		cols = append(cols, "price")
	}
	if p.Description != nil {
		cols = append(cols, "description")
	}
	if p.Image != nil {
		cols = append(cols, "image")
	}
	return cols
}

// AdminCredential is a row of the usersadmin table.
type AdminCredential struct {
	Name  string `json:"name" db:"name"`
	Senha string `json:"-" db:"senha"`
}
