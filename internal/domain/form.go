package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductForm holds the raw text of the management form. ID is only ever a
// lookup key.
type ProductForm struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Complete reports whether every field needed to create a product is filled.
func (f ProductForm) Complete() bool {
	return f.Title != "" && f.Price != "" && f.Description != "" && f.Image != ""
}

// Patch builds the sparse update from the filled fields. ok is false when
// the price field is filled but is not a finite number.
func (f ProductForm) Patch() (patch ProductPatch, ok bool) {
	if f.Title != "" {
		title := f.Title
		patch.Title = &title
	}
	if f.Price != "" {
		price, valid := ParsePrice(f.Price)
		if !valid {
			return ProductPatch{}, false
		}
		patch.Price = &price
	}
	if f.Description != "" {
		description := f.Description
		patch.Description = &description
	}
	if f.Image != "" {
		image := f.Image
		patch.Image = &image
	}
	return patch, true
}

// ParsePrice parses a price field. NaN, infinities and out-of-range values
// are rejected.
func ParsePrice(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}

	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	// hex floats and similar forms strconv accepts but decimal does not
	return decimal.NewFromFloat(f), true
}

// ParseProductID parses the id field. Zero is not a valid id.
func ParseProductID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
