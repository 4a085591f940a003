package domain

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Product is a stock-keeping record. Only Quantity changes after creation.
type Product struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Type        string    `db:"type"`
	SKU         string    `db:"sku"`
	ImageURL    string    `db:"image_url"`
	Description string    `db:"description"`
	Quantity    int64     `db:"quantity"`
	Price       float64   `db:"price"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewProduct carries the fields supplied when a product is created.
type NewProduct struct {
	Name        string
	Type        string
	SKU         string
	ImageURL    string
	Description string
	Quantity    *int64
	Price       *float64
}

// Validate checks the fields the store cannot check on its own.
func (p NewProduct) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Validation("Name is required")
	}
	if p.Quantity == nil {
		return Validation("Quantity is required")
	}
	if *p.Quantity < 0 {
		return Validation("Quantity must not be negative")
	}
	if p.Price == nil {
		return Validation("Price is required")
	}
	if math.IsNaN(*p.Price) || math.IsInf(*p.Price, 0) || *p.Price < 0 {
		return Validation("Price must be a non-negative number")
	}
	return nil
}

// ParseQuantity converts a decoded JSON value into a stock count.
// Strings, booleans, nulls and fractional numbers are rejected.
func ParseQuantity(v any) (int64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, Validation("Quantity must be a number")
		}
		f = parsed
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, Validation("Quantity must be a number")
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, Validation("Quantity must be a whole number")
	}
	if f < 0 {
		return 0, Validation("Quantity must not be negative")
	}
	if f >= math.MaxInt64 {
		return 0, Validation("Quantity is too large")
	}
	return int64(f), nil
}
