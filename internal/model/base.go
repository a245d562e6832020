// Package model holds the types shared by every entity.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are rendered as JSON numbers (12.5), not strings ("12.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// Base carries the store-assigned identity and timestamps.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
