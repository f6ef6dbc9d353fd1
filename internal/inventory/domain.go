// Package inventory holds stock movement events for tenant products.
package inventory

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType is the direction of one stock movement.
type TransactionType string

const (
	// TransactionIn is a restock.
	TransactionIn TransactionType = "in"
	// TransactionOut is a sale or consumption.
	TransactionOut TransactionType = "out"
)

// ParseTransactionType validates a raw transaction type string.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch tt := TransactionType(strings.ToLower(strings.TrimSpace(raw))); tt {
	case TransactionIn, TransactionOut:
		return tt, nil
	default:
		return "", fmt.Errorf("inventory: unknown transaction type %q", raw)
	}
}

// Transaction records a single stock movement with before/after quantities.
// The producer guarantees NewQuantity-PreviousQuantity matches the signed
// quantity; the reporting layer relies on that without re-checking it.
type Transaction struct {
	ID               string
	ProductID        string
	Type             TransactionType
	Quantity         int
	PreviousQuantity int
	NewQuantity      int
	// UnitPrice captures the price at the time of the movement; when nil the
	// referenced product's current price is used for revenue approximation.
	UnitPrice *float64
	OwnerID   string
	CreatedAt time.Time
}
