// Package catalog holds product and category master data for one tenant.
package catalog

import "time"

// Product is a sellable item owned by one tenant. Quantity is the
// authoritative current stock; historical levels are reconstructed from
// inventory transactions only.
type Product struct {
	ID            string
	Name          string
	SKU           string
	CategoryID    *string
	Price         float64
	CostPrice     *float64
	Quantity      int
	MinStockLevel int
	Supplier      string
	QRCode        string
	OwnerID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Category groups products for distribution reporting.
type Category struct {
	ID      string
	Name    string
	OwnerID string
}
