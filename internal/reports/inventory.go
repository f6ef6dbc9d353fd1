package reports

import (
	"time"

	"github.com/shopstack-erp/shopstack/internal/catalog"
	"github.com/shopstack-erp/shopstack/internal/inventory"
)

// SalesPoint is one month of unit movement on the sales side.
type SalesPoint struct {
	Month   string `json:"month"`
	Sales   int    `json:"sales"`
	Returns int    `json:"returns"`
}

// InventoryTrendPoint is one month of stock movement totals.
type InventoryTrendPoint struct {
	Month    string `json:"month"`
	InStock  int    `json:"inStock"`
	OutStock int    `json:"outStock"`
}

type monthMovement struct {
	sales    int
	returns  int
	stockIn  int
	stockOut int
	revenue  float64
}

type inventorySummary struct {
	sales          []SalesPoint
	trends         []InventoryTrendPoint
	unitsSold      int
	totalRevenue   float64
	revenueByMonth map[string]float64
	soldByProduct  map[string]int
	soldByMonth    map[string]map[string]int
}

// aggregateInventory folds stock movements into per-month counters. Outbound
// movements contribute units and approximate revenue; the transaction's
// captured unit price wins, falling back to the product's current price when
// the movement predates price capture. Historical price drift is therefore
// not reflected.
func aggregateInventory(transactions []inventory.Transaction, products map[string]catalog.Product, now time.Time) inventorySummary {
	movements := make(map[string]*monthMovement)
	summary := inventorySummary{
		revenueByMonth: make(map[string]float64),
		soldByProduct:  make(map[string]int),
		soldByMonth:    make(map[string]map[string]int),
	}

	for _, tx := range transactions {
		key := monthKey(tx.CreatedAt, now)
		movement, ok := movements[key]
		if !ok {
			movement = &monthMovement{}
			movements[key] = movement
		}

		switch tx.Type {
		case inventory.TransactionIn:
			movement.stockIn += tx.Quantity
		case inventory.TransactionOut:
			movement.stockOut += tx.Quantity
			movement.sales += tx.Quantity
			summary.unitsSold += tx.Quantity
			summary.soldByProduct[tx.ProductID] += tx.Quantity
			byProduct, ok := summary.soldByMonth[key]
			if !ok {
				byProduct = make(map[string]int)
				summary.soldByMonth[key] = byProduct
			}
			byProduct[tx.ProductID] += tx.Quantity

			price := products[tx.ProductID].Price
			if tx.UnitPrice != nil {
				price = *tx.UnitPrice
			}
			revenue := price * float64(tx.Quantity)
			movement.revenue += revenue
			summary.totalRevenue += revenue
		}
	}

	keys := make(map[string]struct{}, len(movements))
	for key := range movements {
		keys[key] = struct{}{}
	}
	months := sortedMonths(keys)

	summary.sales = make([]SalesPoint, 0, len(months))
	summary.trends = make([]InventoryTrendPoint, 0, len(months))
	for _, key := range months {
		movement := movements[key]
		summary.trends = append(summary.trends, InventoryTrendPoint{
			Month:    key,
			InStock:  movement.stockIn,
			OutStock: movement.stockOut,
		})
		if movement.sales > 0 || movement.returns > 0 {
			summary.sales = append(summary.sales, SalesPoint{
				Month:   key,
				Sales:   movement.sales,
				Returns: movement.returns,
			})
		}
		if movement.revenue != 0 {
			summary.revenueByMonth[key] = movement.revenue
		}
	}

	summary.totalRevenue = round2(summary.totalRevenue)
	return summary
}

// KeyMetrics are the headline figures on the report. TotalRevenue is a
// display string; the raw series stay numeric for the presentation layer.
type KeyMetrics struct {
	TotalRevenue  string  `json:"totalRevenue"`
	UnitsSold     int     `json:"unitsSold"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	ReturnRate    float64 `json:"returnRate"`
}

// buildKeyMetrics derives the headline metrics. Returns are tracked at the
// order level by a separate subsystem, so the return rate reported here
// stays at zero.
func buildKeyMetrics(summary inventorySummary, format func(float64) string) KeyMetrics {
	metrics := KeyMetrics{
		TotalRevenue: format(summary.totalRevenue),
		UnitsSold:    summary.unitsSold,
	}
	if summary.unitsSold > 0 {
		metrics.AvgOrderValue = round2(summary.totalRevenue / float64(summary.unitsSold))
	}
	return metrics
}
