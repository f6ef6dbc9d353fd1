package reports

import (
	"sort"

	"github.com/shopstack-erp/shopstack/internal/catalog"
)

const topProductLimit = 10

// uncategorizedName labels products without a resolvable category.
const uncategorizedName = "Uncategorized"

// CategorySlice is the on-hand quantity held under one category name.
// Ordering and coloring belong to the presentation layer.
type CategorySlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TopProduct is one entry of the best-seller ranking, carrying the catalog
// fields needed for report printing.
type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku,omitempty"`
	Category  string  `json:"category,omitempty"`
	Supplier  string  `json:"supplier,omitempty"`
	Price     float64 `json:"price"`
	CostPrice float64 `json:"costPrice"`
	Quantity  int     `json:"quantity"`
	QRCode    string  `json:"qrCode,omitempty"`
	Sold      int     `json:"sold"`
	// ChangePct compares the latest month's sold units against the month
	// before it.
	ChangePct float64 `json:"changePct"`
}

// categoryDistribution sums current on-hand quantity per category name.
func categoryDistribution(products []catalog.Product, categories []catalog.Category) []CategorySlice {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	totals := make(map[string]int)
	for _, p := range products {
		name := uncategorizedName
		if p.CategoryID != nil {
			if resolved, ok := names[*p.CategoryID]; ok && resolved != "" {
				name = resolved
			}
		}
		totals[name] += p.Quantity
	}

	slices := make([]CategorySlice, 0, len(totals))
	for name, value := range totals {
		slices = append(slices, CategorySlice{Name: name, Value: value})
	}
	sort.Slice(slices, func(i, j int) bool { return slices[i].Name < slices[j].Name })
	return slices
}

// topProducts ranks products by total units sold descending and keeps the
// top ten. Deleted products keep their sold counts under an "Unknown" name.
func topProducts(summary inventorySummary, products map[string]catalog.Product, categories []catalog.Category) []TopProduct {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	latest, previous := lastTwoMonths(summary.soldByMonth)

	ranked := make([]TopProduct, 0, len(summary.soldByProduct))
	for productID, sold := range summary.soldByProduct {
		entry := TopProduct{ProductID: productID, Name: "Unknown", Sold: sold}
		if p, ok := products[productID]; ok {
			entry.Name = p.Name
			entry.SKU = p.SKU
			entry.Supplier = p.Supplier
			entry.Price = p.Price
			if p.CostPrice != nil {
				entry.CostPrice = *p.CostPrice
			}
			entry.Quantity = p.Quantity
			entry.QRCode = p.QRCode
			if p.CategoryID != nil {
				entry.Category = names[*p.CategoryID]
			}
		}
		entry.ChangePct = periodDelta(
			summary.soldByMonth[previous][productID],
			summary.soldByMonth[latest][productID],
		)
		ranked = append(ranked, entry)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Sold != ranked[j].Sold {
			return ranked[i].Sold > ranked[j].Sold
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if len(ranked) > topProductLimit {
		ranked = ranked[:topProductLimit]
	}
	return ranked
}

func lastTwoMonths(soldByMonth map[string]map[string]int) (latest, previous string) {
	keys := make(map[string]struct{}, len(soldByMonth))
	for key := range soldByMonth {
		keys[key] = struct{}{}
	}
	months := sortedMonths(keys)
	if len(months) > 0 {
		latest = months[len(months)-1]
	}
	if len(months) > 1 {
		previous = months[len(months)-2]
	}
	return latest, previous
}

func periodDelta(before, after int) float64 {
	if before == 0 {
		if after == 0 {
			return 0
		}
		return 100
	}
	return round2(float64(after-before) / float64(before) * 100)
}
