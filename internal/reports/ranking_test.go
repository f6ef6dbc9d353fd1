package reports

import (
	"testing"
	"time"

	"github.com/shopstack-erp/shopstack/internal/catalog"
	"github.com/shopstack-erp/shopstack/internal/inventory"
)

func strPtr(s string) *string { return &s }

func TestCategoryDistribution(t *testing.T) {
	categories := []catalog.Category{{ID: "cat-1", Name: "Tops"}}
	products := []catalog.Product{
		{ID: "a", Name: "A", CategoryID: strPtr("cat-1"), Quantity: 5},
		{ID: "b", Name: "B", CategoryID: nil, Quantity: 3},
	}
	slices := categoryDistribution(products, categories)
	got := make(map[string]int, len(slices))
	for _, s := range slices {
		got[s.Name] = s.Value
	}
	if got["Tops"] != 5 {
		t.Fatalf("expected Tops=5, got %v", got)
	}
	if got[uncategorizedName] != 3 {
		t.Fatalf("expected Uncategorized=3, got %v", got)
	}
}

func TestCategoryDistributionUnresolvableReference(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", CategoryID: strPtr("deleted-cat"), Quantity: 7},
	}
	slices := categoryDistribution(products, nil)
	if len(slices) != 1 || slices[0].Name != uncategorizedName || slices[0].Value != 7 {
		t.Fatalf("dangling category reference should fall back: %v", slices)
	}
}

func rankerSummary(t *testing.T, transactions []inventory.Transaction, products map[string]catalog.Product) inventorySummary {
	t.Helper()
	return aggregateInventory(transactions, products, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
}

func TestTopProductsRankingAndLimit(t *testing.T) {
	products := make(map[string]catalog.Product)
	var transactions []inventory.Transaction
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		products[id] = catalog.Product{ID: id, Name: "Product " + id, Price: 10}
		transactions = append(transactions, inventory.Transaction{
			ProductID: id,
			Type:      inventory.TransactionOut,
			Quantity:  i + 1,
			CreatedAt: created,
		})
	}

	ranked := topProducts(rankerSummary(t, transactions, products), products, nil)
	if len(ranked) != topProductLimit {
		t.Fatalf("expected top %d, got %d", topProductLimit, len(ranked))
	}
	if ranked[0].Sold != 12 {
		t.Fatalf("expected best seller sold=12, got %d", ranked[0].Sold)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Sold > ranked[i-1].Sold {
			t.Fatalf("ranking not descending at %d: %v", i, ranked)
		}
	}
}

func TestTopProductsUnknownWhenDeleted(t *testing.T) {
	transactions := []inventory.Transaction{
		{ProductID: "ghost", Type: inventory.TransactionOut, Quantity: 4, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	ranked := topProducts(rankerSummary(t, transactions, nil), nil, nil)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(ranked))
	}
	if ranked[0].Name != "Unknown" || ranked[0].Sold != 4 {
		t.Fatalf("deleted product should rank as Unknown: %+v", ranked[0])
	}
}

func TestTopProductsPeriodOverPeriodChange(t *testing.T) {
	products := map[string]catalog.Product{
		"a": {ID: "a", Name: "A", Price: 10},
	}
	transactions := []inventory.Transaction{
		{ProductID: "a", Type: inventory.TransactionOut, Quantity: 4, CreatedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ProductID: "a", Type: inventory.TransactionOut, Quantity: 6, CreatedAt: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
	}
	ranked := topProducts(rankerSummary(t, transactions, products), products, nil)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(ranked))
	}
	// February sold 6 against January's 4: +50%.
	if ranked[0].ChangePct != 50 {
		t.Fatalf("expected change 50%%, got %v", ranked[0].ChangePct)
	}
}
