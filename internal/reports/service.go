// Package reports turns raw inventory transactions and ledger entries into
// time-bucketed business metrics and a short-horizon revenue forecast.
package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/shopstack-erp/shopstack/internal/catalog"
	"github.com/shopstack-erp/shopstack/internal/inventory"
	"github.com/shopstack-erp/shopstack/internal/ledger"
	"github.com/shopstack-erp/shopstack/internal/shared"
)

// Range labels accepted on report requests. The label informs UI framing
// only; aggregation buckets the tenant's full history by calendar month.
var rangeLabels = map[string]struct{}{
	"7days":  {},
	"30days": {},
	"90days": {},
	"1year":  {},
}

// CatalogStore is the product/category read surface consumed by reports.
type CatalogStore interface {
	ListProducts(ctx context.Context, ownerID string) ([]catalog.Product, error)
	ListCategories(ctx context.Context, ownerID string) ([]catalog.Category, error)
}

// LedgerStore is the accounting entry read surface consumed by reports.
type LedgerStore interface {
	ListEntries(ctx context.Context, ownerID string, filter ledger.Filter) ([]ledger.Entry, error)
}

// InventoryStore is the stock movement read surface consumed by reports.
type InventoryStore interface {
	ListByProductIDs(ctx context.Context, productIDs []string, filter inventory.Filter) ([]inventory.Transaction, error)
}

// Filter scopes one report request.
type Filter struct {
	OwnerID string
	Range   string
	Month   string
}

// Report is the combined JSON-serializable result handed to presentation.
// Every collection is non-nil so consumers iterate without null checks.
type Report struct {
	GeneratedAt     time.Time             `json:"generatedAt"`
	Range           string                `json:"range,omitempty"`
	Month           string                `json:"month,omitempty"`
	KeyMetrics      KeyMetrics            `json:"keyMetrics"`
	SalesData       []SalesPoint          `json:"salesData"`
	InventoryTrends []InventoryTrendPoint `json:"inventoryTrends"`
	CategoryData    []CategorySlice       `json:"categoryData"`
	TopProducts     []TopProduct          `json:"topProducts"`
	AccountingData  []AccountingPoint     `json:"accountingData"`
	CashFlow        []CashFlowPoint       `json:"cashFlow"`
	Predictions     []ForecastPoint       `json:"predictions"`
	Insights        Insights              `json:"insights"`
}

// Options carries the tenant display configuration. These are explicit
// parameters because month bucketing and currency rendering must not depend
// on ambient process state.
type Options struct {
	Language       language.Tag
	CurrencySymbol string
}

// Service orchestrates the aggregation pipeline for one tenant.
type Service struct {
	catalog   CatalogStore
	ledger    LedgerStore
	inventory InventoryStore
	cache     *Cache
	logger    *slog.Logger
	money     *MoneyFormatter
	now       func() time.Time
}

// NewService wires the stores with the cache helper.
func NewService(catalogStore CatalogStore, ledgerStore LedgerStore, inventoryStore InventoryStore, cache *Cache, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	tag := opts.Language
	if tag == (language.Tag{}) {
		tag = language.English
	}
	return &Service{
		catalog:   catalogStore,
		ledger:    ledgerStore,
		inventory: inventoryStore,
		cache:     cache,
		logger:    logger,
		money:     NewMoneyFormatter(tag, opts.CurrencySymbol),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Cache exposes the cache helper so mutation paths can bump the version.
func (s *Service) Cache() *Cache {
	return s.cache
}

// GetReport assembles the full report for one tenant, serving from cache
// when a fresh entry exists.
func (s *Service) GetReport(ctx context.Context, filter Filter) (Report, error) {
	if err := validateFilter(filter); err != nil {
		return Report{}, err
	}

	loader := func(ctx context.Context) (interface{}, error) {
		return s.assemble(ctx, filter)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Report{}, err
		}
		return value.(Report), nil
	}

	key, err := s.cache.BuildKey(ctx, keyReport(filter.OwnerID, filter.Range, filter.Month))
	if err != nil {
		return Report{}, err
	}
	var report Report
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return Report{}, err
	}
	return report, nil
}

func validateFilter(filter Filter) error {
	if filter.OwnerID == "" {
		return shared.ErrTenantMissing
	}
	if filter.Range != "" {
		if _, ok := rangeLabels[filter.Range]; !ok {
			return fmt.Errorf("%w: unknown range %q", shared.ErrValidation, filter.Range)
		}
	}
	if filter.Month != "" && !monthKeyPattern.MatchString(filter.Month) {
		return fmt.Errorf("%w: month must match YYYY-MM, got %q", shared.ErrValidation, filter.Month)
	}
	return nil
}

func (s *Service) assemble(ctx context.Context, filter Filter) (Report, error) {
	var (
		products   []catalog.Product
		categories []catalog.Category
		entries    []ledger.Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.catalog.ListProducts(gctx, filter.OwnerID)
		if err != nil {
			return fmt.Errorf("reports: fetch products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.catalog.ListCategories(gctx, filter.OwnerID)
		if err != nil {
			return fmt.Errorf("reports: fetch categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.ledger.ListEntries(gctx, filter.OwnerID, ledger.Filter{})
		if err != nil {
			// Financial data is best-effort relative to inventory data:
			// a ledger fetch failure degrades to an empty accounting
			// series instead of failing the whole report.
			s.logger.Warn("reports: fetch accounting entries",
				slog.String("owner_id", filter.OwnerID),
				slog.Any("error", err),
			)
			entries = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	productIDs := make([]string, 0, len(products))
	productsByID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		productsByID[p.ID] = p
	}

	transactions, err := s.inventory.ListByProductIDs(ctx, productIDs, inventory.Filter{})
	if err != nil {
		return Report{}, fmt.Errorf("reports: fetch transactions: %w", err)
	}

	now := s.now()
	summary := aggregateInventory(transactions, productsByID, now)
	accounting := aggregateAccounting(entries, summary.revenueByMonth, now)
	cashFlow := buildCashFlow(accounting)

	revenueSeries := make([]SeriesPoint, 0, len(accounting))
	for _, p := range accounting {
		revenueSeries = append(revenueSeries, SeriesPoint{Period: p.Month, Value: p.Revenue})
	}
	predictions, _, _ := buildForecast(revenueSeries)
	insights := buildInsights(revenueSeries)

	report := Report{
		GeneratedAt:     now,
		Range:           filter.Range,
		Month:           filter.Month,
		KeyMetrics:      buildKeyMetrics(summary, s.money.Format),
		SalesData:       summary.sales,
		InventoryTrends: summary.trends,
		CategoryData:    categoryDistribution(products, categories),
		TopProducts:     topProducts(summary, productsByID, categories),
		AccountingData:  accounting,
		CashFlow:        cashFlow,
		Predictions:     predictions,
		Insights:        insights,
	}
	normalizeEmpty(&report)
	return report, nil
}

// normalizeEmpty replaces nil sub-collections with empty slices so the
// serialized report never carries null arrays.
func normalizeEmpty(report *Report) {
	if report.SalesData == nil {
		report.SalesData = []SalesPoint{}
	}
	if report.InventoryTrends == nil {
		report.InventoryTrends = []InventoryTrendPoint{}
	}
	if report.CategoryData == nil {
		report.CategoryData = []CategorySlice{}
	}
	if report.TopProducts == nil {
		report.TopProducts = []TopProduct{}
	}
	if report.AccountingData == nil {
		report.AccountingData = []AccountingPoint{}
	}
	if report.CashFlow == nil {
		report.CashFlow = []CashFlowPoint{}
	}
	if report.Predictions == nil {
		report.Predictions = []ForecastPoint{}
	}
	if report.Insights.Anomalies == nil {
		report.Insights.Anomalies = []Anomaly{}
	}
}
