package reports

import (
	"testing"
	"time"

	"github.com/shopstack-erp/shopstack/internal/ledger"
)

func TestAggregateAccounting(t *testing.T) {
	january := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	entries := []ledger.Entry{
		{AccountType: ledger.AccountRevenue, CreditAmount: "150.50", CreatedAt: january},
		{AccountType: ledger.AccountExpense, DebitAmount: "40.25", CreatedAt: january},
		// Balance-sheet entries never reach the P&L.
		{AccountType: ledger.AccountAsset, DebitAmount: "9999", CreatedAt: january},
		{AccountType: ledger.AccountLiability, CreditAmount: "9999", CreatedAt: january},
		{AccountType: ledger.AccountEquity, CreditAmount: "9999", CreatedAt: january},
	}
	points := aggregateAccounting(entries, map[string]float64{"2024-01": 90}, time.Now().UTC())
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %+v", points)
	}
	p := points[0]
	if p.Month != "2024-01" {
		t.Fatalf("unexpected month %s", p.Month)
	}
	// Ledger revenue and transaction revenue both count, and stay visible
	// as separate fields.
	if p.Revenue != 240.50 {
		t.Fatalf("expected combined revenue 240.50, got %v", p.Revenue)
	}
	if p.LedgerRevenue != 150.50 || p.SalesRevenue != 90 {
		t.Fatalf("expected split sources 150.50/90, got %v/%v", p.LedgerRevenue, p.SalesRevenue)
	}
	if p.Expenses != 40.25 {
		t.Fatalf("expected expenses 40.25, got %v", p.Expenses)
	}
	if p.Profit != 200.25 {
		t.Fatalf("expected profit 200.25, got %v", p.Profit)
	}
}

func TestAggregateAccountingMalformedAmounts(t *testing.T) {
	entries := []ledger.Entry{
		{AccountType: ledger.AccountRevenue, CreditAmount: "not-a-number", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{AccountType: ledger.AccountExpense, DebitAmount: "", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	points := aggregateAccounting(entries, nil, time.Now().UTC())
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %+v", points)
	}
	if points[0].Revenue != 0 || points[0].Expenses != 0 || points[0].Profit != 0 {
		t.Fatalf("malformed amounts must parse as zero: %+v", points[0])
	}
}

func TestAggregateAccountingSalesOnlyMonth(t *testing.T) {
	points := aggregateAccounting(nil, map[string]float64{"2024-03": 120}, time.Now().UTC())
	if len(points) != 1 || points[0].Month != "2024-03" {
		t.Fatalf("sales-only months must appear: %+v", points)
	}
	if points[0].Revenue != 120 || points[0].Profit != 120 {
		t.Fatalf("unexpected sales-only aggregates: %+v", points[0])
	}
}

func TestAggregateAccountingChronologicalOrder(t *testing.T) {
	entries := []ledger.Entry{
		{AccountType: ledger.AccountRevenue, CreditAmount: "10", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{AccountType: ledger.AccountRevenue, CreditAmount: "10", CreatedAt: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)},
		{AccountType: ledger.AccountRevenue, CreditAmount: "10", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	points := aggregateAccounting(entries, nil, time.Now().UTC())
	want := []string{"2023-11", "2024-01", "2024-03"}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %+v", points)
	}
	for i, month := range want {
		if points[i].Month != month {
			t.Fatalf("expected %s at %d, got %s", month, i, points[i].Month)
		}
	}
}
