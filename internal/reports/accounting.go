package reports

import (
	"time"

	"github.com/shopstack-erp/shopstack/internal/ledger"
)

// AccountingPoint is one month of financial aggregates. Revenue carries both
// manual ledger entries and transaction-derived sales revenue; the two
// sources are also exposed separately so consumers can pick either.
type AccountingPoint struct {
	Month         string  `json:"month"`
	Revenue       float64 `json:"revenue"`
	LedgerRevenue float64 `json:"ledgerRevenue"`
	SalesRevenue  float64 `json:"salesRevenue"`
	Expenses      float64 `json:"expenses"`
	Profit        float64 `json:"profit"`
}

type monthLedger struct {
	revenue  float64
	expenses float64
}

// aggregateAccounting sums revenue credits and expense debits per month and
// merges in the transaction-derived revenue additively.
func aggregateAccounting(entries []ledger.Entry, salesRevenue map[string]float64, now time.Time) []AccountingPoint {
	byMonth := make(map[string]*monthLedger)

	touch := func(key string) *monthLedger {
		m, ok := byMonth[key]
		if !ok {
			m = &monthLedger{}
			byMonth[key] = m
		}
		return m
	}

	for _, entry := range entries {
		key := monthKey(entry.CreatedAt, now)
		switch entry.AccountType {
		case ledger.AccountRevenue:
			touch(key).revenue += entry.Credit()
		case ledger.AccountExpense:
			touch(key).expenses += entry.Debit()
		case ledger.AccountAsset, ledger.AccountLiability, ledger.AccountEquity:
			// Balance-sheet accounts do not enter the monthly P&L.
		}
	}
	for key := range salesRevenue {
		touch(key)
	}

	keys := make(map[string]struct{}, len(byMonth))
	for key := range byMonth {
		keys[key] = struct{}{}
	}
	months := sortedMonths(keys)

	points := make([]AccountingPoint, 0, len(months))
	for _, key := range months {
		m := byMonth[key]
		sales := salesRevenue[key]
		revenue := m.revenue + sales
		points = append(points, AccountingPoint{
			Month:         key,
			Revenue:       round2(revenue),
			LedgerRevenue: round2(m.revenue),
			SalesRevenue:  round2(sales),
			Expenses:      round2(m.expenses),
			Profit:        round2(revenue - m.expenses),
		})
	}
	return points
}
