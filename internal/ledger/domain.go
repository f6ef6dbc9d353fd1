// Package ledger holds double-entry accounting entries for one tenant.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AccountType is the closed set of ledger account classifications.
type AccountType string

const (
	AccountAsset     AccountType = "asset"
	AccountLiability AccountType = "liability"
	AccountEquity    AccountType = "equity"
	AccountRevenue   AccountType = "revenue"
	AccountExpense   AccountType = "expense"
)

// ParseAccountType validates a raw account type string.
func ParseAccountType(raw string) (AccountType, error) {
	switch at := AccountType(strings.ToLower(strings.TrimSpace(raw))); at {
	case AccountAsset, AccountLiability, AccountEquity, AccountRevenue, AccountExpense:
		return at, nil
	default:
		return "", fmt.Errorf("ledger: unknown account type %q", raw)
	}
}

// Entry is one ledger line. Exactly one of DebitAmount/CreditAmount is
// normally non-zero; both are decimal strings as stored.
type Entry struct {
	ID           string
	AccountType  AccountType
	Description  string
	DebitAmount  string
	CreditAmount string
	OwnerID      string
	CreatedAt    time.Time
}

// Debit returns the parsed debit amount, zero when missing or malformed.
func (e Entry) Debit() float64 {
	return parseAmount(e.DebitAmount)
}

// Credit returns the parsed credit amount, zero when missing or malformed.
func (e Entry) Credit() float64 {
	return parseAmount(e.CreditAmount)
}

func parseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
