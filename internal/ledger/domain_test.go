package ledger

import "testing"

func TestParseAccountType(t *testing.T) {
	for raw, want := range map[string]AccountType{
		"asset":     AccountAsset,
		"LIABILITY": AccountLiability,
		" equity ":  AccountEquity,
		"revenue":   AccountRevenue,
		"expense":   AccountExpense,
	} {
		got, err := ParseAccountType(raw)
		if err != nil {
			t.Fatalf("ParseAccountType(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseAccountType(%q) = %s, want %s", raw, got, want)
		}
	}

	if _, err := ParseAccountType("goodwill"); err == nil {
		t.Fatal("expected error for unknown account type")
	}
}

func TestEntryAmounts(t *testing.T) {
	e := Entry{DebitAmount: "12.50", CreditAmount: "7"}
	if e.Debit() != 12.50 {
		t.Fatalf("Debit() = %v", e.Debit())
	}
	if e.Credit() != 7 {
		t.Fatalf("Credit() = %v", e.Credit())
	}
}

func TestEntryAmountsMalformed(t *testing.T) {
	cases := []Entry{
		{},
		{DebitAmount: "abc", CreditAmount: "12,50"},
		{DebitAmount: "  ", CreditAmount: "$5"},
	}
	for _, e := range cases {
		if e.Debit() != 0 || e.Credit() != 0 {
			t.Fatalf("malformed amounts must read as zero: %+v", e)
		}
	}
}
