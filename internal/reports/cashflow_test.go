package reports

import (
	"math"
	"testing"
)

func TestBuildCashFlowRunningBalance(t *testing.T) {
	points := []AccountingPoint{
		{Month: "2024-01", Revenue: 30, Expenses: 20, Profit: 10},
		{Month: "2024-02", Revenue: 5, Expenses: 10, Profit: -5},
		{Month: "2024-03", Revenue: 25, Expenses: 5, Profit: 20},
	}
	flow := buildCashFlow(points)
	if len(flow) != 3 {
		t.Fatalf("expected 3 flow points, got %d", len(flow))
	}
	wantBalances := []float64{10, 5, 25}
	for i, want := range wantBalances {
		if flow[i].Balance != want {
			t.Fatalf("balance[%d] = %v, want %v", i, flow[i].Balance, want)
		}
	}
	if flow[0].Inflow != 30 || flow[0].Outflow != 20 {
		t.Fatalf("inflow/outflow must mirror revenue/expenses: %+v", flow[0])
	}
}

func TestBuildCashFlowNegativeBalanceStaysFinite(t *testing.T) {
	points := []AccountingPoint{
		{Month: "2024-01", Revenue: 0, Expenses: 100, Profit: -100},
		{Month: "2024-02", Revenue: 10, Expenses: 50, Profit: -40},
	}
	flow := buildCashFlow(points)
	if flow[1].Balance != -140 {
		t.Fatalf("expected balance -140, got %v", flow[1].Balance)
	}
	for _, p := range flow {
		if math.IsNaN(p.Balance) || math.IsInf(p.Balance, 0) {
			t.Fatalf("balance not finite: %+v", p)
		}
	}
}

func TestBuildCashFlowEmpty(t *testing.T) {
	if flow := buildCashFlow(nil); len(flow) != 0 {
		t.Fatalf("expected empty flow, got %v", flow)
	}
}
