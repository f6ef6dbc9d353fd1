package reports

// CashFlowPoint is one month of cash movement with the running balance.
type CashFlowPoint struct {
	Month   string  `json:"month"`
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
	Balance float64 `json:"balance"`
}

// buildCashFlow folds the monthly accounting series left to right. The
// input must already be sorted ascending by month key; the fold starts from
// a zero balance and never reorders.
func buildCashFlow(points []AccountingPoint) []CashFlowPoint {
	flow := make([]CashFlowPoint, 0, len(points))
	balance := 0.0
	for _, p := range points {
		balance = round2(balance + p.Profit)
		flow = append(flow, CashFlowPoint{
			Month:   p.Month,
			Inflow:  p.Revenue,
			Outflow: p.Expenses,
			Balance: balance,
		})
	}
	return flow
}
