package reports

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter renders currency totals as display strings with locale
// aware digit grouping, e.g. "$1,234.56".
type MoneyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewMoneyFormatter builds a formatter for the tenant's configured currency
// symbol. The symbol is an explicit parameter, not an ambient global.
func NewMoneyFormatter(tag language.Tag, symbol string) *MoneyFormatter {
	if symbol == "" {
		symbol = "$"
	}
	return &MoneyFormatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Format renders an amount rounded to two decimals.
func (f *MoneyFormatter) Format(amount float64) string {
	return f.printer.Sprintf("%s%.2f", f.symbol, round2(amount))
}
