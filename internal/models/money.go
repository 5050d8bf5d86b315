package models

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals are stored as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// FormatAmount renders an amount with two decimals followed by the currency, e.g. "85.00 MVR".
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + currency
}
