package models

import "github.com/shopspring/decimal"

// OrderLine is one menu item in the in-progress order. Name and price are
// copied from the menu when the line is created.
type OrderLine struct {
	ItemID   int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LinesTotal sums price × quantity over lines.
func LinesTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// LinesQuantity sums the quantities of lines.
func LinesQuantity(lines []OrderLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// CloneLines returns an independent copy of lines. A nil input yields an empty slice.
func CloneLines(lines []OrderLine) []OrderLine {
	out := make([]OrderLine, len(lines))
	copy(out, lines)
	return out
}
