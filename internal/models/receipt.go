package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const receiptWidth = 36

// Receipt is a printable view of the current order.
type Receipt struct {
	ShopName  string          `json:"shop_name"`
	IssuedAt  time.Time       `json:"issued_at"`
	Lines     []OrderLine     `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

func NewReceipt(shopName, currency string, issuedAt time.Time, lines []OrderLine) Receipt {
	return Receipt{
		ShopName:  shopName,
		IssuedAt:  issuedAt,
		Lines:     CloneLines(lines),
		ItemCount: LinesQuantity(lines),
		Total:     LinesTotal(lines),
		Currency:  currency,
	}
}

// Text renders the receipt as fixed-width plain text.
func (r Receipt) Text() string {
	var b strings.Builder
	rule := strings.Repeat("-", receiptWidth)

	b.WriteString(center(r.ShopName, receiptWidth))
	b.WriteString("\n")
	b.WriteString(center(r.IssuedAt.Format(DateLayout+" "+TimeLayout), receiptWidth))
	b.WriteString("\n")
	b.WriteString(rule + "\n")
	for _, line := range r.Lines {
		writeRow(&b, fmt.Sprintf("%s x%d", line.Name, line.Quantity), FormatAmount(line.Subtotal(), r.Currency))
	}
	b.WriteString(rule + "\n")
	writeRow(&b, fmt.Sprintf("Items: %d", r.ItemCount), "")
	writeRow(&b, "Total", FormatAmount(r.Total, r.Currency))
	return b.String()
}

func writeRow(b *strings.Builder, left, right string) {
	gap := receiptWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteString("\n")
}

func center(s string, width int) string {
	pad := (width - utf8.RuneCountInString(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
