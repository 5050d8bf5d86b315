package models

import "github.com/shopspring/decimal"

// Sale is an immutable record of one completed order.
type Sale struct {
	ID    int64           `json:"id"`
	Date  string          `json:"date"` // YYYY-MM-DD
	Time  string          `json:"time"`
	Items []OrderLine     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (s Sale) ItemCount() int {
	return LinesQuantity(s.Items)
}

func (s Sale) Clone() Sale {
	s.Items = CloneLines(s.Items)
	return s
}

type SalesSummary struct {
	OrderCount        int             `json:"orderCount"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalItemsSold    int             `json:"totalItemsSold"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// DailyReport is the sales of one calendar date together with their summary.
type DailyReport struct {
	Date    string       `json:"date"`
	Summary SalesSummary `json:"summary"`
	Sales   []Sale       `json:"sales"`
}

// DateLayout is the calendar date format used by sales and reports.
const DateLayout = "2006-01-02"

// TimeLayout is the wall clock format stored on each sale.
const TimeLayout = "15:04:05"
