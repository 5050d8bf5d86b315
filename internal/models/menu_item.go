package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// CategoryAll selects every category when listing the menu.
const CategoryAll = "all"
