package services

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/storage"
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderSource is anything that can hand out a copy of its order lines.
type OrderSource interface {
	Lines() []models.OrderLine
}

// SalesLedger is the append-only history of completed orders.
type SalesLedger interface {
	CompleteSale(ctx context.Context, order OrderSource) (models.Sale, error)
	SalesOnDate(date string) []models.Sale
	All() []models.Sale
	Len() int
	DailyReport(date string) (models.DailyReport, error)
	ExportDate(date string) ([]byte, error)
	Load(ctx context.Context) error
}

type salesLedger struct {
	mu     sync.RWMutex
	sales  []models.Sale
	store  storage.Gateway
	ids    IDGenerator
	clock  Clock
	logger *zap.Logger
}

func NewSalesLedger(store storage.Gateway, ids IDGenerator, clock Clock, logger *zap.Logger) SalesLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock(time.Local)
	}
	return &salesLedger{sales: []models.Sale{}, store: store, ids: ids, clock: clock, logger: logger}
}

// CompleteSale records the order as a sale. The order itself is not modified;
// clearing it is up to the caller.
func (l *salesLedger) CompleteSale(ctx context.Context, order OrderSource) (models.Sale, error) {
	lines := order.Lines()
	if len(lines) == 0 {
		return models.Sale{}, NewEmptyOrderError("no items in order")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	sale := models.Sale{
		ID:    l.ids.NextID(),
		Date:  now.Format(models.DateLayout),
		Time:  now.Format(models.TimeLayout),
		Items: models.CloneLines(lines),
		Total: models.LinesTotal(lines),
	}

	next := make([]models.Sale, len(l.sales), len(l.sales)+1)
	copy(next, l.sales)
	next = append(next, sale)
	if err := saveCollection(ctx, l.store, storage.KeySales, next); err != nil {
		return models.Sale{}, err
	}
	l.sales = next

	l.logger.Info("sale completed",
		zap.Int64("sale_id", sale.ID),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.Int("items", sale.ItemCount()),
	)
	return sale.Clone(), nil
}

// SalesOnDate returns the sales whose date equals date exactly, oldest first.
func (l *salesLedger) SalesOnDate(date string) []models.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []models.Sale{}
	for _, sale := range l.sales {
		if sale.Date == date {
			out = append(out, sale.Clone())
		}
	}
	return out
}

func (l *salesLedger) All() []models.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Sale, len(l.sales))
	for i, sale := range l.sales {
		out[i] = sale.Clone()
	}
	return out
}

func (l *salesLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sales)
}

func (l *salesLedger) DailyReport(date string) (models.DailyReport, error) {
	if err := ValidateDate(date); err != nil {
		return models.DailyReport{}, err
	}
	sales := l.SalesOnDate(date)
	return models.DailyReport{Date: date, Summary: Summarize(sales), Sales: sales}, nil
}

// ExportDate renders the sales of date as an indented JSON array.
func (l *salesLedger) ExportDate(date string) ([]byte, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	return prettyJSON(l.SalesOnDate(date))
}

func (l *salesLedger) Load(ctx context.Context) error {
	var sales []models.Sale
	if _, err := loadCollection(ctx, l.store, storage.KeySales, &sales); err != nil {
		return err
	}
	if sales == nil {
		sales = []models.Sale{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, sale := range sales {
		observeID(l.ids, sale.ID)
	}
	l.sales = sales
	return nil
}

// Summarize totals a set of sales. An empty set yields all zeros.
func Summarize(sales []models.Sale) models.SalesSummary {
	summary := models.SalesSummary{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, sale := range sales {
		summary.OrderCount++
		summary.TotalRevenue = summary.TotalRevenue.Add(sale.Total)
		summary.TotalItemsSold += sale.ItemCount()
	}
	if summary.OrderCount > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.OrderCount)))
	}
	return summary
}

// ValidateDate checks that date is a YYYY-MM-DD calendar date.
func ValidateDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return NewValidationError("date must be in YYYY-MM-DD format")
	}
	return nil
}
