package services

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/storage"
	"context"
	"math"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderCart is the order currently being built at the counter.
type OrderCart interface {
	AddItem(ctx context.Context, item models.MenuItem) error
	ChangeQuantity(ctx context.Context, itemID int64, delta int) error
	RemoveItem(ctx context.Context, itemID int64) error
	Clear(ctx context.Context) error
	Discard()
	Lines() []models.OrderLine
	Total() decimal.Decimal
	ItemCount() int
	IsEmpty() bool
	Load(ctx context.Context) error
	Flush(ctx context.Context) error
}

type orderCart struct {
	mu     sync.RWMutex
	lines  []models.OrderLine
	store  storage.Gateway
	logger *zap.Logger
}

func NewOrderCart(store storage.Gateway, logger *zap.Logger) OrderCart {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderCart{lines: []models.OrderLine{}, store: store, logger: logger}
}

func (c *orderCart) commit(ctx context.Context, next []models.OrderLine) error {
	if err := saveCollection(ctx, c.store, storage.KeyCurrentOrder, next); err != nil {
		return err
	}
	c.lines = next
	return nil
}

func (c *orderCart) indexOf(itemID int64) int {
	for i, line := range c.lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

// AddItem bumps the quantity of an existing line or appends a new line with
// quantity 1. Name and price are copied from item.
func (c *orderCart) AddItem(ctx context.Context, item models.MenuItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := models.CloneLines(c.lines)
	if idx := c.indexOf(item.ID); idx >= 0 {
		next[idx].Quantity++
	} else {
		next = append(next, models.OrderLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: 1,
		})
	}
	return c.commit(ctx, next)
}

// ChangeQuantity adds delta to the line's quantity and drops the line when it
// reaches zero. Unknown ids are ignored. A delta that would overflow the
// quantity is a validation error.
func (c *orderCart) ChangeQuantity(ctx context.Context, itemID int64, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(itemID)
	if idx < 0 || delta == 0 {
		return nil
	}

	if delta > 0 && c.lines[idx].Quantity > math.MaxInt-delta {
		return NewValidationError("quantity too large")
	}

	next := models.CloneLines(c.lines)
	next[idx].Quantity += delta
	if next[idx].Quantity <= 0 {
		next = append(next[:idx], next[idx+1:]...)
	}
	return c.commit(ctx, next)
}

func (c *orderCart) RemoveItem(ctx context.Context, itemID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(itemID)
	if idx < 0 {
		return nil
	}

	next := models.CloneLines(c.lines)
	next = append(next[:idx], next[idx+1:]...)
	return c.commit(ctx, next)
}

func (c *orderCart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(ctx, []models.OrderLine{})
}

// Discard empties the order in memory only. The stored order is left as it
// was until the next successful write.
func (c *orderCart) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = []models.OrderLine{}
}

// Lines returns a copy of the current lines.
func (c *orderCart) Lines() []models.OrderLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.CloneLines(c.lines)
}

func (c *orderCart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.LinesTotal(c.lines)
}

// ItemCount is the sum of quantities, not the number of lines.
func (c *orderCart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.LinesQuantity(c.lines)
}

func (c *orderCart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines) == 0
}

// Load restores the stored order. Lines with a non-positive quantity are dropped.
func (c *orderCart) Load(ctx context.Context) error {
	var lines []models.OrderLine
	if _, err := loadCollection(ctx, c.store, storage.KeyCurrentOrder, &lines); err != nil {
		return err
	}

	kept := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	if len(kept) != len(lines) {
		c.logger.Warn("dropped order lines with invalid quantity", zap.Int("dropped", len(lines)-len(kept)))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = kept
	return nil
}

// Flush writes the current order again.
func (c *orderCart) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(ctx, models.CloneLines(c.lines))
}
