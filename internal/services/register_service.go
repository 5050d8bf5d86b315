package services

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/storage"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const notifyTimeout = 30 * time.Second

// RegisterOptions configures a Register.
type RegisterOptions struct {
	ShopName    string
	Currency    string
	DefaultMenu []models.MenuItem
	IDs         IDGenerator
	Clock       Clock
	Notifier    SaleNotifier
	Logger      *zap.Logger
}

// Register is the running point of sale: the menu, the order being built and
// the sales history, all backed by one store.
type Register interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error

	Catalog() MenuCatalog
	Ledger() SalesLedger

	Order() []models.OrderLine
	AddToOrder(ctx context.Context, itemID int64) ([]models.OrderLine, error)
	ChangeQuantity(ctx context.Context, itemID int64, delta int) ([]models.OrderLine, error)
	RemoveFromOrder(ctx context.Context, itemID int64) ([]models.OrderLine, error)
	ClearOrder(ctx context.Context) error
	CompleteOrder(ctx context.Context) (models.Sale, error)
	Receipt() (models.Receipt, error)

	Today() string
	Currency() string
	Ping(ctx context.Context) error
}

type register struct {
	// orderMu serialises every change to the order so that completing a sale
	// and clearing the order happen as one step.
	orderMu sync.Mutex

	store    storage.Gateway
	catalog  MenuCatalog
	cart     OrderCart
	ledger   SalesLedger
	notifier SaleNotifier
	clock    Clock
	logger   *zap.Logger

	shopName    string
	currency    string
	defaultMenu []models.MenuItem

	pending sync.WaitGroup
}

func NewRegister(store storage.Gateway, opts RegisterOptions) Register {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock(time.Local)
	}
	ids := opts.IDs
	if ids == nil {
		ids = NewClockGenerator(clock)
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = Notifiers{}
	}

	return &register{
		store:       store,
		catalog:     NewMenuCatalog(store, ids, logger.Named("catalog")),
		cart:        NewOrderCart(store, logger.Named("cart")),
		ledger:      NewSalesLedger(store, ids, clock, logger.Named("ledger")),
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
		shopName:    opts.ShopName,
		currency:    opts.Currency,
		defaultMenu: opts.DefaultMenu,
	}
}

// Start loads the stored collections and seeds the default menu on first run.
func (r *register) Start(ctx context.Context) error {
	if err := r.catalog.Load(ctx); err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}
	if err := r.ledger.Load(ctx); err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}
	if err := r.cart.Load(ctx); err != nil {
		return fmt.Errorf("failed to load current order: %w", err)
	}
	if _, err := r.catalog.SeedDefaults(ctx, r.defaultMenu); err != nil {
		return fmt.Errorf("failed to seed default menu: %w", err)
	}

	r.logger.Info("register started",
		zap.Int("menu_items", r.catalog.Len()),
		zap.Int("sales", r.ledger.Len()),
		zap.Int("order_lines", len(r.cart.Lines())),
	)
	return nil
}

// Shutdown waits for outstanding notifications, writes the current order and
// closes the store.
func (r *register) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		r.logger.Warn("shutdown before notifications finished", zap.Error(ctx.Err()))
	}

	r.orderMu.Lock()
	defer r.orderMu.Unlock()

	flushErr := r.cart.Flush(ctx)
	if flushErr != nil {
		r.logger.Error("failed to flush current order", zap.Error(flushErr))
	}
	if err := r.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	r.logger.Info("register stopped")
	return flushErr
}

func (r *register) Catalog() MenuCatalog { return r.catalog }
func (r *register) Ledger() SalesLedger  { return r.ledger }
func (r *register) Currency() string     { return r.currency }

func (r *register) Order() []models.OrderLine {
	return r.cart.Lines()
}

// AddToOrder adds one of the menu item to the order.
func (r *register) AddToOrder(ctx context.Context, itemID int64) ([]models.OrderLine, error) {
	item, err := r.catalog.Get(itemID)
	if err != nil {
		return nil, err
	}

	r.orderMu.Lock()
	defer r.orderMu.Unlock()

	if err := r.cart.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return r.cart.Lines(), nil
}

func (r *register) ChangeQuantity(ctx context.Context, itemID int64, delta int) ([]models.OrderLine, error) {
	r.orderMu.Lock()
	defer r.orderMu.Unlock()

	if err := r.cart.ChangeQuantity(ctx, itemID, delta); err != nil {
		return nil, err
	}
	return r.cart.Lines(), nil
}

func (r *register) RemoveFromOrder(ctx context.Context, itemID int64) ([]models.OrderLine, error) {
	r.orderMu.Lock()
	defer r.orderMu.Unlock()

	if err := r.cart.RemoveItem(ctx, itemID); err != nil {
		return nil, err
	}
	return r.cart.Lines(), nil
}

func (r *register) ClearOrder(ctx context.Context) error {
	r.orderMu.Lock()
	defer r.orderMu.Unlock()
	return r.cart.Clear(ctx)
}

// CompleteOrder records the order as a sale and empties it. If the emptied
// order cannot be stored the sale still stands, the order is emptied in memory
// so it cannot be sold twice, and the error is returned with the sale.
func (r *register) CompleteOrder(ctx context.Context) (models.Sale, error) {
	r.orderMu.Lock()
	defer r.orderMu.Unlock()

	sale, err := r.ledger.CompleteSale(ctx, r.cart)
	if err != nil {
		return models.Sale{}, err
	}
	clearErr := r.cart.Clear(ctx)
	if clearErr != nil {
		r.logger.Error("sale stored but order not cleared", zap.Int64("sale_id", sale.ID), zap.Error(clearErr))
		r.cart.Discard()
	}

	r.notify(sale)
	return sale, clearErr
}

func (r *register) notify(sale models.Sale) {
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := r.notifier.SaleCompleted(ctx, sale); err != nil {
			r.logger.Warn("sale notification failed", zap.Int64("sale_id", sale.ID), zap.Error(err))
		}
	}()
}

// Receipt renders the order being built. An empty order has no receipt.
func (r *register) Receipt() (models.Receipt, error) {
	lines := r.cart.Lines()
	if len(lines) == 0 {
		return models.Receipt{}, NewEmptyOrderError("no items in order to print")
	}
	return models.NewReceipt(r.shopName, r.currency, r.clock(), lines), nil
}

// Ping reports whether the backing store is reachable.
func (r *register) Ping(ctx context.Context) error {
	return storage.Ping(ctx, r.store)
}

// Today is the current date on the register's clock.
func (r *register) Today() string {
	return r.clock().Format(models.DateLayout)
}
