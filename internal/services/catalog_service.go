package services

import (
	"bytes"
	"cafe_pos/internal/models"
	"cafe_pos/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type MenuCatalog interface {
	Add(ctx context.Context, name, category string, price decimal.Decimal) (models.MenuItem, error)
	Update(ctx context.Context, id int64, name, category string, price decimal.Decimal) (models.MenuItem, error)
	Delete(ctx context.Context, id int64) error
	Get(id int64) (models.MenuItem, error)
	List(category string) []models.MenuItem
	Search(query string) []models.MenuItem
	Categories() []string
	Len() int
	Export() ([]byte, error)
	Import(ctx context.Context, data []byte) (int, error)
	Load(ctx context.Context) error
	SeedDefaults(ctx context.Context, items []models.MenuItem) (bool, error)
}

type menuCatalog struct {
	mu     sync.RWMutex
	items  []models.MenuItem
	store  storage.Gateway
	ids    IDGenerator
	logger *zap.Logger
}

func NewMenuCatalog(store storage.Gateway, ids IDGenerator, logger *zap.Logger) MenuCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &menuCatalog{
		items:  []models.MenuItem{},
		store:  store,
		ids:    ids,
		logger: logger,
	}
}

func validateMenuFields(name, category string, price decimal.Decimal) (string, string, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return "", "", NewValidationError("name is required")
	}
	if category == "" {
		return "", "", NewValidationError("category is required")
	}
	if price.IsNegative() {
		return "", "", NewValidationError("price must be >= 0")
	}
	return name, category, nil
}

// commit persists next and makes it the current menu. The menu is left
// untouched when the write fails.
func (s *menuCatalog) commit(ctx context.Context, next []models.MenuItem) error {
	if err := saveCollection(ctx, s.store, storage.KeyMenu, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *menuCatalog) indexOf(id int64) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *menuCatalog) Add(ctx context.Context, name, category string, price decimal.Decimal) (models.MenuItem, error) {
	name, category, err := validateMenuFields(name, category, price)
	if err != nil {
		return models.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.MenuItem{ID: s.ids.NextID(), Name: name, Category: category, Price: price}
	next := append(s.snapshot(), item)
	if err := s.commit(ctx, next); err != nil {
		return models.MenuItem{}, err
	}

	s.logger.Info("menu item added", zap.Int64("id", item.ID), zap.String("name", item.Name))
	return item, nil
}

func (s *menuCatalog) Update(ctx context.Context, id int64, name, category string, price decimal.Decimal) (models.MenuItem, error) {
	name, category, err := validateMenuFields(name, category, price)
	if err != nil {
		return models.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.MenuItem{}, NewNotFoundError("menu item %d not found", id)
	}

	item := models.MenuItem{ID: id, Name: name, Category: category, Price: price}
	next := s.snapshot()
	next[idx] = item
	if err := s.commit(ctx, next); err != nil {
		return models.MenuItem{}, err
	}

	s.logger.Info("menu item updated", zap.Int64("id", id))
	return item, nil
}

// Delete removes the item. Unknown ids fail with a not found error, the same as Update.
func (s *menuCatalog) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return NewNotFoundError("menu item %d not found", id)
	}

	next := make([]models.MenuItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info("menu item deleted", zap.Int64("id", id))
	return nil
}

func (s *menuCatalog) Get(id int64) (models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.MenuItem{}, NewNotFoundError("menu item %d not found", id)
	}
	return s.items[idx], nil
}

// List returns the menu in catalog order. An empty category or "all" selects
// every item; anything else must match the category exactly.
func (s *menuCatalog) List(category string) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == "" || category == models.CategoryAll {
		return s.snapshot()
	}
	out := []models.MenuItem{}
	for _, item := range s.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Search matches query against item names, ignoring case.
func (s *menuCatalog) Search(query string) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	out := []models.MenuItem{}
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Categories lists each category once, in the order it first appears on the menu.
func (s *menuCatalog) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	out := []string{}
	for _, item := range s.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

func (s *menuCatalog) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Export renders the menu as an indented JSON array.
func (s *menuCatalog) Export() ([]byte, error) {
	return prettyJSON(s.List(models.CategoryAll))
}

type importedItem struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    *decimal.Decimal `json:"price"`
}

// Import replaces the whole menu with the items in data. Entries without an
// id are given a new one. Nothing changes unless every entry is valid.
func (s *menuCatalog) Import(ctx context.Context, data []byte) (int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return 0, NewFormatError("invalid menu file format: expected a JSON array")
		}
		return 0, NewFormatError("error reading menu file: %v", err)
	}
	if raw == nil {
		return 0, NewFormatError("invalid menu file format: expected a JSON array")
	}

	parsed := make([]importedItem, 0, len(raw))
	seen := make(map[int64]bool)
	for i, element := range raw {
		var in importedItem
		if !bytes.HasPrefix(bytes.TrimSpace(element), []byte("{")) {
			return 0, NewFormatError("item %d is not an object", i)
		}
		if err := json.Unmarshal(element, &in); err != nil {
			return 0, NewFormatError("item %d: %v", i, err)
		}
		if in.Price == nil {
			return 0, NewFormatError("item %d: price is required", i)
		}
		name, category, err := validateMenuFields(in.Name, in.Category, *in.Price)
		if err != nil {
			return 0, NewFormatError("item %d: %s", i, err.(*POSError).Message)
		}
		if in.ID > 0 {
			if seen[in.ID] {
				return 0, NewFormatError("item %d: duplicate id %d", i, in.ID)
			}
			seen[in.ID] = true
		}
		in.Name, in.Category = name, category
		parsed = append(parsed, in)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range seen {
		observeID(s.ids, id)
	}
	next := make([]models.MenuItem, 0, len(parsed))
	for _, in := range parsed {
		id := in.ID
		if id <= 0 {
			id = s.ids.NextID()
		}
		next = append(next, models.MenuItem{ID: id, Name: in.Name, Category: in.Category, Price: *in.Price})
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	s.logger.Info("menu imported", zap.Int("items", len(next)))
	return len(next), nil
}

// Load replaces the in-memory menu with the stored one, if any.
func (s *menuCatalog) Load(ctx context.Context) error {
	var items []models.MenuItem
	found, err := loadCollection(ctx, s.store, storage.KeyMenu, &items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !found || items == nil {
		items = []models.MenuItem{}
	}
	for _, item := range items {
		observeID(s.ids, item.ID)
	}
	s.items = items
	return nil
}

// SeedDefaults stores items as the menu when the menu is empty. It reports
// whether anything was written.
func (s *menuCatalog) SeedDefaults(ctx context.Context, items []models.MenuItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) > 0 || len(items) == 0 {
		return false, nil
	}
	next := make([]models.MenuItem, len(items))
	copy(next, items)
	for _, item := range next {
		observeID(s.ids, item.ID)
	}
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Info("default menu loaded", zap.Int("items", len(next)))
	return true, nil
}

func (s *menuCatalog) snapshot() []models.MenuItem {
	out := make([]models.MenuItem, len(s.items))
	copy(out, s.items)
	return out
}
