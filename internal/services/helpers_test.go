package services

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/storage"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// flakyGateway wraps a memory gateway and fails saves while failing is set,
// or only saves of failKey when that is set.
type flakyGateway struct {
	*storage.MemoryGateway
	mu      sync.Mutex
	failing bool
	failKey string
	saves   int
}

func newFlakyGateway() *flakyGateway {
	return &flakyGateway{MemoryGateway: storage.NewMemoryGateway()}
}

func (g *flakyGateway) Save(ctx context.Context, key string, blob []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failing || (g.failKey != "" && strings.HasSuffix(key, g.failKey)) {
		return errDiskFull
	}
	g.saves++
	return g.MemoryGateway.Save(ctx, key, blob)
}

func (g *flakyGateway) setFailing(failing bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failing = failing
}

func (g *flakyGateway) failSavesOf(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failKey = key
}

func (g *flakyGateway) saveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func espresso() models.MenuItem {
	return models.MenuItem{ID: 1, Name: "Espresso", Category: "Coffee", Price: price("25.00")}
}

func latte() models.MenuItem {
	return models.MenuItem{ID: 3, Name: "Latte", Category: "Coffee", Price: price("35.00")}
}

func testClock() Clock {
	return FixedClock(time.Date(2024, 1, 10, 9, 15, 0, 0, time.UTC))
}

func loadBlob(t *testing.T, gw storage.Gateway, key string) string {
	t.Helper()
	blob, err := gw.Load(context.Background(), key)
	require.NoError(t, err)
	return string(blob)
}

// assertSameMenu compares items field by field; prices by value, not scale.
func assertSameMenu(t *testing.T, want, got []models.MenuItem) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.True(t, want[i].Price.Equal(got[i].Price), "item %d price: want %s got %s", want[i].ID, want[i].Price, got[i].Price)
	}
}
