package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMenu(t *testing.T) {
	items, err := DefaultMenu("")
	require.NoError(t, err)
	require.Len(t, items, 16)

	assert.Equal(t, "Espresso", items[0].Name)
	assert.True(t, items[0].Price.Equal(price("25")))
	assert.Equal(t, int64(16), items[15].ID)
	assert.Equal(t, "Short Eats", items[15].Category)

	categories := []string{}
	seen := map[string]bool{}
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	assert.Equal(t, DefaultCategories, categories)
}

func TestDefaultMenuFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - {id: 5, name: Mocha, category: Coffee, price: \"32.50\"}\n"), 0o644))

	items, err := DefaultMenu(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(price("32.5")))

	_, err = DefaultMenu(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseMenuSeedRejectsBadEntries(t *testing.T) {
	inputs := []string{
		"items:\n  - {id: 1, name: A, category: B, price: abc}\n",
		"items:\n  - {id: 1, name: '', category: B, price: '1'}\n",
		"items:\n  - {id: 0, name: A, category: B, price: '1'}\n",
		"items:\n  - {id: 1, name: A, category: B, price: '1'}\n  - {id: 1, name: C, category: B, price: '1'}\n",
		"items: [",
	}
	for _, input := range inputs {
		_, err := ParseMenuSeed([]byte(input))
		assert.Error(t, err, input)
	}
}
