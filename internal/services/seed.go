package services

import (
	"cafe_pos/internal/models"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default_menu.yaml
var defaultMenuYAML []byte

// DefaultCategories are offered when creating menu items.
var DefaultCategories = []string{"Coffee", "Tea", "Soft Drink", "Water", "Nuts", "Ice Cream", "Short Eats"}

type menuSeedFile struct {
	Items []struct {
		ID       int64  `yaml:"id"`
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
		Price    string `yaml:"price"`
	} `yaml:"items"`
}

// DefaultMenu reads the seed menu from path, or the built-in one when path is empty.
func DefaultMenu(path string) ([]models.MenuItem, error) {
	data := defaultMenuYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read menu seed: %w", err)
		}
	}
	return ParseMenuSeed(data)
}

func ParseMenuSeed(data []byte) ([]models.MenuItem, error) {
	var file menuSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse menu seed: %w", err)
	}

	items := make([]models.MenuItem, 0, len(file.Items))
	seen := make(map[int64]bool)
	for i, entry := range file.Items {
		price, err := decimal.NewFromString(strings.TrimSpace(entry.Price))
		if err != nil {
			return nil, fmt.Errorf("menu seed item %d: invalid price %q", i, entry.Price)
		}
		name, category, err := validateMenuFields(entry.Name, entry.Category, price)
		if err != nil {
			return nil, fmt.Errorf("menu seed item %d: %w", i, err)
		}
		if entry.ID <= 0 || seen[entry.ID] {
			return nil, fmt.Errorf("menu seed item %d: id must be positive and unique", i)
		}
		seen[entry.ID] = true
		items = append(items, models.MenuItem{ID: entry.ID, Name: name, Category: category, Price: price})
	}
	return items, nil
}
