package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bookhaven/storefront/internal/domain"
)

// Load reads the full product catalog from the given JSON file. The catalog
// is supplied whole by the data provider and is treated as read-only for the
// lifetime of the process.
func Load(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", path, err)
	}

	if err := validate(products); err != nil {
		return nil, fmt.Errorf("invalid catalog in %s: %w", path, err)
	}

	return products, nil
}

// validate checks catalog invariants: product IDs are unique and non-empty,
// prices are non-negative, and discounts are fractions in [0, 1).
func validate(products []domain.Product) error {
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if p.ID == "" {
			return fmt.Errorf("product at index %d has an empty id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Price < 0 {
			return fmt.Errorf("product %s has a negative price", p.ID)
		}
		if p.Discount < 0 || p.Discount >= 1 {
			return fmt.Errorf("product %s has discount %v outside [0, 1)", p.ID, p.Discount)
		}
	}
	return nil
}
