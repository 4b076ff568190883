package service

import (
	"fmt"
	"log/slog"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	apperrors "github.com/bookhaven/storefront/pkg/errors"
	"github.com/bookhaven/storefront/pkg/pagination"

	"github.com/bookhaven/storefront/internal/domain"
)

// filterCacheSize bounds the genre filter cache. The catalog is immutable,
// so cached slices never need invalidation.
const filterCacheSize = 32

// CatalogService derives the visible genre list and product pages from the
// injected read-only catalog.
type CatalogService struct {
	products []domain.Product
	genres   []string
	filters  *lru.Cache[string, []domain.Product]
	logger   *slog.Logger
}

// NewCatalogService creates a catalog service over the given product list.
// The list is referenced, not copied; it must not be mutated afterwards.
func NewCatalogService(products []domain.Product, logger *slog.Logger) (*CatalogService, error) {
	filters, err := lru.New[string, []domain.Product](filterCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create filter cache: %w", err)
	}

	return &CatalogService{
		products: products,
		genres:   collectGenres(products),
		filters:  filters,
		logger:   logger,
	}, nil
}

// Genres returns every distinct genre in the catalog plus the "All" sentinel,
// in ascending lexicographic order. "All" sorts into its natural position
// among the genre names; it is not pinned first.
func (s *CatalogService) Genres() []string {
	return s.genres
}

// FilterByGenre returns the catalog subset with the given genre, preserving
// catalog order. The "All" sentinel selects the whole catalog.
func (s *CatalogService) FilterByGenre(genre string) []domain.Product {
	if genre == domain.GenreAll {
		return s.products
	}

	if cached, ok := s.filters.Get(genre); ok {
		return cached
	}

	filtered := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.Genre == genre {
			filtered = append(filtered, p)
		}
	}

	s.filters.Add(genre, filtered)
	return filtered
}

// Page returns one page of the genre-filtered catalog together with the
// total number of matching products. An out-of-range page yields an empty
// slice.
func (s *CatalogService) Page(genre string, params pagination.Params) ([]domain.Product, int) {
	filtered := s.FilterByGenre(genre)
	return pagination.Slice(filtered, params.PerPage, params.Page), len(filtered)
}

// GetProduct returns the catalog product with the given ID.
func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, apperrors.NotFound("product", id)
}

// collectGenres builds the sorted genre list including the "All" sentinel.
func collectGenres(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	genres := []string{domain.GenreAll}
	for _, p := range products {
		if _, ok := seen[p.Genre]; ok {
			continue
		}
		seen[p.Genre] = struct{}{}
		genres = append(genres, p.Genre)
	}

	sort.Strings(genres)
	return genres
}
