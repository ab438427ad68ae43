package catalog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Service provides the read side of the catalog plus the stock mutation.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAll returns every product grouped by category. A failing table is
// logged and left out of the result instead of failing the whole listing.
func (s *Service) ListAll() map[Category][]Product {
	out := map[Category][]Product{}
	for _, cat := range Categories {
		products, err := s.repo.ListByCategory(cat)
		if err != nil {
			slog.Warn("skipping category", "category", cat, "error", err)
			continue
		}
		out[cat] = products
	}
	return out
}

// ListByCategory returns the products of one caller-named category. An
// unknown name yields ErrInvalidCategory before any query is issued.
func (s *Service) ListByCategory(name string) ([]Product, error) {
	cat, err := ParseCategory(name)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(cat)
}

// ListFlagged returns products with the given flag set across every
// category, together with the per-table errors encountered along the way.
func (s *Service) ListFlagged(flag Flag) ([]Product, []string) {
	out := make([]Product, 0)
	errs := make([]string, 0)
	for _, cat := range Categories {
		products, err := s.repo.ListFlagged(cat, flag)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", cat, err))
			continue
		}
		out = append(out, products...)
	}
	return out, errs
}

// Search scans every category table and keeps products whose feature text
// contains the keyword, case-insensitively. Products without a feature never
// match. Results keep table order, then each table's natural order.
func (s *Service) Search(keyword string) ([]Product, error) {
	needle := strings.ToLower(keyword)
	out := make([]Product, 0)
	for _, cat := range Categories {
		products, err := s.repo.ListByCategory(cat)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", cat, err)
		}
		for _, p := range products {
			if p.Feature != nil && strings.Contains(strings.ToLower(*p.Feature), needle) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// UpdateStock overwrites a product's quantity unconditionally and returns
// the updated record. Concurrent updates race; the last writer wins.
func (s *Service) UpdateStock(name string, id, quantity int) (Product, error) {
	cat, err := ParseCategory(name)
	if err != nil {
		return Product{}, err
	}
	return s.repo.UpdateQuantity(cat, id, quantity)
}
