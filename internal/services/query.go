package services

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"beautystock/internal/domain"
)

// Search yields the products whose name or category contains keyword,
// ignoring case, in catalog order. Each range over the result scans afresh.
func (s *CatalogStore) Search(keyword string) iter.Seq2[string, domain.Product] {
	return func(yield func(string, domain.Product) bool) {
		fold := cases.Fold()
		kw := fold.String(keyword)
		for _, p := range s.products {
			if strings.Contains(fold.String(p.Name), kw) || strings.Contains(fold.String(string(p.Category)), kw) {
				if !yield(p.Code, p) {
					return
				}
			}
		}
	}
}

// List returns the products sorted by code, limited to one category unless
// filter is empty.
func (s *CatalogStore) List(filter domain.Category) []domain.Product {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter == "" || p.Category == filter {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Product) int { return strings.Compare(a.Code, b.Code) })
	return out
}

type ListSection struct {
	Category domain.Category
	Products []domain.Product
}

// GroupRuns starts a new section every time the category changes along the
// given order. Sections follow code order, so a category whose codes are not
// contiguous shows up more than once.
func GroupRuns(products []domain.Product) []ListSection {
	var out []ListSection
	for _, p := range products {
		if n := len(out); n == 0 || out[n-1].Category != p.Category {
			out = append(out, ListSection{Category: p.Category})
		}
		last := &out[len(out)-1]
		last.Products = append(last.Products, p)
	}
	return out
}

// LowStock returns products with stock at or below threshold, in catalog order.
func (s *CatalogStore) LowStock(threshold int) []domain.Product {
	var out []domain.Product
	for _, p := range s.products {
		if p.Stock <= threshold {
			out = append(out, p)
		}
	}
	return out
}
