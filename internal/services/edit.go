package services

import (
	"fmt"
	"strings"

	"beautystock/internal/domain"
)

type Field string

const (
	FieldName     Field = "name"
	FieldCategory Field = "category"
	FieldStock    Field = "stock"
	FieldPrice    Field = "price"
)

// AllFields is the order in which an "all" edit asks for values.
var AllFields = []Field{FieldName, FieldCategory, FieldStock, FieldPrice}

// ParseFields reads an edit selector: one field name, a comma separated
// list of them, or "all".
func ParseFields(s string) ([]Field, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return AllFields, nil
	}
	var out []Field
	seen := map[Field]bool{}
	for _, part := range strings.Split(s, ",") {
		f := Field(strings.TrimSpace(part))
		switch f {
		case FieldName, FieldCategory, FieldStock, FieldPrice:
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// ProductUpdate holds the new values of an edit; nil fields are left alone.
type ProductUpdate struct {
	Name     *string
	Category *domain.Category
	Stock    *int
	Price    *int
}

// EditProduct overwrites the selected fields. The category must be a known
// one but may stop matching the code prefix.
func (s *CatalogStore) EditProduct(code string, upd ProductUpdate) (domain.Product, error) {
	i, err := s.lookup(code)
	if err != nil {
		return domain.Product{}, err
	}
	if upd.Category != nil && upd.Category.Prefix() == "" {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, *upd.Category)
	}
	if (upd.Stock != nil && *upd.Stock < 0) || (upd.Price != nil && *upd.Price < 0) {
		return domain.Product{}, domain.ErrNegativeValue
	}

	before := s.products[i]
	p := before
	changed := []string{}
	if upd.Name != nil {
		p.Name = *upd.Name
		changed = append(changed, string(FieldName))
	}
	if upd.Category != nil {
		p.Category = *upd.Category
		changed = append(changed, string(FieldCategory))
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
		changed = append(changed, string(FieldStock))
	}
	if upd.Price != nil {
		p.Price = *upd.Price
		changed = append(changed, string(FieldPrice))
	}

	s.products[i] = p
	if err := s.persist("product.edit"); err != nil {
		s.products[i] = before
		return domain.Product{}, err
	}
	s.Log.Audit("product.edit", map[string]any{"code": code, "fields": changed})
	return p, nil
}
