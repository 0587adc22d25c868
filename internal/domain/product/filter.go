// internal/domain/product/filter.go
package product

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// SortKey orders catalog query results
type SortKey string

const (
	SortNatural    SortKey = ""
	SortPriceAsc   SortKey = "priceAsc"
	SortPriceDesc  SortKey = "priceDesc"
	SortPopularity SortKey = "popularity"
	SortNewest     SortKey = "newest"
)

// ParseSortKey maps a client sort value onto a SortKey; unknown values keep natural order
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortPopularity:
		return SortKey(s)
	}
	return SortNatural
}

// Filter is a conjunctive catalog query. Zero-valued fields do not constrain.
type Filter struct {
	Category    string
	Gender      Gender
	Collection  string
	Collections []string
	Materials   []string
	Brands      []string
	Sizes       []string
	Color       string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Search      string
	Sort        SortKey
	Limit       int

	PublishedOnly bool
	ExcludeID     *uuid.UUID
}

// Matches evaluates the filter against a single product
func (f Filter) Matches(p *Product) bool {
	if f.PublishedOnly && !p.IsPublished {
		return false
	}
	if f.ExcludeID != nil && p.ID == *f.ExcludeID {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if f.Collection != "" && p.Collection != f.Collection {
		return false
	}
	if len(f.Collections) > 0 && !contains(f.Collections, p.Collection) {
		return false
	}
	if len(f.Materials) > 0 && !contains(f.Materials, p.Material) {
		return false
	}
	if len(f.Brands) > 0 && !contains(f.Brands, p.Brand) {
		return false
	}
	if len(f.Sizes) > 0 && !p.HasSize(f.Sizes...) {
		return false
	}
	if f.Color != "" && !p.HasColor(f.Color) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}

// Apply filters, sorts and caps products in place order
func (f Filter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	SortProducts(out, f.Sort)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// SortProducts orders products by key; natural order is left untouched
func SortProducts(products []Product, key SortKey) {
	var less func(a, b *Product) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b *Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceDesc:
		less = func(a, b *Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortPopularity:
		less = func(a, b *Product) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b *Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(&products[i], &products[j]) })
}

// ListQuery is the public query string of the catalog listing
type ListQuery struct {
	Collection string `form:"collection"`
	Size       string `form:"size"`
	Color      string `form:"color"`
	Gender     string `form:"gender"`
	MinPrice   string `form:"minPrice"`
	MaxPrice   string `form:"maxPrice"`
	SortBy     string `form:"sortBy"`
	Search     string `form:"search"`
	Category   string `form:"category"`
	Material   string `form:"material"`
	Brand      string `form:"brand"`
	Limit      int    `form:"limit"`
}

// Filter converts the query string into a catalog Filter
func (q ListQuery) Filter() (Filter, error) {
	f := Filter{
		Color:  strings.TrimSpace(q.Color),
		Search: strings.TrimSpace(q.Search),
		Sort:   ParseSortKey(q.SortBy),
		Limit:  q.Limit,
	}
	if q.Limit < 0 {
		return f, apperror.Validation("limit must not be negative")
	}

	if c := strings.TrimSpace(q.Category); c != "" && !strings.EqualFold(c, "all") {
		f.Category = c
	}
	if c := strings.TrimSpace(q.Collection); c != "" && !strings.EqualFold(c, "all") {
		f.Collection = c
	}
	if g := strings.TrimSpace(q.Gender); g != "" {
		f.Gender = Gender(g)
		if !f.Gender.Valid() {
			return f, apperror.Validation("gender must be one of: Men, Women, Unisex")
		}
	}

	f.Materials = splitList(q.Material)
	f.Brands = splitList(q.Brand)
	f.Sizes = splitList(q.Size)

	var err error
	if f.MinPrice, err = parsePrice("minPrice", q.MinPrice); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice("maxPrice", q.MaxPrice); err != nil {
		return f, err
	}
	return f, nil
}

func parsePrice(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.Validation("%s must be a number", name)
	}
	return &d, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
