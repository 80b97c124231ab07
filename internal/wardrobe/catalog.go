package wardrobe

import (
	"context"
	"strings"
)

const (
	DefaultCatalogLimit = 50
	MaxCatalogLimit     = 100
)

// Product is an entry of the shared catalog.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CatalogQuery filters and pages the catalog. Filter matches a category.
type CatalogQuery struct {
	Query  string
	Filter string
	Limit  int
	Offset int
}

// Normalize applies defaults so that equivalent queries compare equal.
func (q CatalogQuery) Normalize() CatalogQuery {
	q.Query = strings.ToLower(strings.TrimSpace(q.Query))
	q.Filter = strings.ToLower(strings.TrimSpace(q.Filter))

	switch {
	case q.Limit <= 0:
		q.Limit = DefaultCatalogLimit
	case q.Limit > MaxCatalogLimit:
		q.Limit = MaxCatalogLimit
	}

	if q.Offset < 0 {
		q.Offset = 0
	}

	return q
}

// Matches reports whether p satisfies the text query and category filter.
// q must be normalized.
func (q CatalogQuery) Matches(p Product) bool {
	if q.Filter != "" && !strings.EqualFold(p.Category, q.Filter) {
		return false
	}

	if q.Query == "" {
		return true
	}

	for _, field := range []string{p.Name, p.Brand, p.Color} {
		if strings.Contains(strings.ToLower(field), q.Query) {
			return true
		}
	}

	return false
}

// CatalogPage is one page of search results.
type CatalogPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

type CatalogRepository interface {
	Search(ctx context.Context, q CatalogQuery) (*CatalogPage, error)
}
