package catalog

import (
	"context"
	"math"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
)

const DefaultLimit = 50

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortRating    Sort = "rating"
)

// ParseSort maps a query value to a Sort. Empty means newest first.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "", SortNewest:
		return SortNewest, nil
	case SortPriceAsc, SortPriceDesc, SortRating:
		return Sort(s), nil
	}
	return "", apperrors.Validation("catalog.ParseSort", "sort must be one of: newest, price_asc, price_desc, rating")
}

func (s Sort) fields() []store.SortField {
	newest := store.SortField{Field: "createdAt", Desc: true}
	switch s {
	case SortPriceAsc:
		return []store.SortField{{Field: "price"}, newest}
	case SortPriceDesc:
		return []store.SortField{{Field: "price", Desc: true}, newest}
	case SortRating:
		return []store.SortField{{Field: "rating", Desc: true}, newest}
	}
	return []store.SortField{newest}
}

// ListingFields is the projection used by catalog listings.
var ListingFields = []string{
	"name", "price", "discount", "imageUrl", "images", "categoryParent", "categoryChild",
	"rating", "featured", "brand", "stock", "createdAt",
}

type Query struct {
	Filter store.Predicate
	Page   int
	// Limit 0 returns every match on a single page.
	Limit  int
	Sort   Sort
	Fields []string
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type Result struct {
	Items      []models.Product `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// QueryExecutor runs a compiled predicate with sort and pagination. The page
// fetch and the count are separate queries and may disagree under
// concurrent writes.
type QueryExecutor struct {
	products store.Collection[models.Product]
}

func NewQueryExecutor(products store.Collection[models.Product]) *QueryExecutor {
	return &QueryExecutor{products: products}
}

func (e *QueryExecutor) Execute(ctx context.Context, q Query) (*Result, error) {
	const op = "catalog.Execute"

	if q.Limit < 0 {
		return nil, apperrors.Validation(op, "limit must not be negative")
	}
	page := max(q.Page, 1)

	opts := store.FindOptions{
		Filter: q.Filter,
		Sort:   q.Sort.fields(),
		Fields: q.Fields,
	}
	if q.Limit > 0 {
		opts.Skip = int64(page-1) * int64(q.Limit)
		opts.Limit = int64(q.Limit)
	}

	items, err := e.products.Find(ctx, opts)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	total, err := e.products.Count(ctx, q.Filter)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}

	return &Result{
		Items: items,
		Pagination: Pagination{
			Page:  page,
			Limit: q.Limit,
			Total: total,
			Pages: pageCount(total, q.Limit),
		},
	}, nil
}

func pageCount(total int64, limit int) int {
	switch {
	case total == 0:
		return 0
	case limit <= 0:
		return 1
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
