// Package catalog resolves category slugs, compiles product filters and runs
// paginated product listings. It also owns category and product writes.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/cache"
	"github.com/Kariqs/novastore-api/metrics"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
)

type Service struct {
	Categories *CategoryTree
	Compiler   *FilterCompiler
	Executor   *QueryExecutor
	products   store.Collection[models.Product]
}

func NewService(stores *store.Stores, c *cache.Cache, cacheTTL time.Duration) *Service {
	tree := NewCategoryTree(stores.Categories, c, cacheTTL)
	return &Service{
		Categories: tree,
		Compiler:   NewFilterCompiler(tree),
		Executor:   NewQueryExecutor(stores.Products),
		products:   stores.Products,
	}
}

type ListRequest struct {
	Filter Filter
	Page   int
	Limit  int
	Sort   Sort
}

// ListProducts compiles the filter and returns one page of listing fields.
func (s *Service) ListProducts(ctx context.Context, req ListRequest) (*Result, error) {
	predicate, err := s.Compiler.Compile(ctx, req.Filter)
	if err != nil {
		metrics.CatalogQueries.WithLabelValues("error").Inc()
		return nil, err
	}

	result, err := s.Executor.Execute(ctx, Query{
		Filter: predicate,
		Page:   req.Page,
		Limit:  req.Limit,
		Sort:   req.Sort,
		Fields: ListingFields,
	})
	if err != nil {
		metrics.CatalogQueries.WithLabelValues("error").Inc()
		return nil, err
	}

	outcome := "ok"
	if result.Pagination.Total == 0 {
		outcome = "empty"
	}
	metrics.CatalogQueries.WithLabelValues(outcome).Inc()
	return result, nil
}

// ProductsByLegacySlug serves the old category page, which matched
// products on guessed spellings of the slug.
func (s *Service) ProductsByLegacySlug(ctx context.Context, slug string) ([]models.Product, error) {
	if slug == "" {
		return nil, apperrors.Validation("catalog.ProductsByLegacySlug", "Slug is required")
	}
	products, err := s.products.Find(ctx, store.FindOptions{
		Filter: LegacySlugPredicate(slug),
		Sort:   SortNewest.fields(),
	})
	if err != nil {
		return nil, apperrors.Persistence("catalog.ProductsByLegacySlug", err)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("catalog.GetProduct", "Product")
	}
	if err != nil {
		return nil, apperrors.Persistence("catalog.GetProduct", err)
	}
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	const op = "catalog.CreateProduct"

	product.Model = models.Model{}
	product.DeriveCategoryFields()
	if err := models.Validate(product); err != nil {
		return nil, apperrors.Validation(op, err.Error())
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	return product, nil
}

// UpdateProduct loads the product, lets apply merge the changes into it and
// saves the result. The id and creation time cannot be changed.
func (s *Service) UpdateProduct(ctx context.Context, id string, apply func(*models.Product) error) (*models.Product, error) {
	const op = "catalog.UpdateProduct"

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	original := product.Model

	if err := apply(product); err != nil {
		return nil, apperrors.Validation(op, "Invalid request body")
	}
	product.Model = original
	product.DeriveCategoryFields()
	if err := models.Validate(product); err != nil {
		return nil, apperrors.Validation(op, err.Error())
	}

	err = s.products.Update(ctx, product)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound(op, "Product")
	}
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("catalog.DeleteProduct", "Product")
	}
	if err != nil {
		return apperrors.Persistence("catalog.DeleteProduct", err)
	}
	return nil
}

func (s *Service) CountProducts(ctx context.Context) (int64, error) {
	n, err := s.products.Count(ctx, store.All())
	if err != nil {
		return 0, apperrors.Persistence("catalog.CountProducts", err)
	}
	return n, nil
}
