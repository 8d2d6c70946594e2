package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Kariqs/novastore-api/catalog"
	"github.com/Kariqs/novastore-api/models"
	"github.com/gin-gonic/gin"
)

// GetProducts serves the storefront listing. Admins may pass limit=0 to
// fetch every match.
func (c *Controller) GetProducts(ctx *gin.Context) {
	var filter catalog.Filter
	var err error

	filter.CategorySlug = ctx.Query("category")
	filter.Brand = strings.TrimSpace(ctx.Query("brand"))
	if filter.MinPrice, err = queryFloat(ctx, "minPrice"); err != nil {
		respondWithError(ctx, err)
		return
	}
	if filter.MaxPrice, err = queryFloat(ctx, "maxPrice"); err != nil {
		respondWithError(ctx, err)
		return
	}
	if filter.DiscountMin, err = queryFloat(ctx, "discountMin"); err != nil {
		respondWithError(ctx, err)
		return
	}
	if ctx.Query("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}

	page, err := queryInt(ctx, "page", 1)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit", catalog.DefaultLimit)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	if limit == 0 && !isAdmin(ctx) {
		limit = catalog.DefaultLimit
	}
	sort, err := catalog.ParseSort(ctx.Query("sort"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	result, err := c.Catalog.ListProducts(ctx, catalog.ListRequest{
		Filter: filter,
		Page:   page,
		Limit:  limit,
		Sort:   sort,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"products":   result.Items,
		"pagination": result.Pagination,
	})
}

// GetProductsByCategorySlug serves the legacy category page.
func (c *Controller) GetProductsByCategorySlug(ctx *gin.Context) {
	products, err := c.Catalog.ProductsByLegacySlug(ctx, ctx.Query("slug"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, products)
}

func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.Catalog.GetProduct(ctx, ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *Controller) CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	created, err := c.Catalog.CreateProduct(ctx, &product)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, created)
}

// UpdateProduct merges the request body into the stored product. PUT and
// PATCH behave the same.
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil || len(body) == 0 || !json.Valid(body) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := c.Catalog.UpdateProduct(ctx, ctx.Param("id"), func(p *models.Product) error {
		return json.Unmarshal(body, p)
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *Controller) DeleteProduct(ctx *gin.Context) {
	if err := c.Catalog.DeleteProduct(ctx, ctx.Param("id")); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted"})
}
