package controllers

import (
	"net/http"

	"github.com/Kariqs/novastore-api/catalog"
	"github.com/gin-gonic/gin"
)

// GetCategories returns the two-level navigation menu.
func (c *Controller) GetCategories(ctx *gin.Context) {
	menu, err := c.Catalog.Categories.ListTopLevelWithChildren(ctx)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, menu)
}

// GetAllCategories is the flat admin listing with parents resolved.
func (c *Controller) GetAllCategories(ctx *gin.Context) {
	entries, err := c.Catalog.Categories.ListAll(ctx)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, entries)
}

func (c *Controller) GetCategory(ctx *gin.Context) {
	category, err := c.Catalog.Categories.GetWithChildren(ctx, ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, category)
}

func (c *Controller) CreateCategory(ctx *gin.Context) {
	var input catalog.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	category, err := c.Catalog.Categories.Create(ctx, input)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, category)
}

func (c *Controller) UpdateCategory(ctx *gin.Context) {
	var input catalog.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	category, err := c.Catalog.Categories.Update(ctx, ctx.Param("id"), input)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, category)
}

func (c *Controller) DeleteCategory(ctx *gin.Context) {
	if err := c.Catalog.Categories.Delete(ctx, ctx.Param("id")); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted"})
}
