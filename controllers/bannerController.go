package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
	"github.com/gin-gonic/gin"
)

var bannerOrder = []store.SortField{{Field: "order"}, {Field: "createdAt", Desc: true}}

// GetBanners returns the active banners, lowest order first.
func (c *Controller) GetBanners(ctx *gin.Context) {
	banners, err := c.Stores.Banners.Find(ctx, store.FindOptions{
		Filter: store.Eq{Field: "isActive", Value: true},
		Sort:   bannerOrder,
	})
	if err != nil {
		middlewares.Logger(ctx).Error("failed to list banners", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error fetching banners")
		return
	}
	if banners == nil {
		banners = []models.Banner{}
	}
	sendJSONResponse(ctx, http.StatusOK, banners)
}

func (c *Controller) CreateBanner(ctx *gin.Context) {
	banner := models.Banner{Location: "featured", IsActive: true}
	if err := ctx.ShouldBindJSON(&banner); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	banner.Model = models.Model{}

	if err := models.Validate(&banner); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.Stores.Banners.Insert(ctx, &banner); err != nil {
		middlewares.Logger(ctx).Error("failed to create banner", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error creating banner")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, banner)
}

func (c *Controller) UpdateBanner(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil || !json.Valid(body) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	banner, err := c.Stores.Banners.FindByID(ctx, ctx.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		sendErrorResponse(ctx, http.StatusNotFound, "Banner not found")
		return
	}
	if err != nil {
		middlewares.Logger(ctx).Error("failed to load banner", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	original := banner.Model
	if err := json.Unmarshal(body, banner); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	banner.Model = original
	if err := models.Validate(banner); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.Stores.Banners.Update(ctx, banner); err != nil {
		middlewares.Logger(ctx).Error("failed to update banner", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error updating banner")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, banner)
}

func (c *Controller) DeleteBanner(ctx *gin.Context) {
	err := c.Stores.Banners.Delete(ctx, ctx.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		sendErrorResponse(ctx, http.StatusNotFound, "Banner not found")
		return
	}
	if err != nil {
		middlewares.Logger(ctx).Error("failed to delete banner", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error deleting banner")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}
