package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
	"github.com/gin-gonic/gin"
)

const (
	brandingCacheKey = "branding"
	brandingCacheTTL = 10 * time.Minute
)

// loadBranding returns the stored branding, the defaults when none has been
// saved yet, and whether a document exists.
func (c *Controller) loadBranding(ctx context.Context) (*models.Branding, bool, error) {
	branding, err := c.Stores.Branding.FindByID(ctx, models.BrandingID)
	if errors.Is(err, store.ErrNotFound) {
		defaults := models.DefaultBranding()
		return &defaults, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return branding, true, nil
}

// GetBranding never fails: store errors fall back to the defaults.
func (c *Controller) GetBranding(ctx *gin.Context) {
	var branding models.Branding
	if c.Cache.Get(ctx, brandingCacheKey, &branding) {
		sendJSONResponse(ctx, http.StatusOK, branding)
		return
	}

	stored, _, err := c.loadBranding(ctx)
	if err != nil {
		middlewares.Logger(ctx).Warn("failed to load branding, serving defaults", "error", err)
		sendJSONResponse(ctx, http.StatusOK, models.DefaultBranding())
		return
	}

	if err := c.Cache.Set(ctx, brandingCacheKey, stored, brandingCacheTTL); err != nil {
		middlewares.Logger(ctx).Warn("failed to cache branding", "error", err)
	}
	sendJSONResponse(ctx, http.StatusOK, stored)
}

// UpdateBranding merges the request body into the current branding.
func (c *Controller) UpdateBranding(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil || !json.Valid(body) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	branding, exists, err := c.loadBranding(ctx)
	if err != nil {
		middlewares.Logger(ctx).Error("failed to load branding", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update branding")
		return
	}

	original := branding.Model
	if err := json.Unmarshal(body, branding); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	branding.Model = original
	branding.ID = models.BrandingID

	if exists {
		err = c.Stores.Branding.Update(ctx, branding)
	} else {
		err = c.Stores.Branding.Insert(ctx, branding)
	}
	if err != nil {
		middlewares.Logger(ctx).Error("failed to save branding", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update branding")
		return
	}

	if err := c.Cache.Forget(ctx, brandingCacheKey); err != nil {
		middlewares.Logger(ctx).Warn("failed to drop cached branding", "error", err)
	}
	sendJSONResponse(ctx, http.StatusOK, branding)
}
