package controllers

import (
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

// GetHomeSettings creates the default settings on first read.
func (c *Controller) GetHomeSettings(ctx *gin.Context) {
	settings, err := c.Stores.HomeSettings.FindByID(ctx, models.HomeSettingsID)
	if errors.Is(err, store.ErrNotFound) {
		defaults := models.DefaultHomeSettings()
		settings = &defaults
		err = c.Stores.HomeSettings.Insert(ctx, settings)
	}
	if err != nil {
		middlewares.Logger(ctx).Error("failed to load home settings", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch home settings")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, settings)
}

func (c *Controller) UpdateHomeSettings(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil || !json.Valid(body) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	exists := true
	settings, err := c.Stores.HomeSettings.FindByID(ctx, models.HomeSettingsID)
	if errors.Is(err, store.ErrNotFound) {
		defaults := models.DefaultHomeSettings()
		settings, exists, err = &defaults, false, nil
	}
	if err != nil {
		middlewares.Logger(ctx).Error("failed to load home settings", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update home settings")
		return
	}

	original := settings.Model
	if err := json.Unmarshal(body, settings); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	settings.Model = original
	settings.ID = models.HomeSettingsID
	settings.LastUpdatedBy = actor(ctx)
	settings.LastUpdatedAt = time.Now().UTC()

	if err := models.Validate(settings); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if exists {
		err = c.Stores.HomeSettings.Update(ctx, settings)
	} else {
		err = c.Stores.HomeSettings.Insert(ctx, settings)
	}
	if err != nil {
		middlewares.Logger(ctx).Error("failed to save home settings", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update home settings")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, settings)
}
