package controllers

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
	"github.com/gin-gonic/gin"
)

// findWishlist returns the user's wishlist, or an unsaved empty one.
func (c *Controller) findWishlist(ctx context.Context, userID string) (*models.Wishlist, bool, error) {
	wishlist, err := c.Stores.Wishlists.FindOne(ctx, store.Eq{Field: "userId", Value: userID})
	if errors.Is(err, store.ErrNotFound) {
		return &models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if wishlist.Items == nil {
		wishlist.Items = []models.WishlistItem{}
	}
	return wishlist, true, nil
}

func (c *Controller) GetWishlist(ctx *gin.Context) {
	wishlist, _, err := c.findWishlist(ctx, viewer(ctx).UserID)
	if err != nil {
		middlewares.Logger(ctx).Error("failed to load wishlist", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error fetching wishlist")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, wishlist)
}

// AddToWishlist is idempotent per product id.
func (c *Controller) AddToWishlist(ctx *gin.Context) {
	var item models.WishlistItem
	if err := ctx.ShouldBindJSON(&item); err != nil || strings.TrimSpace(item.ProductID) == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Product ID required")
		return
	}
	item.ProductID = strings.TrimSpace(item.ProductID)

	wishlist, exists, err := c.findWishlist(ctx, viewer(ctx).UserID)
	if err != nil {
		middlewares.Logger(ctx).Error("failed to load wishlist", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error adding to wishlist")
		return
	}

	found := slices.ContainsFunc(wishlist.Items, func(i models.WishlistItem) bool {
		return i.ProductID == item.ProductID
	})
	if found {
		sendJSONResponse(ctx, http.StatusOK, wishlist)
		return
	}
	item.AddedAt = time.Now().UTC()
	wishlist.Items = append(wishlist.Items, item)

	if exists {
		err = c.Stores.Wishlists.Update(ctx, wishlist)
	} else {
		err = c.Stores.Wishlists.Insert(ctx, wishlist)
	}
	if err != nil {
		middlewares.Logger(ctx).Error("failed to save wishlist", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error adding to wishlist")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, wishlist)
}

func (c *Controller) RemoveFromWishlist(ctx *gin.Context) {
	productID := ctx.Param("productId")

	wishlist, exists, err := c.findWishlist(ctx, viewer(ctx).UserID)
	if err != nil {
		middlewares.Logger(ctx).Error("failed to load wishlist", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error removing from wishlist")
		return
	}
	if !exists {
		sendJSONResponse(ctx, http.StatusOK, wishlist)
		return
	}

	kept := slices.DeleteFunc(slices.Clone(wishlist.Items), func(i models.WishlistItem) bool {
		return i.ProductID == productID
	})
	if len(kept) == len(wishlist.Items) {
		sendJSONResponse(ctx, http.StatusOK, wishlist)
		return
	}
	wishlist.Items = kept

	if err := c.Stores.Wishlists.Update(ctx, wishlist); err != nil {
		middlewares.Logger(ctx).Error("failed to save wishlist", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error removing from wishlist")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, wishlist)
}
