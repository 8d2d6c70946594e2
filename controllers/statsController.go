package controllers

import (
	"net/http"

	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// GetStats returns the dashboard counters. Revenue is a two-decimal string.
func (c *Controller) GetStats(ctx *gin.Context) {
	var (
		totalProducts, totalOrders, totalUsers int64
		revenue                                decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalProducts, err = c.Catalog.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		revenue, totalOrders, err = c.Orders.Revenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalUsers, err = c.Stores.Users.Count(gctx, store.All())
		return err
	})
	if err := g.Wait(); err != nil {
		middlewares.Logger(ctx).Error("failed to compute stats", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"totalProducts": totalProducts,
		"totalOrders":   totalOrders,
		"totalUsers":    totalUsers,
		"totalRevenue":  revenue.StringFixed(2),
	})
}
