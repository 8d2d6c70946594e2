package controllers

import (
	"net/http"

	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/orders"
	"github.com/gin-gonic/gin"
)

// CreateOrder places an order for the signed-in user or a guest. Orders paid
// through Pesapal come back with the gateway checkout next to the order.
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var input orders.CreateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := c.Orders.Create(ctx, input, viewer(ctx).UserID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	if order.PaymentMethod != orders.PaymentMethodPesapal {
		sendJSONResponse(ctx, http.StatusCreated, order)
		return
	}

	checkout, err := c.Orders.StartPayment(ctx, order)
	if err != nil {
		middlewares.Logger(ctx).Error("payment initiation failed", "order_id", order.ID, "error", err)
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"order":           order,
		"redirectUrl":     checkout.RedirectURL,
		"orderTrackingId": checkout.OrderTrackingID,
	})
}

// GetOrders is the admin order listing. limit=0 (the default) returns every
// order on one page.
func (c *Controller) GetOrders(ctx *gin.Context) {
	page, err := queryInt(ctx, "page", 1)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit", 0)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	result, err := c.Orders.ListAll(ctx, ctx.Query("status"), page, limit)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, result)
}

func (c *Controller) GetMyOrders(ctx *gin.Context) {
	list, err := c.Orders.ListForUser(ctx, viewer(ctx).UserID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	sendJSONResponse(ctx, http.StatusOK, list)
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	order, err := c.Orders.Get(ctx, ctx.Param("id"), viewer(ctx))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	var update orders.StatusUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Status is required")
		return
	}

	order, err := c.Orders.UpdateStatus(ctx, ctx.Param("id"), update, actor(ctx))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *Controller) PatchOrder(ctx *gin.Context) {
	var input orders.PatchInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := c.Orders.Patch(ctx, ctx.Param("id"), input, actor(ctx))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *Controller) DeleteOrder(ctx *gin.Context) {
	if err := c.Orders.Delete(ctx, ctx.Param("id")); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted"})
}

// HandlePesapalIPN receives Pesapal payment notifications, as a JSON POST or
// as query parameters on a GET.
func (c *Controller) HandlePesapalIPN(ctx *gin.Context) {
	var trackingID, merchantRef string

	if ctx.Request.Method == http.MethodPost {
		var payload struct {
			OrderTrackingID        string `json:"OrderTrackingId"`
			OrderMerchantReference string `json:"OrderMerchantReference"`
		}
		if err := ctx.ShouldBindJSON(&payload); err != nil {
			sendJSONResponse(ctx, http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		trackingID = payload.OrderTrackingID
		merchantRef = payload.OrderMerchantReference
	} else {
		trackingID = ctx.Query("OrderTrackingId")
		if trackingID == "" {
			trackingID = ctx.Query("orderTrackingId")
		}
		merchantRef = ctx.Query("OrderMerchantReference")
		if merchantRef == "" {
			merchantRef = ctx.Query("orderMerchantReference")
		}
	}

	if trackingID == "" || merchantRef == "" {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{"error": "Missing parameters"})
		return
	}

	order, err := c.Orders.RecordPaymentNotification(ctx, trackingID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	middlewares.Logger(ctx).Info("payment status updated",
		"order_id", order.ID, "tracking_id", trackingID, "payment_status", order.PaymentStatus)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orderNotificationType":  "IPNCHANGE",
		"orderTrackingId":        trackingID,
		"orderMerchantReference": merchantRef,
		"status":                 200,
	})
}
