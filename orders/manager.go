// Package orders owns order creation and the order status lifecycle.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/metrics"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/payments"
	"github.com/Kariqs/novastore-api/store"
)

const PaymentMethodPesapal = "pesapal"

// PaymentGateway submits orders for online payment and reports their status.
type PaymentGateway interface {
	Enabled() bool
	SubmitOrder(ctx context.Context, order *models.Order) (*payments.Checkout, error)
	TransactionStatus(ctx context.Context, trackingID string) (string, error)
}

// Viewer identifies the caller of a read. A zero Viewer is anonymous.
type Viewer struct {
	UserID string
	Role   string
}

func (v Viewer) IsAdmin() bool {
	return v.Role == models.RoleAdmin
}

type Manager struct {
	orders  store.Collection[models.Order]
	gateway PaymentGateway
	now     func() time.Time
}

func NewManager(orders store.Collection[models.Order], gateway PaymentGateway) *Manager {
	return &Manager{orders: orders, gateway: gateway, now: time.Now}
}

// ItemInput accepts the product reference as productId, a bare product id
// or a product object carrying an id.
type ItemInput struct {
	ProductID string          `json:"productId"`
	Product   json.RawMessage `json:"product"`
	Name      string          `json:"name"`
	Quantity  *int            `json:"quantity"`
	Price     *float64        `json:"price"`
}

func (i ItemInput) productRef() string {
	if id := strings.TrimSpace(i.ProductID); id != "" {
		return id
	}
	if len(i.Product) == 0 {
		return ""
	}

	var id string
	if err := json.Unmarshal(i.Product, &id); err == nil {
		return strings.TrimSpace(id)
	}
	var obj struct {
		ID    string `json:"id"`
		MgoID string `json:"_id"`
	}
	if err := json.Unmarshal(i.Product, &obj); err == nil {
		if obj.ID != "" {
			return obj.ID
		}
		return obj.MgoID
	}
	return ""
}

// CreateInput is the checkout payload. Items and TotalAmount win over the
// older Products and Total fields when both are sent.
type CreateInput struct {
	Items         []ItemInput          `json:"items"`
	Products      []ItemInput          `json:"products"`
	TotalAmount   *float64             `json:"totalAmount"`
	Total         *float64             `json:"total"`
	PaymentMethod string               `json:"paymentMethod"`
	CustomerInfo  *models.CustomerInfo `json:"customerInfo"`
}

// Create validates the checkout payload and stores a pending order. An empty
// userID places a guest order.
func (m *Manager) Create(ctx context.Context, in CreateInput, userID string) (*models.Order, error) {
	const op = "order.Create"

	items := in.Items
	if len(items) == 0 {
		items = in.Products
	}
	if len(items) == 0 {
		return nil, apperrors.Validation(op, "empty order")
	}

	total := in.TotalAmount
	if total == nil {
		total = in.Total
	}
	if total == nil || *total <= 0 || math.IsNaN(*total) || math.IsInf(*total, 0) {
		return nil, apperrors.Validation(op, "invalid total")
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		productID := item.productRef()
		if productID == "" {
			return nil, apperrors.Validation(op, "invalid product reference")
		}
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		if quantity <= 0 {
			return nil, apperrors.Validation(op, "invalid quantity")
		}
		var price float64
		if item.Price != nil {
			price = *item.Price
		}
		if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, apperrors.Validation(op, "invalid price")
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: productID,
			Name:      item.Name,
			Quantity:  quantity,
			Price:     price,
		})
	}

	paymentMethod := strings.TrimSpace(in.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}

	var customer models.CustomerInfo
	if in.CustomerInfo != nil {
		customer = normalizeCustomer(*in.CustomerInfo)
	}

	actor := "guest"
	order := &models.Order{
		Items:         orderItems,
		TotalAmount:   *total,
		PaymentMethod: paymentMethod,
		Status:        models.StatusPending,
		CustomerInfo:  customer,
	}
	if userID != "" {
		order.UserID = &userID
		actor = userID
	}
	order.Tracking = append(order.Tracking, models.TrackingEntry{
		Status:    models.StatusPending,
		Message:   transitionMessages[models.StatusPending],
		By:        actor,
		CreatedAt: m.now().UTC(),
	})

	if err := m.orders.Insert(ctx, order); err != nil {
		return nil, apperrors.Persistence(op, err)
	}

	metrics.OrdersCreated.WithLabelValues(paymentMethod).Inc()
	slog.InfoContext(ctx, "order created", "order_id", order.ID, "items", len(orderItems), "guest", order.IsGuest())
	return order, nil
}

func normalizeCustomer(c models.CustomerInfo) models.CustomerInfo {
	return models.CustomerInfo{
		FirstName:  strings.TrimSpace(c.FirstName),
		LastName:   strings.TrimSpace(c.LastName),
		Email:      strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:      strings.TrimSpace(c.Phone),
		Address:    strings.TrimSpace(c.Address),
		City:       strings.TrimSpace(c.City),
		PostalCode: strings.TrimSpace(c.PostalCode),
		Country:    strings.TrimSpace(c.Country),
	}
}

func (m *Manager) load(ctx context.Context, op, id string) (*models.Order, error) {
	order, err := m.orders.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound(op, "Order")
	}
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	return order, nil
}

func (m *Manager) save(ctx context.Context, op string, order *models.Order) error {
	err := m.orders.Update(ctx, order)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound(op, "Order")
	}
	if err != nil {
		return apperrors.Persistence(op, err)
	}
	return nil
}

// Get returns an order the viewer may see. Guest orders are readable by id;
// an owned order is readable by its owner and by admins.
func (m *Manager) Get(ctx context.Context, id string, viewer Viewer) (*models.Order, error) {
	const op = "order.Get"

	order, err := m.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if order.IsGuest() || viewer.IsAdmin() {
		return order, nil
	}
	if viewer.UserID == "" {
		return nil, apperrors.Unauthorized(op, "Authentication required")
	}
	if *order.UserID != viewer.UserID {
		return nil, apperrors.Forbidden(op, "You are not allowed to view this order")
	}
	return order, nil
}

type StatusUpdate struct {
	Status   string `json:"status" binding:"required"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

// UpdateStatus moves the order along the lifecycle and records the move in
// its tracking log. Concurrent updates to one order are last-write-wins.
func (m *Manager) UpdateStatus(ctx context.Context, id string, update StatusUpdate, actor string) (*models.Order, error) {
	const op = "order.UpdateStatus"

	to, err := ParseStatus(update.Status)
	if err != nil {
		return nil, err
	}
	order, err := m.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if err := m.transition(order, to, update.Message, update.Location, actor); err != nil {
		return nil, err
	}
	if err := m.save(ctx, op, order); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(string(to)).Inc()
	return order, nil
}

func (m *Manager) transition(order *models.Order, to models.OrderStatus, message, location, actor string) error {
	if err := checkTransition(order.Status, to); err != nil {
		return err
	}
	if message == "" {
		message = transitionMessages[to]
	}
	order.Status = to
	order.Tracking = append(order.Tracking, models.TrackingEntry{
		Status:    to,
		Message:   message,
		Location:  location,
		By:        actor,
		CreatedAt: m.now().UTC(),
	})
	return nil
}

// PatchInput is an administrative edit. A status here goes through the same
// transition check as UpdateStatus.
type PatchInput struct {
	Status        *string              `json:"status"`
	PaymentMethod *string              `json:"paymentMethod"`
	PaymentStatus *string              `json:"paymentStatus"`
	CustomerInfo  *models.CustomerInfo `json:"customerInfo"`
}

func (m *Manager) Patch(ctx context.Context, id string, in PatchInput, actor string) (*models.Order, error) {
	const op = "order.Patch"

	order, err := m.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	var moved models.OrderStatus
	if in.Status != nil {
		to, err := ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if to != order.Status {
			if err := m.transition(order, to, "", "", actor); err != nil {
				return nil, err
			}
			moved = to
		}
	}
	if in.PaymentMethod != nil {
		method := strings.TrimSpace(*in.PaymentMethod)
		if method == "" {
			return nil, apperrors.Validation(op, "paymentMethod must not be empty")
		}
		order.PaymentMethod = method
	}
	if in.PaymentStatus != nil {
		order.PaymentStatus = strings.TrimSpace(*in.PaymentStatus)
	}
	if in.CustomerInfo != nil {
		order.CustomerInfo = normalizeCustomer(*in.CustomerInfo)
	}

	if err := m.save(ctx, op, order); err != nil {
		return nil, err
	}
	if moved != "" {
		metrics.OrderTransitions.WithLabelValues(string(moved)).Inc()
	}
	return order, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	err := m.orders.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("order.Delete", "Order")
	}
	if err != nil {
		return apperrors.Persistence("order.Delete", err)
	}
	slog.InfoContext(ctx, "order deleted", "order_id", id)
	return nil
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type ListResult struct {
	Orders     []models.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

var newestFirst = []store.SortField{{Field: "createdAt", Desc: true}}

// ListAll returns every order newest first. A limit of 0 returns all of them.
func (m *Manager) ListAll(ctx context.Context, status string, page, limit int) (*ListResult, error) {
	const op = "order.ListAll"

	filter := store.All()
	if status != "" {
		s, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = store.Eq{Field: "status", Value: string(s)}
	}
	if limit < 0 {
		return nil, apperrors.Validation(op, "limit must not be negative")
	}
	page = max(page, 1)

	opts := store.FindOptions{Filter: filter, Sort: newestFirst}
	if limit > 0 {
		opts.Skip = int64(page-1) * int64(limit)
		opts.Limit = int64(limit)
	}

	list, err := m.orders.Find(ctx, opts)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	total, err := m.orders.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}

	pages := 0
	switch {
	case total == 0:
	case limit == 0:
		pages = 1
	default:
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return &ListResult{
		Orders:     list,
		Pagination: Pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	}, nil
}

func (m *Manager) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("order.ListForUser", "Authentication required")
	}
	list, err := m.orders.Find(ctx, store.FindOptions{
		Filter: store.Eq{Field: "userId", Value: userID},
		Sort:   newestFirst,
	})
	if err != nil {
		return nil, apperrors.Persistence("order.ListForUser", err)
	}
	return list, nil
}

// Revenue sums the totals of every order. Cancelled orders are included to
// match the dashboard figure.
func (m *Manager) Revenue(ctx context.Context) (decimal.Decimal, int64, error) {
	list, err := m.orders.Find(ctx, store.FindOptions{Fields: []string{"totalAmount"}})
	if err != nil {
		return decimal.Zero, 0, apperrors.Persistence("order.Revenue", err)
	}

	total := decimal.Zero
	for _, o := range list {
		total = total.Add(decimal.NewFromFloat(o.TotalAmount))
	}
	return total, int64(len(list)), nil
}

// StartPayment submits the order to the payment gateway and stores the
// tracking id it hands back.
func (m *Manager) StartPayment(ctx context.Context, order *models.Order) (*payments.Checkout, error) {
	const op = "order.StartPayment"

	if m.gateway == nil || !m.gateway.Enabled() {
		return nil, apperrors.Unavailable(op, "Online payment is not configured")
	}

	checkout, err := m.gateway.SubmitOrder(ctx, order)
	if err != nil {
		return nil, &apperrors.Error{Kind: apperrors.KindUnavailable, Op: op, Message: "Failed to initiate payment", Err: err}
	}

	order.PaymentTrackingID = checkout.OrderTrackingID
	order.PaymentStatus = "PENDING"
	if err := m.save(ctx, op, order); err != nil {
		slog.ErrorContext(ctx, "order created but tracking id not saved",
			"order_id", order.ID, "tracking_id", checkout.OrderTrackingID, "error", err)
	}
	return checkout, nil
}

// RecordPaymentNotification asks the gateway for the current status of a
// tracked payment and stores it on the matching order.
func (m *Manager) RecordPaymentNotification(ctx context.Context, trackingID string) (*models.Order, error) {
	const op = "order.RecordPaymentNotification"

	if trackingID == "" {
		return nil, apperrors.Validation(op, "Missing parameters")
	}
	if m.gateway == nil || !m.gateway.Enabled() {
		return nil, apperrors.Unavailable(op, "Online payment is not configured")
	}

	status, err := m.gateway.TransactionStatus(ctx, trackingID)
	if err != nil {
		return nil, &apperrors.Error{Kind: apperrors.KindUnavailable, Op: op, Message: "Failed to check payment status", Err: err}
	}

	order, err := m.orders.FindOne(ctx, store.Eq{Field: "paymentTrackingId", Value: trackingID})
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound(op, "Order")
	}
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}

	order.PaymentStatus = status
	if err := m.save(ctx, op, order); err != nil {
		return nil, err
	}
	return order, nil
}
