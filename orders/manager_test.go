package orders

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/payments"
	"github.com/Kariqs/novastore-api/store"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestManager(gateway PaymentGateway) (*Manager, store.Collection[models.Order]) {
	orders := store.NewMemoryCollection[models.Order]()
	return NewManager(orders, gateway), orders
}

func validInput() CreateInput {
	return CreateInput{
		Items:       []ItemInput{{ProductID: "p1", Quantity: ptr(2), Price: ptr(50.0)}},
		TotalAmount: ptr(100.0),
	}
}

func TestCreateGuestOrder(t *testing.T) {
	m, orders := newTestManager(nil)

	order, err := m.Create(context.Background(), validInput(), "")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Len(t, order.Items, 1)
	assert.Nil(t, order.UserID)
	assert.True(t, order.IsGuest())
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	require.Len(t, order.Tracking, 1)
	assert.Equal(t, "guest", order.Tracking[0].By)

	stored, err := orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.UserID)
	assert.Equal(t, 100.0, stored.TotalAmount)
}

func TestCreateOrderForUser(t *testing.T) {
	m, _ := newTestManager(nil)

	order, err := m.Create(context.Background(), validInput(), "u1")
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, "u1", *order.UserID)
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateInput)
		message string
	}{
		{"empty items", func(in *CreateInput) { in.Items = nil }, "empty order"},
		{"empty slice", func(in *CreateInput) { in.Items = []ItemInput{} }, "empty order"},
		{"missing total", func(in *CreateInput) { in.TotalAmount = nil }, "invalid total"},
		{"zero total", func(in *CreateInput) { in.TotalAmount = ptr(0.0) }, "invalid total"},
		{"negative total", func(in *CreateInput) { in.TotalAmount = ptr(-10.0) }, "invalid total"},
		{"infinite total", func(in *CreateInput) { in.TotalAmount = ptr(math.Inf(1)) }, "invalid total"},
		{"missing product", func(in *CreateInput) { in.Items[0].ProductID = "" }, "invalid product reference"},
		{"zero quantity", func(in *CreateInput) { in.Items[0].Quantity = ptr(0) }, "invalid quantity"},
		{"negative price", func(in *CreateInput) { in.Items[0].Price = ptr(-1.0) }, "invalid price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, orders := newTestManager(nil)
			in := validInput()
			tt.mutate(&in)

			_, err := m.Create(context.Background(), in, "")
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation))
			assert.Equal(t, tt.message, apperrors.PublicMessage(err))

			n, err := orders.Count(context.Background(), store.All())
			require.NoError(t, err)
			assert.Zero(t, n, "no order may be persisted")
		})
	}
}

func TestCreateOrderLegacyPayload(t *testing.T) {
	m, _ := newTestManager(nil)

	var in CreateInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"products": [
			{"product": "p1", "price": 20},
			{"product": {"_id": "p2"}, "quantity": 3, "price": 10}
		],
		"total": 50,
		"paymentMethod": "card",
		"customerInfo": {"firstName": " Ada ", "email": "ADA@Example.com"}
	}`), &in))

	order, err := m.Create(context.Background(), in, "")
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, "p2", order.Items[1].ProductID)
	assert.Equal(t, 3, order.Items[1].Quantity)
	assert.Equal(t, 50.0, order.TotalAmount)
	assert.Equal(t, "card", order.PaymentMethod)
	assert.Equal(t, models.CustomerInfo{FirstName: "Ada", Email: "ada@example.com"}, order.CustomerInfo)
}

func TestCustomerInfoAlwaysHasEveryField(t *testing.T) {
	m, _ := newTestManager(nil)
	order, err := m.Create(context.Background(), validInput(), "")
	require.NoError(t, err)

	raw, err := json.Marshal(order.CustomerInfo)
	require.NoError(t, err)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.Len(t, fields, 8)
	for _, key := range []string{"firstName", "lastName", "email", "phone", "address", "city", "postalCode", "country"} {
		assert.Contains(t, fields, key)
		assert.Empty(t, fields[key])
	}
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	m, _ := newTestManager(nil)
	ctx := context.Background()
	order, err := m.Create(ctx, validInput(), "")
	require.NoError(t, err)

	for _, next := range []string{"processing", "shipped", "delivered"} {
		order, err = m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: next}, "admin-1")
		require.NoError(t, err, next)
	}

	assert.Equal(t, models.StatusDelivered, order.Status)
	require.Len(t, order.Tracking, 4)
	assert.Equal(t, models.StatusDelivered, order.Tracking[3].Status)
	assert.Equal(t, "admin-1", order.Tracking[3].By)
	assert.Equal(t, "Order delivered", order.Tracking[3].Message)

	_, err = m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: "pending"}, "admin-1")
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidTransition))
	assert.Equal(t, 409, apperrors.HTTPStatus(err))
}

func TestUpdateStatusRejections(t *testing.T) {
	m, _ := newTestManager(nil)
	ctx := context.Background()
	order, err := m.Create(ctx, validInput(), "")
	require.NoError(t, err)

	_, err = m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: "shipped"}, "a")
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidTransition), "skipping processing")

	_, err = m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: "pending"}, "a")
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidTransition), "same status")

	_, err = m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: "lost"}, "a")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = m.UpdateStatus(ctx, "missing", StatusUpdate{Status: "processing"}, "a")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	cancelled, err := m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: "Cancelled", Message: "customer request"}, "a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "customer request", cancelled.Tracking[1].Message)

	_, err = m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: "processing"}, "a")
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidTransition), "cancelled is terminal")
}

func TestTransitionTable(t *testing.T) {
	all := []models.OrderStatus{
		models.StatusPending, models.StatusProcessing, models.StatusShipped,
		models.StatusDelivered, models.StatusCancelled,
	}
	allowed := map[[2]models.OrderStatus]bool{
		{models.StatusPending, models.StatusProcessing}:   true,
		{models.StatusPending, models.StatusCancelled}:    true,
		{models.StatusProcessing, models.StatusShipped}:   true,
		{models.StatusProcessing, models.StatusCancelled}: true,
		{models.StatusShipped, models.StatusDelivered}:    true,
		{models.StatusShipped, models.StatusCancelled}:    true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]models.OrderStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusShipped))
}

func TestPatch(t *testing.T) {
	m, _ := newTestManager(nil)
	ctx := context.Background()
	order, err := m.Create(ctx, validInput(), "")
	require.NoError(t, err)

	patched, err := m.Patch(ctx, order.ID, PatchInput{
		PaymentStatus: ptr("PAID"),
		CustomerInfo:  &models.CustomerInfo{City: "Tunis"},
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "PAID", patched.PaymentStatus)
	assert.Equal(t, "Tunis", patched.CustomerInfo.City)
	assert.Equal(t, models.StatusPending, patched.Status)

	moved, err := m.Patch(ctx, order.ID, PatchInput{Status: ptr("processing")}, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, moved.Status)
	assert.Len(t, moved.Tracking, 2)

	_, err = m.Patch(ctx, order.ID, PatchInput{Status: ptr("delivered")}, "admin")
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidTransition))
	assert.Equal(t, `cannot move order from "processing" to "delivered" (allowed: shipped, cancelled)`, apperrors.PublicMessage(err))

	_, err = m.Patch(ctx, order.ID, PatchInput{PaymentMethod: ptr(" ")}, "admin")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestGetEnforcesOwnership(t *testing.T) {
	m, _ := newTestManager(nil)
	ctx := context.Background()
	guest, err := m.Create(ctx, validInput(), "")
	require.NoError(t, err)
	owned, err := m.Create(ctx, validInput(), "u1")
	require.NoError(t, err)

	_, err = m.Get(ctx, guest.ID, Viewer{})
	assert.NoError(t, err)

	_, err = m.Get(ctx, owned.ID, Viewer{UserID: "u1", Role: models.RoleCustomer})
	assert.NoError(t, err)
	_, err = m.Get(ctx, owned.ID, Viewer{UserID: "admin", Role: models.RoleAdmin})
	assert.NoError(t, err)

	_, err = m.Get(ctx, owned.ID, Viewer{})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	_, err = m.Get(ctx, owned.ID, Viewer{UserID: "u2", Role: models.RoleCustomer})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	_, err = m.Get(ctx, "missing", Viewer{Role: models.RoleAdmin})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestListAndDelete(t *testing.T) {
	m, _ := newTestManager(nil)
	ctx := context.Background()
	var ids []string
	for _, user := range []string{"u1", "", "u1", "u2"} {
		o, err := m.Create(ctx, validInput(), user)
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	page, err := m.ListAll(ctx, "", 1, 3)
	require.NoError(t, err)
	assert.Len(t, page.Orders, 3)
	assert.Equal(t, ids[3], page.Orders[0].ID, "newest first")
	assert.EqualValues(t, 4, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)

	_, err = m.UpdateStatus(ctx, ids[0], StatusUpdate{Status: "processing"}, "admin")
	require.NoError(t, err)
	processing, err := m.ListAll(ctx, "processing", 1, 0)
	require.NoError(t, err)
	require.Len(t, processing.Orders, 1)
	assert.Equal(t, ids[0], processing.Orders[0].ID)

	mine, err := m.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, ids[2], mine[0].ID)

	_, err = m.ListForUser(ctx, "")
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	require.NoError(t, m.Delete(ctx, ids[1]))
	assert.True(t, apperrors.Is(m.Delete(ctx, ids[1]), apperrors.KindNotFound))
}

func TestRevenue(t *testing.T) {
	m, _ := newTestManager(nil)
	ctx := context.Background()
	for _, total := range []float64{0.1, 0.2, 99.99} {
		in := validInput()
		in.TotalAmount = ptr(total)
		_, err := m.Create(ctx, in, "")
		require.NoError(t, err)
	}

	revenue, count, err := m.Revenue(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.Equal(t, "100.29", revenue.StringFixed(2))
}

type fakeGateway struct {
	enabled   bool
	submitErr error
	status    string
}

func (f *fakeGateway) Enabled() bool { return f.enabled }

func (f *fakeGateway) SubmitOrder(ctx context.Context, order *models.Order) (*payments.Checkout, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &payments.Checkout{RedirectURL: "https://pay.example/" + order.ID, OrderTrackingID: "trk-" + order.ID}, nil
}

func (f *fakeGateway) TransactionStatus(ctx context.Context, trackingID string) (string, error) {
	return f.status, nil
}

func TestStartPaymentAndNotification(t *testing.T) {
	gateway := &fakeGateway{enabled: true, status: "Completed"}
	m, orders := newTestManager(gateway)
	ctx := context.Background()

	in := validInput()
	in.PaymentMethod = PaymentMethodPesapal
	order, err := m.Create(ctx, in, "")
	require.NoError(t, err)

	checkout, err := m.StartPayment(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, "trk-"+order.ID, checkout.OrderTrackingID)

	stored, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", stored.PaymentStatus)

	updated, err := m.RecordPaymentNotification(ctx, checkout.OrderTrackingID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.PaymentStatus)

	_, err = m.RecordPaymentNotification(ctx, "unknown")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestPaymentUnavailable(t *testing.T) {
	ctx := context.Background()

	m, _ := newTestManager(nil)
	order, err := m.Create(ctx, validInput(), "")
	require.NoError(t, err)
	_, err = m.StartPayment(ctx, order)
	assert.True(t, apperrors.Is(err, apperrors.KindUnavailable))
	_, err = m.RecordPaymentNotification(ctx, "trk")
	assert.True(t, apperrors.Is(err, apperrors.KindUnavailable))

	failing, _ := newTestManager(&fakeGateway{enabled: true, submitErr: errors.New("timeout")})
	order, err = failing.Create(ctx, validInput(), "")
	require.NoError(t, err)
	_, err = failing.StartPayment(ctx, order)
	assert.True(t, apperrors.Is(err, apperrors.KindUnavailable))
	assert.Equal(t, "Failed to initiate payment", apperrors.PublicMessage(err))
}

func TestTerminalTransitionMessage(t *testing.T) {
	m, _ := newTestManager(nil)
	ctx := context.Background()
	order, err := m.Create(ctx, validInput(), "")
	require.NoError(t, err)

	_, err = m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: "cancelled"}, "admin")
	require.NoError(t, err)

	_, err = m.UpdateStatus(ctx, order.ID, StatusUpdate{Status: "processing"}, "admin")
	require.True(t, apperrors.Is(err, apperrors.KindInvalidTransition))
	assert.Equal(t, `order is "cancelled" and can no longer change status`, apperrors.PublicMessage(err))

	assert.Equal(t, []models.OrderStatus{models.StatusShipped, models.StatusCancelled}, NextStatuses(models.StatusProcessing))
	assert.Empty(t, NextStatuses(models.StatusDelivered))
}
