package orders

import (
	"slices"
	"strings"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/models"
)

// transitions lists the statuses reachable from each non-terminal status.
// Delivered and cancelled are terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:    {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:    {models.StatusDelivered, models.StatusCancelled},
}

func ParseStatus(s string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case models.StatusPending, models.StatusProcessing, models.StatusShipped,
		models.StatusDelivered, models.StatusCancelled:
		return status, nil
	}
	return "", apperrors.Validation("order.ParseStatus",
		"status must be one of: pending, processing, shipped, delivered, cancelled")
}

func CanTransition(from, to models.OrderStatus) bool {
	return slices.Contains(transitions[from], to)
}

func IsTerminal(status models.OrderStatus) bool {
	return len(transitions[status]) == 0
}

// NextStatuses returns the statuses an order may move to from status.
func NextStatuses(status models.OrderStatus) []models.OrderStatus {
	return slices.Clone(transitions[status])
}

func checkTransition(from, to models.OrderStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	if IsTerminal(from) {
		return apperrors.InvalidTransition(string(from), string(to))
	}
	next := NextStatuses(from)
	allowed := make([]string, len(next))
	for i, status := range next {
		allowed[i] = string(status)
	}
	return apperrors.InvalidTransition(string(from), string(to), allowed...)
}

var transitionMessages = map[models.OrderStatus]string{
	models.StatusPending:    "Order placed",
	models.StatusProcessing: "Order is being processed",
	models.StatusShipped:    "Order has been shipped",
	models.StatusDelivered:  "Order delivered",
	models.StatusCancelled:  "Order cancelled",
}
