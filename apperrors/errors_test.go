package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("op", "empty order"), http.StatusBadRequest},
		{"not found", NotFound("op", "Order"), http.StatusNotFound},
		{"unauthorized", Unauthorized("op", "Authentication required"), http.StatusUnauthorized},
		{"forbidden", Forbidden("op", "Admin access required"), http.StatusForbidden},
		{"transition", InvalidTransition("delivered", "pending"), http.StatusConflict},
		{"transition with allowed", InvalidTransition("pending", "shipped", "processing", "cancelled"), http.StatusConflict},
		{"unavailable", Unavailable("op", "FTP not configured"), http.StatusServiceUnavailable},
		{"persistence", Persistence("op", errors.New("connection refused")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create order: %w", Validation("order.Create", "empty order"))

	assert.Equal(t, KindValidation, KindOf(err))
	assert.True(t, Is(err, KindValidation))
	assert.Equal(t, "empty order", PublicMessage(err))
}

func TestPersistenceHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.3:27017: connection refused")
	err := Persistence("catalog.List", cause)

	assert.NotContains(t, PublicMessage(err), "10.0.0.3")
	assert.ErrorIs(t, err, cause)
}
