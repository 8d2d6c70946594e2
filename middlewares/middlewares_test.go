package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/novastore-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(tokens *utils.TokenIssuer, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(nil))
	chain := append(handlers, func(ctx *gin.Context) {
		claims, ok := CurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusOK, gin.H{"user": ""})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"user": claims.UserID})
	})
	r.GET("/", chain...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	token, err := tokens.Generate("u1", "u1@example.com", "customer")
	require.NoError(t, err)
	r := newRouter(tokens, RequireAuth(tokens))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)

	w := do(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestOptionalAuth(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	token, err := tokens.Generate("u1", "u1@example.com", "customer")
	require.NoError(t, err)
	r := newRouter(tokens, OptionalAuth(tokens))

	assert.JSONEq(t, `{"user":""}`, do(r, "").Body.String())
	assert.JSONEq(t, `{"user":""}`, do(r, "garbage").Body.String())
	assert.JSONEq(t, `{"user":"u1"}`, do(r, token).Body.String())
}

func TestRequireAdmin(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	customer, err := tokens.Generate("u1", "u1@example.com", "customer")
	require.NoError(t, err)
	admin, err := tokens.Generate("a1", "a1@example.com", "admin")
	require.NoError(t, err)

	r := newRouter(tokens, RequireAuth(tokens), RequireAdmin())
	assert.Equal(t, http.StatusForbidden, do(r, customer).Code)
	assert.Equal(t, http.StatusOK, do(r, admin).Code)

	bare := newRouter(tokens, RequireAdmin())
	assert.Equal(t, http.StatusUnauthorized, do(bare, "").Code)
}

func TestRequestIDIsReused(t *testing.T) {
	r := newRouter(utils.NewTokenIssuer("secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
