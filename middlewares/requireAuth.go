package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/novastore-api/utils"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token claims under "user".
func RequireAuth(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			Logger(ctx).Debug("rejected token", "error", err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		ctx.Set(userKey, claims)
		ctx.Next()
	}
}

// OptionalAuth stores the claims of a valid bearer token and lets every
// request through. Guest checkout and order confirmation depend on it.
func OptionalAuth(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if claims, err := tokens.Parse(token); err == nil {
				ctx.Set(userKey, claims)
			}
		}
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) (*utils.Claims, bool) {
	value, exists := ctx.Get(userKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok && claims != nil
}
