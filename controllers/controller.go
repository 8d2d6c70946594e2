// Package controllers holds the gin handlers of the storefront API.
package controllers

import (
	"strconv"
	"strings"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/cache"
	"github.com/Kariqs/novastore-api/catalog"
	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/orders"
	"github.com/Kariqs/novastore-api/storage"
	"github.com/Kariqs/novastore-api/store"
	"github.com/Kariqs/novastore-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput          = "Invalid request body"
	msgUserAlreadyExists     = "User already exists"
	msgInvalidCredentials    = "Invalid credentials"
	msgFailedToGenerateToken = "Failed to generate token"
	msgInternalServerError   = "Something went wrong, please try again"
)

// Controller carries the services every handler needs.
type Controller struct {
	Stores  *store.Stores
	Catalog *catalog.Service
	Orders  *orders.Manager
	Tokens  *utils.TokenIssuer
	Mailer  *utils.Mailer
	Cache   *cache.Cache
	// Disk receives /api/upload files.
	Disk storage.Disk
	// FTP is nil when no FTP server is configured.
	FTP            storage.FTPServer
	UploadMaxBytes int64
}

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// respondWithError maps a service error to its status code. Causes are
// logged, never sent.
func respondWithError(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	logger := middlewares.Logger(ctx)
	if status >= 500 {
		logger.Error("request failed", "error", err)
	} else {
		logger.Debug("request rejected", "error", err)
	}
	sendErrorResponse(ctx, status, apperrors.PublicMessage(err))
}

// viewer describes the caller for ownership checks; anonymous when no
// token was presented.
func viewer(ctx *gin.Context) orders.Viewer {
	claims, ok := middlewares.CurrentUser(ctx)
	if !ok {
		return orders.Viewer{}
	}
	return orders.Viewer{UserID: claims.UserID, Role: claims.Role}
}

func isAdmin(ctx *gin.Context) bool {
	claims, ok := middlewares.CurrentUser(ctx)
	return ok && claims.Role == models.RoleAdmin
}

// actor is the name recorded on audit fields such as tracking entries.
func actor(ctx *gin.Context) string {
	claims, ok := middlewares.CurrentUser(ctx)
	if !ok {
		return ""
	}
	if claims.Email != "" {
		return claims.Email
	}
	return claims.UserID
}

// queryInt parses an integer query parameter, returning def when absent.
func queryInt(ctx *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation("controllers.queryInt", key+" must be a number")
	}
	return n, nil
}

func queryFloat(ctx *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.Validation("controllers.queryFloat", key+" must be a number")
	}
	return &f, nil
}
