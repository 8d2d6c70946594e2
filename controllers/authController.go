package controllers

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
	"github.com/Kariqs/novastore-api/utils"
	"github.com/gin-gonic/gin"
)

type signupData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Controller) Signup(ctx *gin.Context) {
	var input signupData
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Email and password are required")
		return
	}

	user := models.User{
		Name:  strings.TrimSpace(input.Name),
		Email: email,
		Role:  models.RoleCustomer,
	}
	if user.Name == "" {
		user.Name = email
	}
	if err := models.Validate(&user); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	_, err := c.Stores.Users.FindOne(ctx, store.Eq{Field: "email", Value: email})
	if err == nil {
		sendErrorResponse(ctx, http.StatusConflict, msgUserAlreadyExists)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		middlewares.Logger(ctx).Error("user lookup failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		middlewares.Logger(ctx).Error("failed to hash password", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	user.Password = hashedPassword

	if err := c.Stores.Users.Insert(ctx, &user); err != nil {
		middlewares.Logger(ctx).Error("failed to create user", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (c *Controller) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(loginData.Email))
	user, err := c.Stores.Users.FindOne(ctx, store.Eq{Field: "email", Value: email})
	if errors.Is(err, store.ErrNotFound) {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		middlewares.Logger(ctx).Error("user lookup failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if !utils.ComparePasswords(user.Password, loginData.Password) {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, err := c.Tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		middlewares.Logger(ctx).Error("failed to sign token", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	middlewares.Logger(ctx).Info("user logged in", "user_id", user.ID)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// GetUsers lists accounts newest first, optionally filtered by role.
func (c *Controller) GetUsers(ctx *gin.Context) {
	page, err := queryInt(ctx, "page", 1)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit", 10)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	page = max(page, 1)
	if limit < 1 {
		limit = 10
	}

	filter := store.All()
	if role := ctx.Query("role"); role != "" {
		filter = store.Eq{Field: "role", Value: role}
	}

	users, err := c.Stores.Users.Find(ctx, store.FindOptions{
		Filter: filter,
		Sort:   []store.SortField{{Field: "createdAt", Desc: true}},
		Skip:   int64(page-1) * int64(limit),
		Limit:  int64(limit),
	})
	if err != nil {
		middlewares.Logger(ctx).Error("failed to list users", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	total, err := c.Stores.Users.Count(ctx, filter)
	if err != nil {
		middlewares.Logger(ctx).Error("failed to count users", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"users": users,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}
