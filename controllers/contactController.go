package controllers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/utils"
	"github.com/gin-gonic/gin"
)

type contactData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendContactMessage mails the form to the store and a confirmation to the
// sender.
func (c *Controller) SendContactMessage(ctx *gin.Context) {
	var input contactData
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	data := utils.EmailData{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if data.Name == "" || data.Email == "" || data.Subject == "" || data.Message == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}
	if addr, err := mail.ParseAddress(data.Email); err != nil || addr.Address != data.Email {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid email format")
		return
	}

	err := c.Mailer.SendContact(data)
	if errors.Is(err, utils.ErrMailNotConfigured) {
		middlewares.Logger(ctx).Warn("contact form used without smtp settings")
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Email service not configured")
		return
	}
	if err != nil {
		middlewares.Logger(ctx).Error("failed to send contact email", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to send message")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Message sent successfully"})
}
