// Package payments talks to the Pesapal v3 API for online order payments.
package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Kariqs/novastore-api/models"
)

const DefaultBaseURL = "https://pay.pesapal.com/v3"

var ErrNotConfigured = errors.New("pesapal consumer credentials are not set")

type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	NotificationID string
	CallbackURL    string
	Currency       string
	CountryCode    string
	Timeout        time.Duration
}

// Checkout is what the storefront needs to send the customer to Pesapal.
type Checkout struct {
	RedirectURL     string `json:"redirectUrl"`
	OrderTrackingID string `json:"orderTrackingId"`
}

type Pesapal struct {
	cfg    Config
	client *resty.Client
}

func NewPesapal(cfg Config) *Pesapal {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Currency == "" {
		cfg.Currency = "KES"
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "KE"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Pesapal{cfg: cfg, client: client}
}

// Enabled reports whether credentials and an IPN registration are present.
func (p *Pesapal) Enabled() bool {
	return p != nil && p.cfg.ConsumerKey != "" && p.cfg.ConsumerSecret != "" && p.cfg.NotificationID != ""
}

type apiError struct {
	ErrorType string `json:"error_type"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

func (e *apiError) present() bool {
	return e != nil && (e.Code != "" || e.Message != "" || e.ErrorType != "")
}

type tokenResponse struct {
	Token string    `json:"token"`
	Error *apiError `json:"error"`
}

func (p *Pesapal) accessToken(ctx context.Context) (string, error) {
	if p.cfg.ConsumerKey == "" || p.cfg.ConsumerSecret == "" {
		return "", ErrNotConfigured
	}

	var result tokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"consumer_key":    p.cfg.ConsumerKey,
			"consumer_secret": p.cfg.ConsumerSecret,
		}).
		SetResult(&result).
		Post("/api/Auth/RequestToken")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("pesapal token request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error.present() || result.Token == "" {
		return "", fmt.Errorf("token not found in response: %s", resp.String())
	}
	return result.Token, nil
}

type submitResponse struct {
	OrderTrackingID   string    `json:"order_tracking_id"`
	MerchantReference string    `json:"merchant_reference"`
	RedirectURL       string    `json:"redirect_url"`
	Error             *apiError `json:"error"`
}

// SubmitOrder registers the order with Pesapal and returns the hosted
// payment page. The order id is used as the merchant reference.
func (p *Pesapal) SubmitOrder(ctx context.Context, order *models.Order) (*Checkout, error) {
	if !p.Enabled() {
		return nil, ErrNotConfigured
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("payment authentication failed: %w", err)
	}

	customer := order.CustomerInfo
	body := map[string]any{
		"id":              order.ID,
		"currency":        p.cfg.Currency,
		"amount":          order.TotalAmount,
		"description":     "Payment for order #" + order.ID,
		"callback_url":    p.cfg.CallbackURL,
		"notification_id": p.cfg.NotificationID,
		"billing_address": map[string]any{
			"email_address": customer.Email,
			"phone_number":  customer.Phone,
			"country_code":  p.cfg.CountryCode,
			"first_name":    customer.FirstName,
			"last_name":     customer.LastName,
			"city":          customer.City,
			"line_1":        customer.Address,
			"postal_code":   customer.PostalCode,
		},
	}

	var result submitResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetResult(&result).
		Post("/api/Transactions/SubmitOrderRequest")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("pesapal submit order failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error.present() || result.RedirectURL == "" || result.OrderTrackingID == "" {
		return nil, fmt.Errorf("incomplete response from payment gateway: %s", resp.String())
	}

	return &Checkout{RedirectURL: result.RedirectURL, OrderTrackingID: result.OrderTrackingID}, nil
}

type statusResponse struct {
	PaymentStatusDescription string    `json:"payment_status_description"`
	MerchantReference        string    `json:"merchant_reference"`
	Error                    *apiError `json:"error"`
}

// TransactionStatus returns Pesapal's payment status description, for
// example "Completed" or "Failed".
func (p *Pesapal) TransactionStatus(ctx context.Context, trackingID string) (string, error) {
	if !p.Enabled() {
		return "", ErrNotConfigured
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("payment authentication failed: %w", err)
	}

	var result statusResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("orderTrackingId", trackingID).
		SetResult(&result).
		Get("/api/Transactions/GetTransactionStatus")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("pesapal status request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error.present() {
		return "", fmt.Errorf("error in transaction response: %s", result.Error.Message)
	}
	return result.PaymentStatusDescription, nil
}
