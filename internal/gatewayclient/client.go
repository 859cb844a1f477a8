package gatewayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alovak/payment-gateway/gateway/models"
)

// Client is a small Go client for the gateway HTTP API.
type Client struct {
	Base string
	HTTP *http.Client
}

func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// PaymentResult is the decoded submission response plus the HTTP status it
// arrived with, so callers can tell a fresh record (201) from a replay
// (200) and a rejection (400).
type PaymentResult struct {
	StatusCode       int
	Payment          models.Payment
	ValidationErrors []models.FieldError `json:"validation_errors"`
}

// ErrUnavailable is returned when the gateway reports the bank as down.
var ErrUnavailable = fmt.Errorf("gateway unavailable")

func (c *Client) CreatePayment(ctx context.Context, req models.PostPayment, idempotencyKey string) (*PaymentResult, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/payments", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusBadRequest:
		// All three carry a payment record body.
	case http.StatusServiceUnavailable:
		return nil, ErrUnavailable
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create payment status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	result := &PaymentResult{StatusCode: resp.StatusCode}
	var payload struct {
		models.Payment
		ValidationErrors []models.FieldError `json:"validation_errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode create payment: %w", err)
	}
	result.Payment = payload.Payment
	result.ValidationErrors = payload.ValidationErrors
	return result, nil
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("payment %s: not found", paymentID)
	}
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get payment status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	payment := &models.Payment{}
	if err := json.NewDecoder(resp.Body).Decode(payment); err != nil {
		return nil, fmt.Errorf("decode get payment: %w", err)
	}
	return payment, nil
}
