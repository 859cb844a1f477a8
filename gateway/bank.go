package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alovak/payment-gateway/gateway/models"
)

// ErrBankUnavailable is returned when the acquiring bank could not produce
// a definite decision: connection failure, timeout, non-2xx status, or a
// response body that does not decode. It is distinct from a declined
// authorization, which is a definite result.
var ErrBankUnavailable = fmt.Errorf("acquiring bank unavailable")

// Authorizer asks the acquiring bank for a decision on a payment.
type Authorizer interface {
	Authorize(ctx context.Context, req models.AuthorizationRequest) (*models.AuthorizationResult, error)
}

// BankClient is the HTTP Authorizer. One attempt per invocation; the
// configured client timeout bounds the wait.
type BankClient struct {
	Base string
	HTTP *http.Client
}

func NewBankClient(base string, hc *http.Client) *BankClient {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &BankClient{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

func (c *BankClient) Authorize(ctx context.Context, req models.AuthorizationRequest) (*models.AuthorizationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling authorization request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building authorization request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling bank: %w", ErrBankUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("bank returned status %d: %w", resp.StatusCode, ErrBankUnavailable)
	}

	result := &models.AuthorizationResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("decoding bank response: %w", ErrBankUnavailable)
	}

	return result, nil
}

// FormatExpiryDate renders card expiry the way the bank expects it: MM/YYYY.
func FormatExpiryDate(month, year int) string {
	return fmt.Sprintf("%02d/%d", month, year)
}
