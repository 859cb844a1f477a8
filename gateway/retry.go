package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/alovak/payment-gateway/gateway/models"
)

// RetryAuthorizer decorates an Authorizer with bounded re-attempts. Only
// ErrBankUnavailable is retried; definite results and other errors pass
// through untouched, so callers see the same two-outcome contract.
type RetryAuthorizer struct {
	next     Authorizer
	attempts int
	backoff  time.Duration
}

func NewRetryAuthorizer(next Authorizer, attempts int, backoff time.Duration) *RetryAuthorizer {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryAuthorizer{next: next, attempts: attempts, backoff: backoff}
}

func (r *RetryAuthorizer) Authorize(ctx context.Context, req models.AuthorizationRequest) (*models.AuthorizationResult, error) {
	var lastErr error

	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * r.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := r.next.Authorize(ctx, req)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrBankUnavailable) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}
