package gateway

import (
	"time"

	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/alovak/payment-gateway/internal/cardutil"
	"github.com/alovak/payment-gateway/internal/expiry"
)

var allowedCurrencies = map[string]struct{}{
	"USD": {},
	"GBP": {},
	"EUR": {},
}

// Validate runs every structural check on a payment submission and
// accumulates the failures. A request can fail on several fields at once;
// nothing short-circuits. An empty result means the request is valid.
func Validate(req models.PostPayment, now time.Time) []models.FieldError {
	var errs []models.FieldError

	if req.CardNumber == "" {
		errs = append(errs, models.FieldError{Field: "card_number", Message: "card number is required"})
	} else if !cardutil.IsDigits(req.CardNumber) || len(req.CardNumber) < 14 || len(req.CardNumber) > 19 {
		errs = append(errs, models.FieldError{Field: "card_number", Message: "card number must be 14 to 19 digits"})
	}

	monthValid := true
	if req.ExpiryMonth < 1 || req.ExpiryMonth > 12 {
		monthValid = false
		errs = append(errs, models.FieldError{Field: "expiry_month", Message: "expiry month must be between 1 and 12"})
	}

	if req.ExpiryYear == 0 {
		errs = append(errs, models.FieldError{Field: "expiry_year", Message: "expiry year is required"})
	} else if monthValid {
		// Date-based check: the card is good through the last calendar
		// day of its expiry month.
		expired, err := expiry.Expired(req.ExpiryMonth, req.ExpiryYear, now)
		if err == nil && expired {
			errs = append(errs, models.FieldError{Field: "expiry_year", Message: "card is expired"})
		}
	}

	if req.Currency == "" {
		errs = append(errs, models.FieldError{Field: "currency", Message: "currency is required"})
	} else if len(req.Currency) != 3 {
		errs = append(errs, models.FieldError{Field: "currency", Message: "currency must be 3 characters"})
	} else if _, ok := allowedCurrencies[req.Currency]; !ok {
		errs = append(errs, models.FieldError{Field: "currency", Message: "currency must be one of USD, GBP, EUR"})
	}

	if req.Amount < 1 || req.Amount > models.MaxAmount {
		errs = append(errs, models.FieldError{Field: "amount", Message: "amount must be between 1 and 2147483647"})
	}

	if req.CVV == "" {
		errs = append(errs, models.FieldError{Field: "cvv", Message: "cvv is required"})
	} else if !cardutil.IsDigits(req.CVV) || len(req.CVV) < 3 || len(req.CVV) > 4 {
		errs = append(errs, models.FieldError{Field: "cvv", Message: "cvv must be 3 or 4 digits"})
	}

	return errs
}
