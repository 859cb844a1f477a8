package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/alovak/payment-gateway/internal/cardutil"
	"github.com/google/uuid"
)

// Service is the payment processor: it decides, per submission, whether to
// replay a stored outcome, reject locally, or call the bank and record the
// decision. At most one record is ever created per idempotency key.
type Service struct {
	repo *Repository
	bank Authorizer
}

func NewService(repo *Repository, bank Authorizer) *Service {
	return &Service{
		repo: repo,
		bank: bank,
	}
}

// PaymentOutcome is what a submission produces. Replayed is true when the
// record predates this call, i.e. the idempotency key was already bound.
// ValidationErrors is populated only for a freshly rejected submission; a
// replayed rejection carries the stored record alone.
type PaymentOutcome struct {
	Payment          *models.Payment
	ValidationErrors []models.FieldError
	Replayed         bool
}

// CreatePayment runs the processing pipeline: idempotency lookup,
// validation, bank authorization, persistence. When the bank is
// unreachable it returns ErrBankUnavailable and persists nothing, leaving
// the key free for a genuine retry.
func (s *Service) CreatePayment(ctx context.Context, req models.PostPayment, idempotencyKey string) (*PaymentOutcome, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)

	// Replay check comes before validation: a key bound to a rejected
	// payment replays the stored rejection rather than re-validating.
	if idempotencyKey != "" {
		existing, err := s.repo.GetPaymentByIdempotencyKey(ctx, idempotencyKey)
		if err == nil {
			return &PaymentOutcome{Payment: existing, Replayed: true}, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("looking up idempotency key: %w", err)
		}
	}

	// The masked fragment is derived even from a malformed card number;
	// a rejected record still keeps whatever can be extracted.
	last4 := cardutil.LastFour(req.CardNumber)

	if validationErrors := Validate(req, time.Now()); len(validationErrors) > 0 {
		payment, replayed, err := s.storePayment(ctx, req, models.PaymentStatusRejected, last4, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if replayed {
			return &PaymentOutcome{Payment: payment, Replayed: true}, nil
		}
		return &PaymentOutcome{Payment: payment, ValidationErrors: validationErrors}, nil
	}

	result, err := s.bank.Authorize(ctx, models.AuthorizationRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: FormatExpiryDate(req.ExpiryMonth, req.ExpiryYear),
		Currency:   req.Currency,
		Amount:     req.Amount,
		CVV:        req.CVV,
	})
	if err != nil {
		if errors.Is(err, ErrBankUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("authorizing payment: %w", err)
	}

	status := models.PaymentStatusDeclined
	if result.Authorized {
		status = models.PaymentStatusAuthorized
	}

	payment, replayed, err := s.storePayment(ctx, req, status, last4, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &PaymentOutcome{Payment: payment, Replayed: replayed}, nil
}

// storePayment inserts a fresh record. On a duplicate-key conflict a
// concurrent submission with the same key won the insert; the conflict is
// resolved by re-reading and returning that record (replayed=true), never
// surfaced as an error.
func (s *Service) storePayment(ctx context.Context, req models.PostPayment, status models.PaymentStatus, last4, idempotencyKey string) (*models.Payment, bool, error) {
	payment := &models.Payment{
		ID:             uuid.New().String(),
		Status:         status,
		CardLast4:      last4,
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		Currency:       req.Currency,
		Amount:         req.Amount,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}

	err := s.repo.CreatePayment(ctx, payment)
	if err == nil {
		return payment, false, nil
	}
	if !errors.Is(err, ErrConflict) {
		return nil, false, fmt.Errorf("creating payment: %w", err)
	}

	existing, err := s.repo.GetPaymentByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, false, fmt.Errorf("re-reading payment after conflict: %w", err)
	}
	return existing, true, nil
}

// GetPayment looks up a previously created payment. ErrNotFound passes
// through for the API layer to translate.
func (s *Service) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("finding payment: %w", err)
	}
	return payment, nil
}
