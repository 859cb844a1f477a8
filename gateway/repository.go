package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

var ErrNotFound = fmt.Errorf("not found")

// ErrConflict signals that a payment with the same idempotency key already
// exists. With the pg backend it is the mapped unique-constraint violation,
// so the guarantee holds across concurrent inserts and across processes.
var ErrConflict = fmt.Errorf("conflict")

// Repository is the payment store. With a nil db it keeps payments in
// memory (tests, demo runs); otherwise it is backed by Postgres.
type Repository struct {
	mu       sync.RWMutex
	payments []*models.Payment
	keyIndex map[string]*models.Payment

	db *sql.DB
}

func NewRepository() *Repository {
	return &Repository{
		payments: make([]*models.Payment, 0),
		keyIndex: make(map[string]*models.Payment),
	}
}

// NewPGRepository constructs a db-backed repository.
func NewPGRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreatePayment inserts a payment record. Records are write-once; there is
// no update path. A duplicate non-empty idempotency key yields ErrConflict.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		if payment.IdempotencyKey != "" {
			if _, ok := r.keyIndex[payment.IdempotencyKey]; ok {
				return fmt.Errorf("idempotency key exists: %w", ErrConflict)
			}
		}
		if payment.CreatedAt.IsZero() {
			payment.CreatedAt = time.Now().UTC()
		}
		r.payments = append(r.payments, payment)
		if payment.IdempotencyKey != "" {
			r.keyIndex[payment.IdempotencyKey] = payment
		}
		return nil
	}

	var key sql.NullString
	if payment.IdempotencyKey != "" {
		key = sql.NullString{String: payment.IdempotencyKey, Valid: true}
	}
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO gateway.payments(payment_id, status, card_last4, expiry_month, expiry_year, currency, amount, idempotency_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at
    `, payment.ID, string(payment.Status), payment.CardLast4, payment.ExpiryMonth, payment.ExpiryYear,
		payment.Currency, payment.Amount, key)
	if err := row.Scan(&payment.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// GetPayment returns the payment with the given identifier or ErrNotFound.
func (r *Repository) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, p := range r.payments {
			if p.ID == paymentID {
				return p, nil
			}
		}
		return nil, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
        SELECT payment_id, status, card_last4, expiry_month, expiry_year, currency, amount, idempotency_key, created_at
          FROM gateway.payments WHERE payment_id=$1
    `, paymentID)
	return scanPayment(row)
}

// GetPaymentByIdempotencyKey returns the payment bound to key, or
// ErrNotFound. At most one record can match; non-empty keys are unique.
func (r *Repository) GetPaymentByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		if p, ok := r.keyIndex[key]; ok {
			return p, nil
		}
		return nil, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
        SELECT payment_id, status, card_last4, expiry_month, expiry_year, currency, amount, idempotency_key, created_at
          FROM gateway.payments WHERE idempotency_key=$1
    `, key)
	return scanPayment(row)
}

// Ping returns DB readiness.
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.PingContext(ctx)
}

func scanPayment(row *sql.Row) (*models.Payment, error) {
	var p models.Payment
	var status string
	var key sql.NullString
	err := row.Scan(&p.ID, &status, &p.CardLast4, &p.ExpiryMonth, &p.ExpiryYear, &p.Currency, &p.Amount, &key, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Status = models.PaymentStatus(status)
	if key.Valid {
		p.IdempotencyKey = key.String
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "23505" {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		return true
	}
	return false
}
