package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/go-chi/chi/v5"
)

// IdempotencyKeyHeader carries the caller's idempotency token.
const IdempotencyKeyHeader = "Idempotency-Key"

// API is the HTTP surface of the payment gateway.
type API struct {
	gateway *Service
}

func NewAPI(gateway *Service) *API {
	return &API{
		gateway: gateway,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", a.createPayment)
		r.Get("/{paymentID}", a.getPayment)
	})
}

// paymentResponse is a created or replayed record, with the field errors
// attached when the submission was rejected in this call.
type paymentResponse struct {
	*models.Payment
	ValidationErrors []models.FieldError `json:"validation_errors,omitempty"`
}

func (a *API) createPayment(w http.ResponseWriter, r *http.Request) {
	post := models.PostPayment{}
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome, err := a.gateway.CreatePayment(r.Context(), post, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		if errors.Is(err, ErrBankUnavailable) {
			http.Error(w, "payment service unavailable, retry later", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	code := http.StatusCreated
	switch {
	case outcome.Payment.Status == models.PaymentStatusRejected:
		// A rejected payment is a client error, fresh or replayed.
		code = http.StatusBadRequest
	case outcome.Replayed:
		code = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(paymentResponse{
		Payment:          outcome.Payment,
		ValidationErrors: outcome.ValidationErrors,
	})
}

func (a *API) getPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	payment, err := a.gateway.GetPayment(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(payment)
}
