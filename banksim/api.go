package banksim

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/alovak/payment-gateway/internal/cardutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// API implements the acquirer contract: a syntactically valid card number
// ending in an odd digit is authorized, an even one is declined.
type API struct{}

func NewAPI() *API {
	return &API{}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Post("/payments", a.authorizePayment)
}

func (a *API) authorizePayment(w http.ResponseWriter, r *http.Request) {
	req := models.AuthorizationRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !cardutil.IsDigits(req.CardNumber) {
		http.Error(w, "card number must be numeric", http.StatusBadRequest)
		return
	}
	if !validExpiryDate(req.ExpiryDate) {
		http.Error(w, "expiry date must be MM/YYYY", http.StatusBadRequest)
		return
	}

	result := models.AuthorizationResult{}
	lastDigit := int(req.CardNumber[len(req.CardNumber)-1] - '0')
	if lastDigit%2 == 1 {
		result.Authorized = true
		result.AuthorizationCode = uuid.New().String()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// validExpiryDate checks the MM/YYYY shape.
func validExpiryDate(s string) bool {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 4 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return false
	}
	return true
}
