package gateway_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alovak/payment-gateway/banksim"
	"github.com/alovak/payment-gateway/gateway"
	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type paymentResponse struct {
	models.Payment
	ValidationErrors []models.FieldError `json:"validation_errors"`
}

// newTestRouter wires the full chain: API -> service -> bank simulator
// over real HTTP.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	bankRouter := chi.NewRouter()
	banksim.NewAPI().AppendRoutes(bankRouter)
	bankSrv := httptest.NewServer(bankRouter)
	t.Cleanup(bankSrv.Close)

	svc := gateway.NewService(gateway.NewRepository(), gateway.NewBankClient(bankSrv.URL, nil))

	router := chi.NewRouter()
	gateway.NewAPI(svc).AppendRoutes(router)
	return router
}

func postPayment(t *testing.T, router chi.Router, post models.PostPayment, idempotencyKey string) (*httptest.ResponseRecorder, paymentResponse) {
	t.Helper()

	jsonReq, err := json.Marshal(post)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "/payments", bytes.NewBuffer(jsonReq))
	if idempotencyKey != "" {
		req.Header.Set(gateway.IdempotencyKeyHeader, idempotencyKey)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := paymentResponse{}
	if w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestAPI_CreatePayment(t *testing.T) {
	router := newTestRouter(t)

	t.Run("odd last digit is authorized", func(t *testing.T) {
		w, resp := postPayment(t, router, validPostPayment(), "")

		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, models.PaymentStatusAuthorized, resp.Status)
		require.Equal(t, "8877", resp.CardLast4)
		require.NotEmpty(t, resp.ID)
		require.Empty(t, resp.ValidationErrors)
	})

	t.Run("even last digit is declined", func(t *testing.T) {
		post := validPostPayment()
		post.CardNumber = "2222405343248878"

		w, resp := postPayment(t, router, post, "")

		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, models.PaymentStatusDeclined, resp.Status)
		require.Equal(t, "8878", resp.CardLast4)
	})

	t.Run("invalid card is rejected with a client error", func(t *testing.T) {
		post := validPostPayment()
		post.CardNumber = "123"

		w, resp := postPayment(t, router, post, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, models.PaymentStatusRejected, resp.Status)
		require.Empty(t, resp.CardLast4)
		require.NotEmpty(t, resp.ValidationErrors)
		require.NotEmpty(t, resp.ID, "the rejection is recorded and retrievable")
	})

	t.Run("malformed body", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAPI_IdempotentReplay(t *testing.T) {
	router := newTestRouter(t)

	w1, first := postPayment(t, router, validPostPayment(), "order-42")
	require.Equal(t, http.StatusCreated, w1.Code)

	w2, second := postPayment(t, router, validPostPayment(), "order-42")
	require.Equal(t, http.StatusOK, w2.Code, "a replay is 200, not 201")
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.Status, second.Status)
}

func TestAPI_RejectedReplayStaysClientError(t *testing.T) {
	router := newTestRouter(t)

	post := validPostPayment()
	post.CVV = "12"

	w1, first := postPayment(t, router, post, "order-rejected")
	require.Equal(t, http.StatusBadRequest, w1.Code)

	w2, second := postPayment(t, router, post, "order-rejected")
	require.Equal(t, http.StatusBadRequest, w2.Code)
	require.Equal(t, first.ID, second.ID)
}

func TestAPI_GetPayment(t *testing.T) {
	router := newTestRouter(t)

	_, created := postPayment(t, router, validPostPayment(), "")

	req, _ := http.NewRequest(http.MethodGet, "/payments/"+created.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	payment := models.Payment{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payment))
	require.Equal(t, created.ID, payment.ID)
	require.Equal(t, created.Status, payment.Status)
	require.Equal(t, created.CardLast4, payment.CardLast4)
}

func TestAPI_GetPayment_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/payments/does-not-exist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_BankDownIsServiceUnavailable(t *testing.T) {
	// Point the client at a server that is already gone.
	bankSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	bankSrv.Close()

	repo := gateway.NewRepository()
	svc := gateway.NewService(repo, gateway.NewBankClient(bankSrv.URL, nil))
	router := chi.NewRouter()
	gateway.NewAPI(svc).AppendRoutes(router)

	w, _ := postPayment(t, router, validPostPayment(), "order-down")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
