package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(Config{BaseURL: ts.URL + "/", Lang: "ar"}, zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_LoginKeepsToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token/":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "admin@example.com", body["username"])
			assert.Equal(t, "ar", r.Header.Get("Accept-Language"))
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"access": "tok-1",
				"user":   map[string]string{"type": "admin", "email": "admin@example.com"},
			})
		case "/api/invoices":
			gotAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data":    []map[string]interface{}{{"id": "INV-1001", "total": 575}},
			})
		default:
			http.NotFound(w, r)
		}
	})

	user, err := c.Login(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	invoices, err := c.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-1001", invoices[0].ID)
	assert.Equal(t, 575.0, invoices[0].Total)
}

func TestClient_LoginRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
	})

	_, err := c.VipLogin(context.Background(), "966558828009", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, ClassUnauthorized, apiErr.Class())
	assert.Equal(t, "No active account found with the given credentials", apiErr.Message)
}

func TestClient_RecordPaymentValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Please correct the highlighted fields.",
			"fields":  map[string][]string{"amount": {"Amount must be positive."}},
		})
	})
	c.SetToken("tok")

	_, err := c.RecordPayment(context.Background(), entity.PaymentForm{InvoiceID: "INV-1002"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ClassValidation, apiErr.Class())
	assert.Equal(t, "Please correct the highlighted fields.", apiErr.Message)
	assert.NotNil(t, apiErr.Data)
}

func TestClient_RecordPayment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var form entity.PaymentForm
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    entity.Payment{ID: "PAY-1", InvoiceID: form.InvoiceID, Amount: form.Amount, Method: form.Method},
		})
	})

	payment, err := c.RecordPayment(context.Background(), entity.PaymentForm{InvoiceID: "INV-1002", Amount: 690, Method: entity.PaymentMethodBankTransfer})
	require.NoError(t, err)
	assert.Equal(t, "PAY-1", payment.ID)
	assert.Equal(t, 690.0, payment.Amount)
}

func TestClient_DeleteClientQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/clients/C 1", r.URL.Path)
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]string{"id": "C 1"}})
	})

	require.NoError(t, c.DeleteClient(context.Background(), "C 1", true))
	assert.Equal(t, "confirm=true", gotQuery)
}

func TestClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	})

	_, err := c.ListClients(context.Background(), "hotel")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ClassServer, apiErr.Class())
	assert.Equal(t, "maintenance", apiErr.Message)
}

func TestClient_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(Config{BaseURL: url}, zap.NewNop())
	_, err := c.Statement(context.Background(), "C1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, ClassNetwork, apiErr.Class())
}
