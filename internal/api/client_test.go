package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffrun/recon/internal/model"
)

func TestNewClientStripsTrailingSlash(t *testing.T) {
	c := NewClient("http://127.0.0.1:8000/")
	assert.Equal(t, "http://127.0.0.1:8000", c.BaseURL())
}

func TestRunAgentReturnsRawBody(t *testing.T) {
	body := `{"result":{"summary":{"na_count":3}}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/agent/run", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "reconcile last month", req["message"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	raw, err := c.RunAgent(context.Background(), "reconcile last month")
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
}

func TestErrorBodyDetailIsSurfaced(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "detail field preferred",
			status:  http.StatusInternalServerError,
			body:    `{"detail":"db down"}`,
			wantMsg: "db down",
		},
		{
			name:    "error field as fallback",
			status:  http.StatusBadGateway,
			body:    `{"error":"upstream unavailable"}`,
			wantMsg: "upstream unavailable",
		},
		{
			name:    "unparseable body falls back to generic message",
			status:  http.StatusInternalServerError,
			body:    `<html>Internal Server Error</html>`,
			wantMsg: "Agent error (500)",
		},
		{
			name:    "json body without known fields falls back",
			status:  http.StatusNotFound,
			body:    `{"message":"nope"}`,
			wantMsg: "Agent error (404)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL)
			_, err := c.RunAgent(context.Background(), "hello")
			require.Error(t, err)

			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantMsg, te.Message)
			assert.Equal(t, tt.status, te.Status)
		})
	}
}

func TestDeadlineBecomesTimeoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.RunAgent(ctx, "slow request")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))

	var te *TransportError
	assert.False(t, errors.As(err, &te), "timeout must not be a TransportError")
}

func TestReconcileDecodesResult(t *testing.T) {
	payload := model.ReconcileResult{
		Summary: model.Summary{
			TotalPaymentsRows: 450,
			MatchedCount:      447,
			NACount:           3,
			FilterStatus:      "(ALL)",
			MaxFetch:          50000,
			DateWindow:        model.DateWindow{From: "2025-08-01", To: "2025-08-31"},
		},
		NAPaymentIDs: []string{"pay_a", "pay_b", "pay_c"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reconcile/vlookup-payment-to-orders/auto", r.URL.Path)
		assert.Equal(t, "captured", r.URL.Query().Get("na_status"))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	got, err := c.Reconcile(context.Background(), model.ReconcileQuery{Status: "captured"})
	require.NoError(t, err)
	assert.Equal(t, payload.Summary, got.Summary)
	assert.Equal(t, payload.NAPaymentIDs, got.NAPaymentIDs)
}

func TestDownloadPaymentsCSVStreamsBytes(t *testing.T) {
	csvBody := "id,amount,status\npay_a,100.00,captured\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/razorpay/payments-csv", r.URL.Path)
		assert.Equal(t, "captured", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csvBody))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	var buf bytes.Buffer
	n, err := c.DownloadPaymentsCSV(context.Background(), model.ReconcileQuery{Status: "captured"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(csvBody)), n)
	assert.Equal(t, csvBody, buf.String())
}
