package api

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffrun/recon/internal/model"
)

func parseQuery(t *testing.T, built string) url.Values {
	t.Helper()
	u, err := url.Parse(built)
	require.NoError(t, err)
	return u.Query()
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name       string
		query      model.ReconcileQuery
		endpoint   Endpoint
		wantParams map[string]string
		wantAbsent []string
	}{
		{
			name:     "empty dates produce no date parameters",
			query:    model.ReconcileQuery{},
			endpoint: EndpointReconcile,
			wantParams: map[string]string{
				"max_fetch": strconv.Itoa(model.DefaultMaxFetch),
			},
			wantAbsent: []string{"from_date", "to_date", "na_status", "status", "case_insensitive_ids"},
		},
		{
			name: "csv endpoint uses status parameter",
			query: model.ReconcileQuery{
				FromDate: "2025-08-01",
				ToDate:   "2025-08-31",
				Status:   "captured",
			},
			endpoint: EndpointPaymentsCSV,
			wantParams: map[string]string{
				"status":    "captured",
				"from_date": "2025-08-01",
				"to_date":   "2025-08-31",
			},
			wantAbsent: []string{"na_status", "orders_batch_size"},
		},
		{
			name: "json endpoint uses na_status parameter",
			query: model.ReconcileQuery{
				Status: "captured",
			},
			endpoint: EndpointReconcile,
			wantParams: map[string]string{
				"na_status": "captured",
			},
			wantAbsent: []string{"status"},
		},
		{
			name: "case insensitive serializes only when true",
			query: model.ReconcileQuery{
				CaseInsensitiveIDs: true,
			},
			endpoint: EndpointReconcile,
			wantParams: map[string]string{
				"case_insensitive_ids": "true",
			},
		},
		{
			name: "max fetch always serialized even when explicit default",
			query: model.ReconcileQuery{
				MaxFetch: model.DefaultMaxFetch,
			},
			endpoint: EndpointReconcile,
			wantParams: map[string]string{
				"max_fetch": strconv.Itoa(model.DefaultMaxFetch),
			},
		},
		{
			name: "orders batch size only on the reconcile endpoint",
			query: model.ReconcileQuery{
				OrdersBatchSize: 10000,
			},
			endpoint: EndpointReconcile,
			wantParams: map[string]string{
				"orders_batch_size": "10000",
			},
		},
		{
			name: "orders batch size dropped on csv endpoint",
			query: model.ReconcileQuery{
				OrdersBatchSize: 10000,
			},
			endpoint:   EndpointPaymentsCSV,
			wantAbsent: []string{"orders_batch_size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built := BuildURL("http://127.0.0.1:8000", tt.query, tt.endpoint)
			params := parseQuery(t, built)

			for key, want := range tt.wantParams {
				assert.Equal(t, want, params.Get(key), "parameter %s", key)
			}
			for _, key := range tt.wantAbsent {
				assert.NotContains(t, params, key)
			}
		})
	}
}

func TestBuildURLPaths(t *testing.T) {
	built := BuildURL("http://api.example.com", model.ReconcileQuery{}, EndpointReconcile)
	u, err := url.Parse(built)
	require.NoError(t, err)
	assert.Equal(t, "/reconcile/vlookup-payment-to-orders/auto", u.Path)

	built = BuildURL("http://api.example.com", model.ReconcileQuery{}, EndpointPaymentsCSV)
	u, err = url.Parse(built)
	require.NoError(t, err)
	assert.Equal(t, "/razorpay/payments-csv", u.Path)
}

func TestBuildURLClampsMaxFetch(t *testing.T) {
	built := BuildURL("http://127.0.0.1:8000", model.ReconcileQuery{MaxFetch: 9999999}, EndpointReconcile)
	params := parseQuery(t, built)
	assert.Equal(t, strconv.Itoa(model.MaxMaxFetch), params.Get("max_fetch"))
}
