package api

import (
	"net/url"
	"strconv"

	"github.com/diffrun/recon/internal/model"
)

// Endpoint selects which backend route a query is serialized for. The two
// routes disagree on the status parameter name (na_status vs status); that
// asymmetry is the backend's contract and is preserved here.
type Endpoint string

const (
	// EndpointReconcile is the direct JSON reconciliation route.
	EndpointReconcile Endpoint = "/reconcile/vlookup-payment-to-orders/auto"
	// EndpointPaymentsCSV is the raw payments CSV export route.
	EndpointPaymentsCSV Endpoint = "/razorpay/payments-csv"
	// EndpointAgentRun is the conversational agent route (POST, no query).
	EndpointAgentRun Endpoint = "/agent/run"
)

// BuildURL serializes a query for the given endpoint. Pure function; no
// validation beyond what Normalized already did. Empty fields are omitted so
// server-side defaults apply, max_fetch is always sent (the JSON route has no
// guaranteed default for it), and case_insensitive_ids is sent only when
// true to keep default requests minimal.
func BuildURL(base string, q model.ReconcileQuery, endpoint Endpoint) string {
	q = q.Normalized()

	params := url.Values{}
	params.Set("max_fetch", strconv.Itoa(q.MaxFetch))

	if q.Status != "" {
		switch endpoint {
		case EndpointPaymentsCSV:
			params.Set("status", q.Status)
		default:
			params.Set("na_status", q.Status)
		}
	}
	if q.CaseInsensitiveIDs {
		params.Set("case_insensitive_ids", "true")
	}
	if q.FromDate != "" {
		params.Set("from_date", q.FromDate)
	}
	if q.ToDate != "" {
		params.Set("to_date", q.ToDate)
	}
	if q.OrdersBatchSize > 0 && endpoint == EndpointReconcile {
		params.Set("orders_batch_size", strconv.Itoa(q.OrdersBatchSize))
	}

	return base + string(endpoint) + "?" + params.Encode()
}
