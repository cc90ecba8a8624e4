// Package model defines the core domain types for payment reconciliation.
package model

// DateWindow describes the date range a reconciliation run covered. The
// backend reports "(all-time)" for an unbounded side rather than omitting it.
type DateWindow struct {
	From string `json:"from_date"`
	To   string `json:"to_date"`
}

// Summary is the canonical result record of a reconciliation run,
// independent of which response shape it was extracted from.
type Summary struct {
	TotalOrdersScanned      int        `json:"total_orders_docs_scanned"`
	OrdersWithTransactionID int        `json:"orders_with_transaction_id"`
	TotalPaymentsRows       int        `json:"total_payments_rows"`
	FilterStatus            string     `json:"payment_status_filter"`
	CaseInsensitiveIDs      bool       `json:"case_insensitive_ids"`
	MatchedCount            int        `json:"matched_distinct_payment_ids"`
	NACount                 int        `json:"na_count"`
	MaxFetch                int        `json:"max_fetch"`
	DateWindow              DateWindow `json:"date_window"`
	NAStatusFilter          string     `json:"na_status_filter,omitempty"`
}

// ReconcileResult is the full payload of the direct reconcile endpoint.
type ReconcileResult struct {
	Summary      Summary             `json:"summary"`
	NAPaymentIDs []string            `json:"na_payment_ids"`
	NAByStatus   map[string][]string `json:"na_by_status,omitempty"`
}
