package model

// Bounds for the payment fetch cap. The backend rejects values outside its
// own range, so the client clamps before a request is ever built.
const (
	DefaultMaxFetch = 50000
	MinMaxFetch     = 1
	MaxMaxFetch     = 100000
)

// ReconcileQuery carries the user-facing filter fields for a reconciliation
// or CSV export request. Empty string fields mean "unbounded/all"; the
// request builder omits them entirely.
type ReconcileQuery struct {
	FromDate           string
	ToDate             string
	Status             string
	CaseInsensitiveIDs bool
	MaxFetch           int
	// OrdersBatchSize is passed through to the backend when set; zero means
	// "let the server pick".
	OrdersBatchSize int
}

// Normalized returns a copy with MaxFetch defaulted and clamped into the
// accepted range. Date ordering is deliberately not validated here; the
// backend answers whatever window it is given.
func (q ReconcileQuery) Normalized() ReconcileQuery {
	if q.MaxFetch == 0 {
		q.MaxFetch = DefaultMaxFetch
	}
	if q.MaxFetch < MinMaxFetch {
		q.MaxFetch = MinMaxFetch
	}
	if q.MaxFetch > MaxMaxFetch {
		q.MaxFetch = MaxMaxFetch
	}
	return q
}
