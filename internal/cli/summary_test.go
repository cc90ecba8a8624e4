package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffrun/recon/internal/model"
)

func TestRenderSummary(t *testing.T) {
	s := &model.Summary{
		TotalOrdersScanned:      1200,
		OrdersWithTransactionID: 1100,
		TotalPaymentsRows:       450,
		FilterStatus:            "(ALL)",
		MatchedCount:            447,
		NACount:                 3,
		MaxFetch:                50000,
		DateWindow:              model.DateWindow{From: "2025-08-01", To: "2025-08-31"},
		NAStatusFilter:          "captured",
	}

	out := RenderSummary(s)

	assert.Contains(t, out, "450")
	assert.Contains(t, out, "447")
	assert.Contains(t, out, "NA payments")
	assert.Contains(t, out, "2025-08-01")
	assert.Contains(t, out, "captured")
	assert.NotContains(t, out, "case-insensitive", "flag rows only appear when set")
}

func TestRenderSummaryUnboundedWindow(t *testing.T) {
	out := RenderSummary(&model.Summary{})
	assert.Contains(t, out, "(all-time)")
}
