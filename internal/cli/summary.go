package cli

import (
	"fmt"
	"strings"

	"github.com/diffrun/recon/internal/model"
)

// RenderSummary renders a canonical reconciliation Summary as an aligned
// key/value block suitable for RenderBox.
func RenderSummary(s *model.Summary) string {
	rows := []struct {
		label string
		value string
	}{
		{"Payment rows fetched", fmt.Sprintf("%d", s.TotalPaymentsRows)},
		{"Orders scanned", fmt.Sprintf("%d", s.TotalOrdersScanned)},
		{"Orders with transaction ID", fmt.Sprintf("%d", s.OrdersWithTransactionID)},
		{"Matched payment IDs", fmt.Sprintf("%d", s.MatchedCount)},
		{"NA payments", fmt.Sprintf("%d", s.NACount)},
		{"Status filter", s.FilterStatus},
		{"Date window", renderWindow(s.DateWindow)},
		{"Fetch cap", fmt.Sprintf("%d", s.MaxFetch)},
	}
	if s.NAStatusFilter != "" {
		rows = append(rows, struct{ label, value string }{"NA status filter", s.NAStatusFilter})
	}
	if s.CaseInsensitiveIDs {
		rows = append(rows, struct{ label, value string }{"ID matching", "case-insensitive"})
	}

	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("%-*s", width+2, r.label)))
		b.WriteString(r.value)
	}
	return b.String()
}

func renderWindow(w model.DateWindow) string {
	from, to := w.From, w.To
	if from == "" {
		from = "(all-time)"
	}
	if to == "" {
		to = "(all-time)"
	}
	return from + " → " + to
}
