// Package export writes client-side artifacts derived from reconciliation
// results.
package export

import (
	"fmt"
	"io"
	"os"
)

// NAHeader is the literal first line of the NA payment-ID artifact.
const NAHeader = "payment_id"

// WriteNAPaymentIDs writes the unmatched payment IDs as a single-column CSV:
// header line then one ID per line. Razorpay payment IDs contain no commas
// or newlines, so no quoting is needed.
func WriteNAPaymentIDs(w io.Writer, ids []string) error {
	if _, err := fmt.Fprintln(w, NAHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return fmt.Errorf("failed to write payment id: %w", err)
		}
	}
	return nil
}

// SaveNAPaymentIDs writes the artifact to path, creating or truncating it.
func SaveNAPaymentIDs(path string, ids []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteNAPaymentIDs(f, ids); err != nil {
		return err
	}
	return f.Close()
}
