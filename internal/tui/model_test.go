package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffrun/recon/internal/session"
)

func TestRenderTranscriptEmpty(t *testing.T) {
	out := RenderTranscript(nil, 80)
	assert.Contains(t, out, "Ask for a reconciliation run")
}

func TestRenderTranscriptOrderAndLabels(t *testing.T) {
	turns := []session.Turn{
		{Role: session.RoleUser, Text: "reconcile august"},
		{Role: session.RoleAssistant, Text: "Reconciled 450 payment rows: 447 matched, 3 NA."},
		{Role: session.RoleUser, Text: "and july?"},
		{Role: session.RoleAssistant, Text: "Request timed out.", IsError: true},
	}

	out := RenderTranscript(turns, 0)

	// Turns appear in submission order.
	posUser := mustIndex(t, out, "reconcile august")
	posReply := mustIndex(t, out, "447 matched")
	posSecond := mustIndex(t, out, "and july?")
	posTimeout := mustIndex(t, out, "Request timed out.")
	assert.Less(t, posUser, posReply)
	assert.Less(t, posReply, posSecond)
	assert.Less(t, posSecond, posTimeout)

	assert.Contains(t, out, "You")
	assert.Contains(t, out, "Agent (error)")
}

func mustIndex(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "expected %q in transcript output", needle)
	return idx
}
