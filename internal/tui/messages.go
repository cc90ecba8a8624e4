package tui

import "github.com/diffrun/recon/internal/session"

// agentResultMsg delivers a resolved agent call back to the update loop.
type agentResultMsg struct {
	res session.Result
}
