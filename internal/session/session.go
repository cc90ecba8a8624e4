// Package session owns the state of one operator↔agent conversation: the
// ordered transcript, the single-request-in-flight gate, and the most recent
// successfully normalized Summary.
//
// A Session is not safe for concurrent use; it is driven from one event loop
// (the chat TUI's update loop, or a test). Submit hands back a closure that
// performs the network call, so the blocking work runs wherever the caller
// schedules it while all state mutation stays on the loop.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/diffrun/recon/internal/agent"
	"github.com/diffrun/recon/internal/api"
	"github.com/diffrun/recon/internal/model"
)

// Status is the conversation state machine.
type Status int

const (
	// StatusIdle means no request is in flight.
	StatusIdle Status = iota
	// StatusAwaitingAgent means exactly one request is in flight; further
	// submissions are no-ops until it resolves.
	StatusAwaitingAgent
)

// Role identifies who produced a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one entry in the conversation transcript.
type Turn struct {
	Role Role
	Text string
	// Raw holds the unmodified agent result for assistant turns, when one
	// was received.
	Raw json.RawMessage
	// IsError marks error-labeled assistant turns (transport or timeout).
	IsError bool
}

// Result carries a resolved agent call back into the session. The
// generation tag lets Apply discard resolutions that arrive after the
// request they belong to was superseded or the session closed.
type Result struct {
	Err error
	Raw json.RawMessage
	gen int
}

// DefaultAgentTimeout bounds one agent round trip.
const DefaultAgentTimeout = 120 * time.Second

// Session holds the conversation state for one chat. Create one per chat
// window or test instance; nothing here is global.
type Session struct {
	runner  AgentRunner
	cancel  context.CancelFunc
	last    *model.Summary
	turns   []Turn
	timeout time.Duration
	status  Status
	gen     int
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout overrides the per-request agent deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// New creates an idle session backed by the given runner.
func New(runner AgentRunner, opts ...Option) *Session {
	s := &Session{
		runner:  runner,
		timeout: DefaultAgentTimeout,
		turns:   []Turn{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit starts a new agent request for the given input. The user turn is
// appended immediately. The returned closure performs the call under the
// armed deadline and must be invoked exactly once (typically as a tea.Cmd);
// feed its Result to Apply.
//
// Returns ok=false without touching any state when the input is blank, a
// request is already in flight, or the session is closed.
func (s *Session) Submit(ctx context.Context, input string) (run func() Result, ok bool) {
	input = strings.TrimSpace(input)
	if input == "" || s.closed || s.status == StatusAwaitingAgent {
		return nil, false
	}

	s.turns = append(s.turns, Turn{Role: RoleUser, Text: input})
	s.status = StatusAwaitingAgent
	s.gen++

	gen := s.gen
	runner := s.runner
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	s.cancel = cancel

	return func() Result {
		defer cancel()
		raw, err := runner.RunAgent(callCtx, input)
		return Result{gen: gen, Raw: raw, Err: err}
	}, true
}

// Apply resolves an in-flight request, appending exactly one assistant turn:
// a short summary line when normalization succeeds, a bounded raw excerpt
// when it does not, or an error-labeled turn on transport failure. Stale and
// post-close results are dropped without appending anything.
func (s *Session) Apply(res Result) *Turn {
	if s.closed || res.gen != s.gen || s.status != StatusAwaitingAgent {
		return nil
	}
	s.status = StatusIdle
	s.cancel = nil

	var turn Turn
	switch {
	case res.Err != nil:
		s.last = nil
		turn = Turn{Role: RoleAssistant, Text: errorText(res.Err), IsError: true}
	default:
		if summary, ok := agent.ExtractSummary(res.Raw); ok {
			s.last = summary
			turn = Turn{Role: RoleAssistant, Text: SummaryLine(summary), Raw: res.Raw}
		} else {
			// Response received but in no recognized shape: degrade to an
			// excerpt, never fail the turn.
			s.last = nil
			turn = Turn{Role: RoleAssistant, Text: agent.Excerpt(res.Raw, agent.ExcerptLimit), Raw: res.Raw}
		}
	}

	s.turns = append(s.turns, turn)
	return &s.turns[len(s.turns)-1]
}

// Close tears the session down, cancelling any in-flight request. After
// Close no further turns are appended.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Turns returns the transcript in submission order.
func (s *Session) Turns() []Turn {
	return s.turns
}

// Status reports whether a request is in flight.
func (s *Session) Status() Status {
	return s.status
}

// LastSummary returns the most recent successfully normalized Summary, or
// nil when the latest turn failed or degraded.
func (s *Session) LastSummary() *model.Summary {
	return s.last
}

// SummaryLine renders the one-line transcript form of a Summary.
func SummaryLine(s *model.Summary) string {
	return fmt.Sprintf("Reconciled %d payment rows: %d matched, %d NA.",
		s.TotalPaymentsRows, s.MatchedCount, s.NACount)
}

func errorText(err error) string {
	if api.IsTimeout(err) {
		return "Request timed out."
	}
	return err.Error()
}
