// Package agent normalizes the heterogeneous response shapes the upstream
// conversational agent can return into the canonical reconciliation Summary.
//
// The agent's output shape varies with which tool path fired and with the
// conversational framework wrapping it: sometimes the tool JSON arrives
// directly under result.summary, sometimes embedded as text inside a
// chat-message array, sometimes split across multi-part content blocks.
// Extraction therefore runs an ordered chain of independent strategies in
// decreasing order of structural confidence and stops at the first success.
package agent

import (
	"encoding/json"

	"github.com/diffrun/recon/internal/model"
)

// envelope is the lenient outer decoding of an agent result. Both fields are
// kept raw; each strategy decodes only as much as it needs.
type envelope struct {
	Result   json.RawMessage `json:"result"`
	Messages json.RawMessage `json:"messages"`
}

// message is one chat turn inside a messages array. Content may be a plain
// string or an array of content parts, so it stays raw until probed.
type message struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// contentPart is one block of a multi-part message content array.
type contentPart struct {
	Text string `json:"text"`
}

// strategy attempts to pull a Summary out of an agent envelope. Strategies
// are pure and must not panic on any input.
type strategy func(env envelope) (*model.Summary, bool)

var strategies = []strategy{
	fromResultSummary,
	fromMessages,
}

// ExtractSummary attempts each extraction strategy in order and returns the
// first Summary found. It never returns an error: any unrecognized or
// malformed input yields (nil, false) and the caller falls back to showing a
// bounded excerpt of the raw result.
func ExtractSummary(raw json.RawMessage) (*model.Summary, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	for _, s := range strategies {
		if summary, ok := s(env); ok {
			return summary, true
		}
	}
	return nil, false
}

// fromResultSummary handles the already-canonical shape
// {result:{summary:{...}}}.
func fromResultSummary(env envelope) (*model.Summary, bool) {
	if len(env.Result) == 0 {
		return nil, false
	}
	var inner struct {
		Summary json.RawMessage `json:"summary"`
	}
	if err := json.Unmarshal(env.Result, &inner); err != nil {
		return nil, false
	}
	return decodeSummary(inner.Summary)
}

// fromMessages handles chat-shaped results: a messages array either at
// result.messages or at the top level. The last message is taken as
// authoritative, since earlier entries are tool and user turns.
func fromMessages(env envelope) (*model.Summary, bool) {
	msgs, ok := locateMessages(env)
	if !ok || len(msgs) == 0 {
		return nil, false
	}

	last := msgs[len(msgs)-1]

	// String content: the whole payload should be one JSON document.
	var text string
	if err := json.Unmarshal(last.Content, &text); err == nil {
		return tryParseSummary(text)
	}

	// Multi-part content: scan parts in order, first parseable summary wins.
	var parts []contentPart
	if err := json.Unmarshal(last.Content, &parts); err != nil {
		return nil, false
	}
	for _, part := range parts {
		if part.Text == "" {
			continue
		}
		if summary, ok := tryParseSummary(part.Text); ok {
			return summary, true
		}
	}
	return nil, false
}

func locateMessages(env envelope) ([]message, bool) {
	if len(env.Result) > 0 {
		var inner struct {
			Messages []message `json:"messages"`
		}
		if err := json.Unmarshal(env.Result, &inner); err == nil && inner.Messages != nil {
			return inner.Messages, true
		}
	}
	if len(env.Messages) > 0 {
		var msgs []message
		if err := json.Unmarshal(env.Messages, &msgs); err == nil {
			return msgs, true
		}
	}
	return nil, false
}

// tryParseSummary is the explicit try-parse over a text payload: success
// requires valid JSON carrying a non-null summary field.
func tryParseSummary(text string) (*model.Summary, bool) {
	var wrapper struct {
		Summary json.RawMessage `json:"summary"`
	}
	if err := json.Unmarshal([]byte(text), &wrapper); err != nil {
		return nil, false
	}
	return decodeSummary(wrapper.Summary)
}

func decodeSummary(raw json.RawMessage) (*model.Summary, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	var summary model.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, false
	}
	return &summary, true
}
