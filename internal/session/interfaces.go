package session

import (
	"context"
	"encoding/json"
)

// AgentRunner is the one upstream dependency a conversation needs: something
// that takes a natural-language message and returns the agent's raw result.
// api.Client satisfies it; tests substitute a mock.
type AgentRunner interface {
	RunAgent(ctx context.Context, message string) (json.RawMessage, error)
}
