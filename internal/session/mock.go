package session

import (
	"context"
	"encoding/json"
)

// MockRunner is a test double for AgentRunner.
type MockRunner struct {
	// RunAgentFn can be set by tests to control behavior.
	RunAgentFn func(ctx context.Context, message string) (json.RawMessage, error)

	// Call tracking.
	RunAgentCalls []string
}

// NewMockRunner creates a mock agent runner.
func NewMockRunner() *MockRunner {
	return &MockRunner{RunAgentCalls: []string{}}
}

// RunAgent implements AgentRunner.
func (m *MockRunner) RunAgent(ctx context.Context, message string) (json.RawMessage, error) {
	m.RunAgentCalls = append(m.RunAgentCalls, message)

	if m.RunAgentFn != nil {
		return m.RunAgentFn(ctx, message)
	}

	return json.RawMessage(`{}`), nil
}
