package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diffrun/recon/internal/session"
)

// Run starts the chat program and blocks until the operator quits or ctx is
// cancelled. The session is closed on the way out, so an in-flight agent
// call can never append a turn after teardown.
func Run(ctx context.Context, sess *session.Session) error {
	defer sess.Close()

	p := tea.NewProgram(
		NewModel(ctx, sess),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
