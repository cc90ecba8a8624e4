// Package tui implements the interactive chat view over a reconciliation
// conversation session.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diffrun/recon/internal/cli"
	"github.com/diffrun/recon/internal/session"
)

// Model holds the chat TUI state. All session mutation happens inside
// Update, so the single-request gate in session.Session is never raced.
type Model struct {
	ctx     context.Context
	session *session.Session
	input   textinput.Model
	vp      viewport.Model
	spin    spinner.Model
	width   int
	height  int
	ready   bool
}

// NewModel creates the chat model for an existing session. The context
// bounds every agent call the model starts.
func NewModel(ctx context.Context, sess *session.Session) Model {
	ti := textinput.New()
	ti.Placeholder = `e.g. "reconcile 2025-08-01 to 2025-08-31 captured only"`
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		session: sess,
		input:   ti,
		spin:    sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.session.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refreshTranscript()

	case agentResultMsg:
		m.session.Apply(msg.res)
		m.resize()
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if m.session.Status() == session.StatusAwaitingAgent {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit starts an agent request for the current input. Gating (blank
// input, request already in flight) lives in the session; a refused submit
// leaves the input intact so the operator can retry.
func (m *Model) submit() tea.Cmd {
	run, ok := m.session.Submit(m.ctx, m.input.Value())
	if !ok {
		return nil
	}
	m.input.Reset()
	m.refreshTranscript()
	return tea.Batch(
		m.spin.Tick,
		func() tea.Msg { return agentResultMsg{res: run()} },
	)
}

func (m *Model) resize() {
	chrome := 4 // title, status line, input, spacing
	if panel := m.summaryPanel(); panel != "" {
		chrome += lipgloss.Height(panel)
	}
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	if !m.ready {
		m.vp = viewport.New(m.width, h)
	} else {
		m.vp.Width = m.width
		m.vp.Height = h
	}
}

func (m *Model) refreshTranscript() {
	m.vp.SetContent(RenderTranscript(m.session.Turns(), m.width))
	m.vp.GotoBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting up..."
	}

	sections := []string{
		titleStyle.Render("Reconciliation chat"),
		m.vp.View(),
	}
	if panel := m.summaryPanel(); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, m.statusLine(), m.input.View())
	return strings.Join(sections, "\n")
}

func (m Model) statusLine() string {
	if m.session.Status() == session.StatusAwaitingAgent {
		return m.spin.View() + statusStyle.Render("waiting for agent...")
	}
	return statusStyle.Render("enter to send · esc to quit")
}

// summaryPanel renders the most recent normalized Summary, displayed
// persistently alongside the scrolling transcript.
func (m Model) summaryPanel() string {
	s := m.session.LastSummary()
	if s == nil {
		return ""
	}
	return summaryBoxStyle.Render(cli.RenderSummary(s))
}

// RenderTranscript renders the conversation turns in order. Pure function
// so it can be tested without a running program.
func RenderTranscript(turns []session.Turn, width int) string {
	if len(turns) == 0 {
		return statusStyle.Render("Ask for a reconciliation run to get started.")
	}

	body := lipgloss.NewStyle()
	if width > 0 {
		body = body.Width(width)
	}

	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch {
		case turn.Role == session.RoleUser:
			b.WriteString(userStyle.Render("You"))
		case turn.IsError:
			b.WriteString(errorStyle.Render("Agent (error)"))
		default:
			b.WriteString(assistantStyle.Render("Agent"))
		}
		b.WriteString("\n")
		text := turn.Text
		if turn.IsError {
			text = errorStyle.Render(text)
		}
		b.WriteString(body.Render(text))
	}
	return b.String()
}
