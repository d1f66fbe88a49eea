package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/poiesic/asha/chat"
)

// Responder is the TUI-facing subset of the chat handler.
type Responder interface {
	Respond(ctx context.Context, message string, history []chat.Turn) (string, error)
}

// replyMsg carries a finished reply back into the update loop.
type replyMsg struct {
	query string
	reply string
	err   error
}

// Model is the Bubble Tea model for the chat window.
type Model struct {
	ctx        context.Context
	responder  Responder
	title      string
	welcome    string
	examples   []string
	nextPrompt int
	input      textinput.Model
	viewport   viewport.Model
	transcript []chat.Turn
	status     string
	waiting    bool
	ready      bool
}

// New creates a new chat window. Tab cycles the example prompts into the
// input box.
func New(ctx context.Context, responder Responder, title, welcome string, examples []string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		ctx:       ctx,
		responder: responder,
		title:     title,
		welcome:   welcome,
		examples:  examples,
		input:     ti,
		viewport:  vp,
		status:    "Ready. Tab for example questions, Ctrl+C to quit.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and reply events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refresh()
		return m, nil
	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.transcript = append(m.transcript, chat.Turn{Role: chat.RoleAssistant, Content: msg.reply})
		m.status = fmt.Sprintf("Answered %q", msg.query)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.waiting {
				return m, nil
			}
			history := append([]chat.Turn(nil), m.transcript...)
			m.transcript = append(m.transcript, chat.Turn{Role: chat.RoleUser, Content: q})
			m.input.Reset()
			m.waiting = true
			m.status = "Thinking..."
			m.refresh()
			return m, m.respond(q, history)
		case "tab":
			if len(m.examples) > 0 {
				m.input.SetValue(m.examples[m.nextPrompt])
				m.input.CursorEnd()
				m.nextPrompt = (m.nextPrompt + 1) % len(m.examples)
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) respond(query string, history []chat.Turn) tea.Cmd {
	ctx := m.ctx
	responder := m.responder
	return func() tea.Msg {
		reply, err := responder.Respond(ctx, query, history)
		return replyMsg{query: query, reply: reply, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(m.title)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	b.WriteString(m.welcome)
	if len(m.examples) > 0 {
		b.WriteString("\n\nTry asking:\n")
		for _, example := range m.examples {
			b.WriteString(exampleStyle.Render("  " + example))
			b.WriteString("\n")
		}
	}
	for _, turn := range m.transcript {
		b.WriteString("\n")
		switch turn.Role {
		case chat.RoleUser:
			b.WriteString(userStyle.Render("You: "))
		default:
			b.WriteString(assistantStyle.Render(m.title + ": "))
		}
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// Transcript returns the conversation so far.
func (m Model) Transcript() []chat.Turn {
	return m.transcript
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	exampleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)
