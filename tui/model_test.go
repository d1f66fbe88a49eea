package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/asha/chat"
)

type responderFunc func(ctx context.Context, message string, history []chat.Turn) (string, error)

func (f responderFunc) Respond(ctx context.Context, message string, history []chat.Turn) (string, error) {
	return f(ctx, message, history)
}

func newTestModel(fn responderFunc) Model {
	m := New(context.Background(), fn, "Asha", "Welcome!", []string{"first example", "second example"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return updated.(Model)
}

func TestView_BeforeResize(t *testing.T) {
	m := New(context.Background(), nil, "Asha", "Welcome!", nil)
	assert.Equal(t, "Loading...", m.View())
}

func TestView_ShowsWelcomeAndExamples(t *testing.T) {
	m := newTestModel(nil)
	view := m.View()
	assert.Contains(t, view, "Asha")
	assert.Contains(t, view, "Welcome!")
	assert.Contains(t, view, "first example")
}

func TestUpdate_EnterSendsQuestion(t *testing.T) {
	var gotHistory []chat.Turn
	m := newTestModel(func(_ context.Context, message string, history []chat.Turn) (string, error) {
		gotHistory = history
		return "reply to " + message, nil
	})

	m.input.SetValue("  any events?  ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Empty(t, m.input.Value())
	require.Len(t, m.Transcript(), 1)
	assert.Equal(t, chat.Turn{Role: chat.RoleUser, Content: "any events?"}, m.Transcript()[0])

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.False(t, m.waiting)
	require.Len(t, m.Transcript(), 2)
	assert.Equal(t, chat.Turn{Role: chat.RoleAssistant, Content: "reply to any events?"}, m.Transcript()[1])
	assert.Empty(t, gotHistory)
	assert.Contains(t, m.renderTranscript(), "reply to any events?")
}

func TestUpdate_EnterIgnoresBlankAndBusy(t *testing.T) {
	m := newTestModel(func(context.Context, string, []chat.Turn) (string, error) {
		t.Fatal("responder should not be called")
		return "", nil
	})

	m.input.SetValue("   ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, updated.(Model).Transcript())

	m.waiting = true
	m.input.SetValue("question")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestUpdate_ReplyError(t *testing.T) {
	m := newTestModel(nil)
	m.waiting = true

	updated, _ := m.Update(replyMsg{query: "q", err: errors.New("index not built")})
	m = updated.(Model)
	assert.False(t, m.waiting)
	assert.Equal(t, "Error: index not built", m.status)
	assert.Empty(t, m.Transcript())
}

func TestUpdate_TabCyclesExamples(t *testing.T) {
	m := newTestModel(nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, "first example", m.input.Value())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, "second example", m.input.Value())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, "first example", m.input.Value())
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
