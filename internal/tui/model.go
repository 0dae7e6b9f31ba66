package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mbalaz/dennyzen/internal/session"
)

type SessionState int

const (
	StateLoading SessionState = iota
	StateViewing
	StateFailed
	StateConfirmRefresh
)

// advanceDelay keeps the queue advance perceptible. Advancing is synchronous;
// the delay is purely presentational.
const advanceDelay = 400 * time.Millisecond

type Model struct {
	sess *session.Controller

	state          SessionState
	keys           KeyMap
	help           help.Model
	spinner        spinner.Model
	form           *huh.Form
	confirmRefresh bool
	copied         bool
	quitting       bool
	width          int
	height         int
}

func NewModel(sess *session.Controller) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		sess:    sess,
		state:   StateLoading,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
	}
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateFailed:
		return []key.Binding{m.keys.Retry, m.keys.Quit}
	case StateViewing:
		keys := []key.Binding{m.keys.Refresh, m.keys.Share, m.keys.Quit, m.keys.Help}
		if m.sess.CanAdvance() {
			keys = append([]key.Binding{m.keys.Next}, keys...)
		}
		return keys
	default:
		return []key.Binding{m.keys.Quit}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Next, m.keys.Refresh, m.keys.Share},
		{m.keys.Retry, m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startSession(m.sess))
}

// Messages

type sessionDoneMsg struct {
	err error
}

type advanceTickMsg struct{}

type copiedExpiredMsg struct{}

// Commands

func startSession(sess *session.Controller) tea.Cmd {
	return func() tea.Msg {
		return sessionDoneMsg{err: sess.Start(context.Background())}
	}
}

func refreshSession(sess *session.Controller) tea.Cmd {
	return func() tea.Msg {
		return sessionDoneMsg{err: sess.Refresh(context.Background())}
	}
}

func advanceTick() tea.Cmd {
	return tea.Tick(advanceDelay, func(time.Time) tea.Msg {
		return advanceTickMsg{}
	})
}

func expireCopied() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return copiedExpiredMsg{}
	})
}

func newRefreshForm(confirm *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("refresh").
				Title("Nahradiť dnešnú dávku inšpirácií?").
				Affirmative("Áno").
				Negative("Nie").
				Value(confirm),
		),
	)
}
