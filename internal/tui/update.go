package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mbalaz/dennyzen/internal/share"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case sessionDoneMsg:
		if msg.err != nil {
			m.state = StateFailed
			return m, nil
		}
		m.state = StateViewing
		return m, nil

	case advanceTickMsg:
		if _, err := m.sess.Advance(); err != nil {
			m.state = StateFailed
			return m, nil
		}
		m.state = StateViewing
		return m, nil

	case copiedExpiredMsg:
		m.copied = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == StateConfirmRefresh && m.form != nil {
		return m.updateForm(msg)
	}

	if m.state == StateLoading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == StateConfirmRefresh && m.form != nil {
		return m.updateForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.state != StateViewing || !m.sess.CanAdvance() {
			return m, nil
		}
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, advanceTick())

	case key.Matches(msg, m.keys.Refresh):
		if m.state != StateViewing {
			return m, nil
		}
		m.confirmRefresh = false
		m.form = newRefreshForm(&m.confirmRefresh)
		m.state = StateConfirmRefresh
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Share):
		if m.state != StateViewing {
			return m, nil
		}
		if current, ok := m.sess.Current(); ok {
			if err := share.Copy(current); err == nil {
				m.copied = true
				return m, expireCopied()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.state != StateFailed {
			return m, nil
		}
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, startSession(m.sess))
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		if m.confirmRefresh {
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, refreshSession(m.sess))
		}
		m.state = StateViewing
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.state = StateViewing
		return m, nil
	}

	return m, cmd
}
