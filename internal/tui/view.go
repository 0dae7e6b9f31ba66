package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mbalaz/dennyzen/internal/session"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateLoading:
		content = m.viewLoading()
	case StateFailed:
		content = m.viewFailed()
	case StateConfirmRefresh:
		if m.form != nil {
			content = m.form.View()
		}
	default:
		content = m.viewInspiration()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.help.View(m),
	)

	return docStyle.Render(ui)
}

func (m Model) viewHeader() string {
	return headerStyle.Render(fmt.Sprintf("Denný Zen %s", m.sess.Today()))
}

func (m Model) viewLoading() string {
	return statusStyle.Render(m.spinner.View() + " Premýšľam...")
}

func (m Model) viewFailed() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		statusStyle.Render(dangerStyle.Render("Ups, niečo sa pokazilo")),
		sectionBodyStyle.Render(session.UserMessage(m.sess.Err())),
	)
}

func (m Model) viewInspiration() string {
	current, ok := m.sess.Current()
	if !ok {
		return statusStyle.Render("Žiadna inšpirácia na dnes.")
	}

	parts := []string{
		mottoStyle.Render(fmt.Sprintf("\"%s\"", current.Motto)),
		sectionTitleStyle.Render("Myšlienka dňa"),
		sectionBodyStyle.Render(current.Thought),
		sectionTitleStyle.Render("Akčná motivácia"),
		sectionBodyStyle.Render(current.Motivation),
		statusStyle.Render(m.queueStatus()),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) queueStatus() string {
	status := ""
	if remaining := m.sess.Remaining(); remaining > 0 {
		status = fmt.Sprintf("V zásobe: %s", strings.Repeat("●", remaining))
	} else {
		status = "Dnešná dávka je vyčerpaná. Nová inšpirácia príde zajtra."
	}

	if m.copied {
		status += "  ✓ skopírované"
	}
	return status
}
