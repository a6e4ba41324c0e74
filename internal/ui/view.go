package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) render() string {
	var page string
	switch m.view {
	case WelcomeView:
		page = m.renderWelcome()
	case MoviesView:
		page = m.renderMovies()
	case DetailView:
		page = m.renderDetail()
	case ProfileView:
		page = m.renderProfile()
	case EditView:
		page = m.renderEdit()
	}

	switch {
	case m.confirm != nil:
		page = m.overlay(m.renderConfirm(), 0)
	case m.dialog != nil:
		page = m.overlay(m.dialog.form.view(), m.dialog.width)
	}

	if m.toast != nil {
		page = fmt.Sprintf("%s\n%s", page, m.renderToast())
	}
	return page
}

// overlay centers content in a bordered box. A zero width lets the box fit its content.
func (m *Model) overlay(content string, width int) string {
	box := styles.dialog
	if width > 0 {
		box = box.Width(width)
	}
	rendered := box.Render(content)
	if m.width == 0 || m.height == 0 {
		return rendered
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

func (m *Model) renderWelcome() string {
	title := styles.title.Render("Welcome to myFlix")
	body := "Browse the catalog, keep a list of favorites and manage your account."
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.login, m.keys.signup, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderMovies() string {
	if m.err != nil {
		return m.renderError()
	}
	if !m.loaded {
		return styles.warn.Render("Loading movies...")
	}
	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.enter, m.keys.favorite, m.keys.genre, m.keys.director, m.keys.profile, m.keys.logout, m.keys.quit,
	})
	return fmt.Sprintf("%s\n\n%s", m.movies.View(), helpView)
}

func (m *Model) renderDetail() string {
	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.back, m.keys.favorite, m.keys.genre, m.keys.director, m.keys.quit,
	})
	body := m.detailText
	if m.err != nil {
		body = fmt.Sprintf("%s\n%s", body, styles.err.Render(m.err.Error()))
	}
	return fmt.Sprintf("%s\n\n%s", body, helpView)
}

func (m *Model) renderProfile() string {
	title := styles.title.Render("Profile")
	if m.profileView == nil {
		if m.err != nil {
			return fmt.Sprintf("%s\n%s", title, m.renderError())
		}
		return fmt.Sprintf("%s\n%s", title, styles.warn.Render("Loading profile..."))
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render("Username:"), m.profileView.Username))
	b.WriteString(fmt.Sprintf("%s    %s\n", styles.label.Render("Email:"), m.profileView.Email))
	if m.profileView.Birthday != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render("Birthday:"), m.profileView.Birthday))
	}
	b.WriteString(fmt.Sprintf("\nFavorites (%d):\n", len(m.profileView.FavoriteMovies)))
	for i, movie := range m.profileView.FavoriteMovies {
		cursor := "  "
		if i == m.cursor {
			cursor = styles.ok.Render("> ")
		}
		b.WriteString(cursor + movie.Title + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + styles.err.Render(m.err.Error()) + "\n")
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.up, m.keys.down, m.keys.remove, m.keys.edit, m.keys.delete, m.keys.back, m.keys.logout, m.keys.quit,
	})
	return fmt.Sprintf("%s\n%s", b.String(), helpView)
}

func (m *Model) renderEdit() string {
	if m.edit == nil {
		return ""
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.prev, m.keys.enter, m.keys.back})
	return fmt.Sprintf("%s\n%s", m.edit.view(), helpView)
}

func (m *Model) renderConfirm() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n\n%s", styles.warn.Render(m.confirm.prompt), helpView)
}

func (m *Model) renderToast() string {
	text := m.toast.Message
	if m.toast.Action != "" {
		text = fmt.Sprintf("%s  %s", text, styles.help.Render("ctrl+o "+m.toast.Action))
	}
	return styles.toast.Render(text)
}

func (m *Model) renderError() string {
	return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
}
