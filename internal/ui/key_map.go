package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	next     key.Binding
	prev     key.Binding
	enter    key.Binding
	back     key.Binding
	yes      key.Binding
	no       key.Binding
	login    key.Binding
	signup   key.Binding
	favorite key.Binding
	genre    key.Binding
	director key.Binding
	profile  key.Binding
	edit     key.Binding
	remove   key.Binding
	delete   key.Binding
	reload   key.Binding
	logout   key.Binding
	dismiss  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		login:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in")),
		signup:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign up")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favorite")),
		genre:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genre")),
		director: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "director")),
		profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove favorite")),
		delete:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete account")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		dismiss:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "OK")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.favorite, k.genre, k.director, k.profile},
		{k.edit, k.remove, k.delete, k.logout},
		{k.dismiss, k.quit},
	}
}
