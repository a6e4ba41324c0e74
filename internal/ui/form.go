package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field describes one text input of a [form].
type field struct {
	label       string
	placeholder string
	secret      bool
	value       string
}

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	title      string
	labels     []string
	inputs     []textinput.Model
	focus      int
	width      int
	submitting bool
	err        string
}

func newForm(title string, width int, fields ...field) *form {
	f := &form{title: title, width: width}
	for _, fd := range fields {
		ti := textinput.New()
		ti.Placeholder = fd.placeholder
		ti.Prompt = "> "
		ti.CharLimit = 64
		if width > 8 {
			ti.Width = width - 8
		}
		if fd.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(fd.value)
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, ti)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// value returns the trimmed value of the i-th input. Secret inputs are returned untrimmed.
func (f *form) value(i int) string {
	if f.inputs[i].EchoMode == textinput.EchoPassword {
		return f.inputs[i].Value()
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) last() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// update handles navigation keys and forwards the rest to the focused input. submit reports an enter on the last field.
func (f *form) update(msg tea.Msg, keys keyMap) (cmd tea.Cmd, submit bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.enter):
			if f.last() {
				return nil, true
			}
			return f.move(1), false
		case key.Matches(km, keys.next):
			return f.move(1), false
		case key.Matches(km, keys.prev):
			return f.move(-1), false
		}
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n")
	for i, ti := range f.inputs {
		b.WriteString(styles.label.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(ti.View())
		b.WriteString("\n\n")
	}
	if f.submitting {
		b.WriteString(styles.warn.Render("Submitting..."))
	} else if f.err != "" {
		b.WriteString(styles.err.Render(f.err))
	}
	return b.String()
}
