package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/myflix/internal/components"
)

var (
	_ components.Notifier     = (*bridge)(nil)
	_ components.Navigator    = (*bridge)(nil)
	_ components.Dialog       = (*bridge)(nil)
	_ components.DialogOpener = (*bridge)(nil)
	_ components.Confirmer    = (*bridge)(nil)
)

// bridge carries component side effects into the update loop.
type bridge struct {
	ctx     context.Context
	effects chan tea.Msg
}

func newBridge(ctx context.Context) *bridge {
	return &bridge{ctx: ctx, effects: make(chan tea.Msg, 32)}
}

func (b *bridge) send(msg tea.Msg) bool {
	select {
	case b.effects <- msg:
		return true
	case <-b.ctx.Done():
		return false
	}
}

func (b *bridge) Notify(n components.Notification) {
	b.send(notifyMsg(n))
}

func (b *bridge) Navigate(route string) error {
	switch route {
	case components.RouteWelcome, components.RouteMovies, components.RouteProfile:
	default:
		return fmt.Errorf("unknown route %q", route)
	}
	if !b.send(navigateMsg{route: route}) {
		return b.ctx.Err()
	}
	return nil
}

func (b *bridge) Close() {
	b.send(closeDialogMsg{})
}

func (b *bridge) Open(kind components.DialogKind, opts components.DialogOptions) {
	b.send(openDialogMsg{kind: kind, opts: opts})
}

// Confirm blocks the calling command until the user answers the prompt in [ConfirmView].
func (b *bridge) Confirm(prompt string) bool {
	reply := make(chan bool, 1)
	if !b.send(confirmMsg{prompt: prompt, reply: reply}) {
		return false
	}
	select {
	case answer := <-reply:
		return answer
	case <-b.ctx.Done():
		return false
	}
}

// wait returns a command delivering the next side effect.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.effects:
			return effectMsg{msg}
		case <-b.ctx.Done():
			return nil
		}
	}
}
