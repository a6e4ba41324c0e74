package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/components"
)

var (
	_ components.Notifier  = (*cliNotifier)(nil)
	_ components.Navigator = (*cliNavigator)(nil)
	_ components.Confirmer = (*stdinConfirmer)(nil)
	_ components.Confirmer = assumeYes{}
)

// cliNotifier prints notifications as plain lines.
type cliNotifier struct {
	out io.Writer
}

func (n *cliNotifier) Notify(note components.Notification) {
	fmt.Fprintln(n.out, note.Message)
}

// cliNavigator has no pages to switch; routes are only logged.
type cliNavigator struct {
	logger *log.Logger
}

func (n *cliNavigator) Navigate(route string) error {
	n.logger.Debug("navigation requested", "route", route)
	return nil
}

// stdinConfirmer asks on out and reads the answer from in. Anything but y or yes declines.
type stdinConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (c *stdinConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(trimLine(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// assumeYes accepts every prompt (--yes).
type assumeYes struct{}

func (assumeYes) Confirm(string) bool { return true }

func trimLine(s string) string {
	return strings.TrimRight(s, "\r\n")
}
