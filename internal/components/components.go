package components

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/go-playground/validator/v10"
)

var (
	ErrDeclined  = errors.New("action declined")
	ErrInFlight  = errors.New("request already in progress")
	ErrDestroyed = errors.New("component destroyed")
)

// Notification messages shown to the user.
const (
	MsgLoginSuccess      = "Login successful."
	MsgLoginFailed       = "Login unsuccessful"
	MsgRegisterSuccess   = "User registration successful"
	MsgProfileUpdated    = "Profile updated successfully"
	MsgProfileFailed     = "Failed to update profile"
	MsgDeleteFailed      = "Failed to delete user. Please try again later."
	MsgFavoriteAdded     = "Movie added to favorites"
	MsgFavoriteRemoved   = "Movie removed from favorites"
	MsgFavoriteFailed    = "Failed to update favorites"
	MsgDeleteConfirm     = "Are you sure you want to delete your account? This action cannot be undone."
	NotificationAction   = "OK"
	NotificationDuration = 2000 * time.Millisecond
	DeleteFailedDuration = 3000 * time.Millisecond
)

// Routes the components navigate to.
const (
	RouteWelcome = "welcome"
	RouteMovies  = "movies"
	RouteProfile = "profile"
)

// DialogWidth is the fixed width, in terminal cells, of the login and registration dialogs.
const DialogWidth = 40

// Notification is a transient, dismissible message.
type Notification struct {
	Message  string
	Action   string
	Duration time.Duration
}

// Notifier shows notifications.
type Notifier interface {
	Notify(n Notification)
}

// Navigator switches the active page.
type Navigator interface {
	Navigate(route string) error
}

// Dialog is the dialog hosting a form.
type Dialog interface {
	Close()
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// DialogKind identifies a dialog the welcome page can open.
type DialogKind int

const (
	LoginDialog DialogKind = iota
	RegistrationDialog
)

func (k DialogKind) String() string {
	switch k {
	case LoginDialog:
		return "login"
	case RegistrationDialog:
		return "registration"
	default:
		return fmt.Sprintf("DialogKind(%d)", int(k))
	}
}

// DialogOptions configures an opened dialog.
type DialogOptions struct {
	Width int
}

// DialogOpener opens dialogs.
type DialogOpener interface {
	Open(kind DialogKind, opts DialogOptions)
}

// Deps are the collaborators shared by every component.
//
// Nil Notifier, Navigator, Dialog and Opener are ignored; a nil Confirmer declines everything.
type Deps struct {
	Service   services.Service
	Store     models.SessionStore
	Notifier  Notifier
	Navigator Navigator
	Dialog    Dialog
	Confirmer Confirmer
	Opener    DialogOpener
	Logger    *log.Logger
}

var validate = validator.New()

// lifetime ties a component to a cancellable context and guards against double submission.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
	busy   atomic.Bool
	deps   Deps
}

func (l *lifetime) init(parent context.Context, deps Deps) {
	if parent == nil {
		parent = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	l.ctx, l.cancel = context.WithCancel(parent)
	l.deps = deps
}

// Destroy cancels every request the component has in flight. Later calls fail with [ErrDestroyed].
func (l *lifetime) Destroy() {
	l.cancel()
}

// Busy reports whether an action is running.
func (l *lifetime) Busy() bool {
	return l.busy.Load()
}

// begin claims the component for one action. The returned func releases it.
func (l *lifetime) begin() (context.Context, func(), error) {
	if err := l.alive(); err != nil {
		return nil, nil, err
	}
	if !l.busy.CompareAndSwap(false, true) {
		return nil, nil, ErrInFlight
	}
	return l.ctx, func() { l.busy.Store(false) }, nil
}

func (l *lifetime) alive() error {
	if l.ctx.Err() != nil {
		return ErrDestroyed
	}
	return nil
}

func (l *lifetime) notify(message string, duration time.Duration) {
	if l.deps.Notifier == nil {
		return
	}
	l.deps.Notifier.Notify(Notification{Message: message, Action: NotificationAction, Duration: duration})
}

// navigate switches pages; failures are only logged.
func (l *lifetime) navigate(route string) {
	if l.deps.Navigator == nil {
		return
	}
	l.deps.Logger.Debug("navigating", "route", route)
	if err := l.deps.Navigator.Navigate(route); err != nil {
		l.deps.Logger.Error("navigation failed", "route", route, "error", err)
	}
}

func (l *lifetime) closeDialog() {
	if l.deps.Dialog != nil {
		l.deps.Dialog.Close()
	}
}

// validationMessage renders validator errors as one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "alphanum":
			parts = append(parts, fe.Field()+" contains non alphanumeric characters - not allowed.")
		case "email":
			parts = append(parts, fe.Field()+" does not appear to be valid")
		case "datetime":
			parts = append(parts, fmt.Sprintf("%s must be a date like %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
