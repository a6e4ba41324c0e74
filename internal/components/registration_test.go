package components

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
)

func TestRegistrationForm(t *testing.T) {
	valid := models.Registration{Username: "moviebuff", Password: "secret", Email: "buff@example.com", Birthday: "1990-05-01"}

	t.Run("Success", func(t *testing.T) {
		h := newHarness(nil)
		form := NewRegistrationForm(context.Background(), h.deps())
		form.Form = valid

		user, err := form.RegisterUser()
		if err != nil {
			t.Fatalf("RegisterUser() error = %v", err)
		}
		if user.Username != "moviebuff" {
			t.Errorf("unexpected user %+v", user)
		}
		if h.dialog.closed != 1 {
			t.Errorf("expected dialog closed once, got %d", h.dialog.closed)
		}
		if got := h.notifier.last(t); got.Message != MsgRegisterSuccess || got.Action != "OK" || got.Duration != NotificationDuration {
			t.Errorf("unexpected notification %+v", got)
		}
		if h.store.Len() != 0 {
			t.Error("registration must not create a session")
		}
	})

	t.Run("Server Message Is Shown Verbatim", func(t *testing.T) {
		h := newHarness(nil)
		h.svc.RegisterFn = func(ctx context.Context, r models.Registration) (*models.User, error) {
			return nil, &services.APIError{StatusCode: 400, Message: "moviebuff already exists"}
		}
		form := NewRegistrationForm(context.Background(), h.deps())
		form.Form = valid

		if _, err := form.RegisterUser(); err == nil {
			t.Fatal("expected error")
		}
		if got := h.notifier.last(t).Message; got != "moviebuff already exists" {
			t.Errorf("unexpected notification %q", got)
		}
		if h.dialog.closed != 0 {
			t.Error("dialog should stay open")
		}
	})

	t.Run("Validation Failure Skips Request", func(t *testing.T) {
		h := newHarness(nil)
		form := NewRegistrationForm(context.Background(), h.deps())
		form.Form = models.Registration{Username: "bob", Password: "secret", Email: "buff@example.com"}

		if _, err := form.RegisterUser(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if h.svc.Calls("UserRegistration") != 0 {
			t.Error("expected no request")
		}
		if got := h.notifier.last(t).Message; got != "Username must be at least 5 characters" {
			t.Errorf("unexpected notification %q", got)
		}
	})

	t.Run("Response After Destroy Is Discarded", func(t *testing.T) {
		h := newHarness(nil)
		form := NewRegistrationForm(context.Background(), h.deps())
		form.Form = valid
		h.svc.RegisterFn = func(ctx context.Context, r models.Registration) (*models.User, error) {
			form.Destroy()
			return &models.User{Username: r.Username}, nil
		}

		if _, err := form.RegisterUser(); !errors.Is(err, ErrDestroyed) {
			t.Errorf("expected ErrDestroyed, got %v", err)
		}
		if h.notifier.count() != 0 || h.dialog.closed != 0 {
			t.Error("expected no side effects after destroy")
		}
	})
}

func TestWelcomePage(t *testing.T) {
	h := newHarness(nil)
	page := NewWelcomePage(context.Background(), h.deps())

	page.OpenUserLoginDialog()
	page.OpenUserRegistrationDialog()

	if len(h.opener.kinds) != 2 || h.opener.kinds[0] != LoginDialog || h.opener.kinds[1] != RegistrationDialog {
		t.Fatalf("unexpected dialogs %v", h.opener.kinds)
	}
	for _, opts := range h.opener.opts {
		if opts.Width != DialogWidth {
			t.Errorf("expected width %d, got %d", DialogWidth, opts.Width)
		}
	}

	page.Destroy()
	page.OpenUserLoginDialog()
	if len(h.opener.kinds) != 2 {
		t.Error("destroyed page must not open dialogs")
	}
}
