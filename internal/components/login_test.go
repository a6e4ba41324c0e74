package components

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/repositories"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
)

func loginOK(ctx context.Context, c models.Credentials) (*models.LoginResult, error) {
	return &models.LoginResult{User: &models.User{Username: c.Username, FavoriteMovies: []string{}}, Token: "tok-" + c.Username}, nil
}

func TestLoginForm(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h := newHarness(nil)
		h.svc.LoginFn = loginOK

		form := NewLoginForm(context.Background(), h.deps())
		form.Credentials = models.Credentials{Username: "moviebuff", Password: "secret"}

		session, err := form.LogInUser()
		if err != nil {
			t.Fatalf("LogInUser() error = %v", err)
		}
		if session.Token != "tok-moviebuff" {
			t.Errorf("unexpected token %q", session.Token)
		}

		stored, err := h.store.Session()
		if err != nil {
			t.Fatalf("expected stored session, got %v", err)
		}
		if stored.User.Username != "moviebuff" || stored.Token != "tok-moviebuff" {
			t.Errorf("unexpected stored session %+v", stored)
		}

		if h.dialog.closed != 1 {
			t.Errorf("expected dialog closed once, got %d", h.dialog.closed)
		}
		if got := h.notifier.last(t); got != (Notification{Message: MsgLoginSuccess, Action: "OK", Duration: NotificationDuration}) {
			t.Errorf("unexpected notification %+v", got)
		}
		if len(h.navigator.routes) != 1 || h.navigator.routes[0] != RouteMovies {
			t.Errorf("expected navigation to movies, got %v", h.navigator.routes)
		}
	})

	t.Run("Success With SQLite Store Sets Both Keys", func(t *testing.T) {
		db, err := shared.OpenStorage(shared.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("failed to open storage: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		repo := repositories.NewSessionRepository(db)

		h := newHarness(nil)
		h.svc.LoginFn = loginOK
		deps := h.deps()
		deps.Store = repo

		form := NewLoginForm(context.Background(), deps)
		form.Credentials = models.Credentials{Username: "moviebuff", Password: "secret"}
		if _, err := form.LogInUser(); err != nil {
			t.Fatalf("LogInUser() error = %v", err)
		}

		keys, err := repo.Keys()
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		if len(keys) != 2 || keys[0] != repositories.KeyToken || keys[1] != repositories.KeyUser {
			t.Errorf("expected token and user keys, got %v", keys)
		}
	})

	t.Run("Failed Save Does Not Navigate", func(t *testing.T) {
		h := newHarness(nil)
		h.svc.LoginFn = loginOK
		h.store.SaveErr = errors.New("disk full")

		form := NewLoginForm(context.Background(), h.deps())
		form.Credentials = models.Credentials{Username: "moviebuff", Password: "secret"}

		if _, err := form.LogInUser(); err == nil {
			t.Fatal("expected error")
		}
		if len(h.navigator.routes) != 0 {
			t.Errorf("expected no navigation, got %v", h.navigator.routes)
		}
		if h.dialog.closed != 0 {
			t.Error("dialog should stay open")
		}
		if h.notifier.last(t).Message != MsgLoginFailed {
			t.Errorf("unexpected notification %+v", h.notifier.last(t))
		}
	})

	t.Run("Failed Login Leaves Storage Unchanged", func(t *testing.T) {
		h := newHarness(testSession())
		h.svc.LoginFn = func(ctx context.Context, c models.Credentials) (*models.LoginResult, error) {
			return nil, &services.APIError{StatusCode: 401, Message: "Incorrect username or password."}
		}
		before, _ := h.store.RawUser()

		form := NewLoginForm(context.Background(), h.deps())
		form.Credentials = models.Credentials{Username: "intruder", Password: "guess"}

		_, err := form.LogInUser()
		if !errors.Is(err, shared.ErrAuthFailed) || !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected auth failure, got %v", err)
		}

		after, _ := h.store.RawUser()
		if string(before) != string(after) {
			t.Errorf("stored user changed: %s -> %s", before, after)
		}
		stored, _ := h.store.Session()
		if stored.Token != "tok" {
			t.Errorf("stored token changed to %q", stored.Token)
		}
		if h.notifier.last(t).Message != MsgLoginFailed {
			t.Errorf("unexpected notification %+v", h.notifier.last(t))
		}
		if h.dialog.closed != 0 || len(h.navigator.routes) != 0 {
			t.Error("expected dialog open and no navigation")
		}
	})

	t.Run("Invalid Credentials Skip Request", func(t *testing.T) {
		h := newHarness(nil)
		form := NewLoginForm(context.Background(), h.deps())
		form.Credentials = models.Credentials{Username: "moviebuff"}

		if _, err := form.LogInUser(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if h.svc.Calls("UserLogin") != 0 {
			t.Error("expected no login request")
		}
		if h.notifier.last(t).Message != MsgLoginFailed {
			t.Errorf("unexpected notification %+v", h.notifier.last(t))
		}
	})

	t.Run("Navigation Failure Is Only Logged", func(t *testing.T) {
		h := newHarness(nil)
		h.svc.LoginFn = loginOK
		h.navigator.err = errors.New("no such route")

		form := NewLoginForm(context.Background(), h.deps())
		form.Credentials = models.Credentials{Username: "moviebuff", Password: "secret"}

		if _, err := form.LogInUser(); err != nil {
			t.Errorf("expected navigation failure to be swallowed, got %v", err)
		}
	})

	t.Run("Second Submit While In Flight", func(t *testing.T) {
		h := newHarness(nil)
		form := NewLoginForm(context.Background(), h.deps())
		form.Credentials = models.Credentials{Username: "moviebuff", Password: "secret"}

		var inner error
		h.svc.LoginFn = func(ctx context.Context, c models.Credentials) (*models.LoginResult, error) {
			_, inner = form.LogInUser()
			return loginOK(ctx, c)
		}

		if _, err := form.LogInUser(); err != nil {
			t.Fatalf("LogInUser() error = %v", err)
		}
		if !errors.Is(inner, ErrInFlight) {
			t.Errorf("expected ErrInFlight, got %v", inner)
		}
		if h.svc.Calls("UserLogin") != 1 {
			t.Errorf("expected one request, got %d", h.svc.Calls("UserLogin"))
		}
	})

	t.Run("Response After Destroy Is Discarded", func(t *testing.T) {
		h := newHarness(nil)
		form := NewLoginForm(context.Background(), h.deps())
		form.Credentials = models.Credentials{Username: "moviebuff", Password: "secret"}

		h.svc.LoginFn = func(ctx context.Context, c models.Credentials) (*models.LoginResult, error) {
			form.Destroy()
			if ctx.Err() == nil {
				t.Error("expected request context to be canceled")
			}
			return loginOK(ctx, c)
		}

		if _, err := form.LogInUser(); !errors.Is(err, ErrDestroyed) {
			t.Errorf("expected ErrDestroyed, got %v", err)
		}
		if h.store.Len() != 0 {
			t.Error("expected nothing stored")
		}
		if h.notifier.count() != 0 || len(h.navigator.routes) != 0 || h.dialog.closed != 0 {
			t.Error("expected no side effects after destroy")
		}
	})
}
