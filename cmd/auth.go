package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/myflix/internal/components"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Login exchanges credentials for a session and stores it.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	var err error
	if username == "" {
		if username, err = r.prompt("Username"); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = r.prompt("Password"); err != nil {
			return err
		}
	}

	if err := r.open(); err != nil {
		return err
	}

	form := components.NewLoginForm(ctx, r.deps(nil))
	defer form.Destroy()
	form.Credentials = models.Credentials{Username: username, Password: password}

	session, err := form.LogInUser()
	if err != nil {
		return err
	}
	return r.writePlain("✓ Logged in as %s\n", session.User.Username)
}

// Logout clears the stored session.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}
	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	r.logger.Info("session cleared")
	return r.writePlain("✓ Logged out\n")
}

// Register creates a new account. It does not log in.
func (r *Runner) Register(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	form := components.NewRegistrationForm(ctx, r.deps(nil))
	defer form.Destroy()
	form.Form = models.Registration{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Email:    cmd.String("email"),
		Birthday: cmd.String("birthday"),
	}

	if _, err := form.RegisterUser(); err != nil {
		return err
	}
	return r.writePlain("Run 'flix login -u %s' to sign in\n", form.Form.Username)
}

// sessionStatus is the JSON shape of "session status".
type sessionStatus struct {
	LoggedIn  bool      `json:"logged_in"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Favorites int       `json:"favorites"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Expired   bool      `json:"expired"`
}

// SessionStatus reports the stored user and when the token expires.
func (r *Runner) SessionStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	status := sessionStatus{}
	session, err := r.store.Session()
	switch {
	case errors.Is(err, shared.ErrNoSession):
	case err != nil:
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	case session.Valid():
		status.LoggedIn = true
		status.Username = session.User.Username
		status.Email = session.User.Email
		status.Favorites = len(session.User.FavoriteMovies)

		info, err := services.InspectToken(session.Token)
		if err != nil {
			r.logger.Warn("stored token is unreadable", "error", err)
		} else {
			status.ExpiresAt = info.ExpiresAt
			status.Expired = info.Expired(time.Now())
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	if !status.LoggedIn {
		return r.writePlain("✗ Not logged in\n")
	}
	r.writePlain("✓ Logged in as %s (%s)\n", status.Username, status.Email)
	r.writePlain("Favorites: %d\n", status.Favorites)
	switch {
	case status.ExpiresAt.IsZero():
		r.writePlain("Token: no expiry\n")
	case status.Expired:
		r.writePlain("Token: expired %s, log in again\n", status.ExpiresAt.Local().Format(time.RFC1123))
	default:
		r.writePlain("Token: expires %s\n", status.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
