package components

import (
	"context"
	"fmt"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
)

// LoginForm is the login dialog.
type LoginForm struct {
	lifetime
	Credentials models.Credentials
}

func NewLoginForm(ctx context.Context, deps Deps) *LoginForm {
	f := &LoginForm{}
	f.init(ctx, deps)
	return f
}

// LogInUser submits the credentials.
//
// On success the session is saved, the dialog closed and the movie list opened.
// On any failure the user sees [MsgLoginFailed] and the stored session is left as it was.
func (f *LoginForm) LogInUser() (*models.Session, error) {
	ctx, done, err := f.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if err := validate.Struct(f.Credentials); err != nil {
		f.notify(MsgLoginFailed, NotificationDuration)
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, validationMessage(err))
	}

	f.deps.Logger.Debug("logging in", "username", f.Credentials.Username)
	result, err := f.deps.Service.UserLogin(ctx, f.Credentials)
	if aerr := f.alive(); aerr != nil {
		return nil, aerr
	}
	if err != nil {
		f.deps.Logger.Error("login failed", "username", f.Credentials.Username, "error", services.ErrorMessage(err))
		f.notify(MsgLoginFailed, NotificationDuration)
		return nil, fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}

	session := &models.Session{User: result.User, Token: result.Token}
	if err := f.deps.Store.Save(session); err != nil {
		f.deps.Logger.Error("failed to save session", "error", err)
		f.notify(MsgLoginFailed, NotificationDuration)
		return nil, err
	}

	f.deps.Logger.Info("logged in", "username", f.Credentials.Username)
	f.closeDialog()
	f.notify(MsgLoginSuccess, NotificationDuration)
	f.navigate(RouteMovies)
	return session, nil
}
