package components

import (
	"context"
	"fmt"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
)

// RegistrationForm is the sign-up dialog.
type RegistrationForm struct {
	lifetime
	Form models.Registration
}

func NewRegistrationForm(ctx context.Context, deps Deps) *RegistrationForm {
	f := &RegistrationForm{}
	f.init(ctx, deps)
	return f
}

// RegisterUser creates the account and closes the dialog.
//
// Failures are shown with the server's own message, or the validation message when the form is rejected
// before sending.
func (f *RegistrationForm) RegisterUser() (*models.User, error) {
	ctx, done, err := f.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if err := validate.Struct(f.Form); err != nil {
		msg := validationMessage(err)
		f.notify(msg, NotificationDuration)
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg)
	}

	user, err := f.deps.Service.UserRegistration(ctx, f.Form)
	if aerr := f.alive(); aerr != nil {
		return nil, aerr
	}
	if err != nil {
		msg := services.ErrorMessage(err)
		f.deps.Logger.Error("registration failed", "username", f.Form.Username, "error", msg)
		f.notify(msg, NotificationDuration)
		return nil, err
	}

	f.deps.Logger.Info("registered", "username", user.Username)
	f.closeDialog()
	f.notify(MsgRegisterSuccess, NotificationDuration)
	return user, nil
}
