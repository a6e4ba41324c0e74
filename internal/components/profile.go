package components

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
)

// UserProfile is the account page.
//
// The current view only changes when a load, save, favorite removal or deletion succeeds. Views
// handed out are never mutated afterwards, so callers may keep and copy them.
type UserProfile struct {
	lifetime
	mu   sync.RWMutex
	view *models.ProfileView
}

func NewUserProfile(ctx context.Context, deps Deps) *UserProfile {
	p := &UserProfile{}
	p.init(ctx, deps)
	return p
}

// View returns the last loaded or saved profile, or nil before the first load.
func (p *UserProfile) View() *models.ProfileView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

func (p *UserProfile) setView(view *models.ProfileView) {
	p.mu.Lock()
	p.view = view
	p.mu.Unlock()
}

// UserProfile loads the cached session user into [UserProfile.View] and resolves its favorites
// against the catalog.
//
// When the catalog cannot be loaded the view is still populated, with no favorite movies, and the
// error is returned.
func (p *UserProfile) UserProfile() (*models.ProfileView, error) {
	ctx, done, err := p.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	user, err := p.deps.Service.GetOneUser()
	if err != nil {
		return nil, err
	}

	view, err := models.NewProfileView(user)
	if err != nil {
		p.deps.Logger.Warn("unreadable birthday", "birthday", user.Birthday, "error", err)
	}
	view.FavoriteMovies = []models.Movie{}

	movies, err := p.deps.Service.GetAllMovies(ctx)
	if aerr := p.alive(); aerr != nil {
		return nil, aerr
	}
	if err != nil {
		p.deps.Logger.Error("failed to load movies", "error", services.ErrorMessage(err))
		p.setView(view)
		return view, err
	}

	view.FavoriteMovies = models.ResolveFavorites(movies, view.FavoriteIDs)
	p.setView(view)
	return view, nil
}

// GetFavMovies returns the favorites resolved by the last [UserProfile.UserProfile] call.
func (p *UserProfile) GetFavMovies() []models.Movie {
	view := p.View()
	if view == nil {
		return []models.Movie{}
	}
	return view.FavoriteMovies
}

// UpdateProfile submits edited, usually a modified copy of [UserProfile.View]. The stored user and
// the current view are only replaced when the server accepts the edit.
//
// A blank password keeps the current one.
func (p *UserProfile) UpdateProfile(edited *models.ProfileView) (*models.User, error) {
	ctx, done, err := p.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if edited == nil || p.View() == nil {
		return nil, fmt.Errorf("%w: profile not loaded", shared.ErrInvalidInput)
	}

	form := edited.Registration()
	if form.Password == "" {
		err = validate.StructExcept(form, "Password")
	} else {
		err = validate.Struct(form)
	}
	if err != nil {
		msg := validationMessage(err)
		p.deps.Logger.Warn("invalid profile", "error", msg)
		p.notify(MsgProfileFailed, NotificationDuration)
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg)
	}

	user, err := p.deps.Service.EditUser(ctx, form)
	if aerr := p.alive(); aerr != nil {
		return nil, aerr
	}
	if err != nil {
		p.deps.Logger.Error("failed to update profile", "error", services.ErrorMessage(err))
		p.notify(MsgProfileFailed, NotificationDuration)
		return nil, err
	}

	if err := p.deps.Store.SaveUser(user); err != nil {
		p.deps.Logger.Error("failed to save updated user", "error", err)
		p.notify(MsgProfileFailed, NotificationDuration)
		return nil, err
	}

	p.deps.Logger.Info("profile updated", "username", user.Username)
	p.refresh(user)
	p.notify(MsgProfileUpdated, NotificationDuration)
	return user, nil
}

// DeleteUser deletes the account after confirmation, clears the session and returns to the welcome page.
//
// Declining returns [ErrDeclined] without side effects.
func (p *UserProfile) DeleteUser() error {
	ctx, done, err := p.begin()
	if err != nil {
		return err
	}
	defer done()

	if p.deps.Confirmer == nil || !p.deps.Confirmer.Confirm(MsgDeleteConfirm) {
		p.deps.Logger.Debug("account deletion declined")
		return ErrDeclined
	}

	msg, err := p.deps.Service.DeleteUser(ctx)
	if aerr := p.alive(); aerr != nil {
		return aerr
	}
	if err != nil {
		p.deps.Logger.Error("failed to delete user", "error", services.ErrorMessage(err))
		p.notify(MsgDeleteFailed, DeleteFailedDuration)
		return err
	}
	p.deps.Logger.Info("deleted user", "response", msg)

	var clearErr error
	if err := p.deps.Store.Clear(); err != nil {
		p.deps.Logger.Error("failed to clear session", "error", err)
		clearErr = fmt.Errorf("account deleted but session not cleared: %w", err)
	}
	p.setView(nil)
	p.navigate(RouteWelcome)
	return clearErr
}

// RemoveFavorite drops movieID from the current user's favorites and refreshes the view.
func (p *UserProfile) RemoveFavorite(movieID string) (*models.User, error) {
	ctx, done, err := p.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	user, err := p.deps.Service.DeleteFavoriteMovie(ctx, movieID)
	if aerr := p.alive(); aerr != nil {
		return nil, aerr
	}
	if err != nil {
		p.deps.Logger.Error("failed to remove favorite", "movie", movieID, "error", services.ErrorMessage(err))
		p.notify(MsgFavoriteFailed, NotificationDuration)
		return nil, err
	}
	if err := p.deps.Store.SaveUser(user); err != nil {
		p.notify(MsgFavoriteFailed, NotificationDuration)
		return nil, err
	}

	p.refresh(user)
	p.notify(MsgFavoriteRemoved, NotificationDuration)
	return user, nil
}

// refresh copies user into the view, keeping already resolved favorites that are still listed.
func (p *UserProfile) refresh(user *models.User) {
	view, err := models.NewProfileView(user)
	if err != nil {
		p.deps.Logger.Warn("unreadable birthday", "birthday", user.Birthday, "error", err)
	}

	var resolved []models.Movie
	if current := p.View(); current != nil {
		resolved = current.FavoriteMovies
	}
	view.FavoriteMovies = models.ResolveFavorites(resolved, view.FavoriteIDs)
	p.setView(view)
}
