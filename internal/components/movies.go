package components

import (
	"context"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
)

// MovieList is the catalog page.
//
// Lookups (Genre, Director, Movie) are reads and may run alongside other actions.
type MovieList struct {
	lifetime
	Movies []models.Movie
}

func NewMovieList(ctx context.Context, deps Deps) *MovieList {
	l := &MovieList{}
	l.init(ctx, deps)
	return l
}

// GetMovies loads the full catalog into [MovieList.Movies].
func (l *MovieList) GetMovies() ([]models.Movie, error) {
	ctx, done, err := l.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	movies, err := l.deps.Service.GetAllMovies(ctx)
	if aerr := l.alive(); aerr != nil {
		return nil, aerr
	}
	if err != nil {
		l.deps.Logger.Error("failed to load movies", "error", services.ErrorMessage(err))
		return nil, err
	}

	l.deps.Logger.Debug("loaded movies", "count", len(movies))
	l.Movies = movies
	return movies, nil
}

// IsFavorite reports whether the session user has movieID among their favorites.
func (l *MovieList) IsFavorite(movieID string) bool {
	session, err := l.deps.Store.Session()
	if err != nil || session.User == nil {
		return false
	}
	return session.User.HasFavorite(movieID)
}

// ToggleFavorite adds movieID to the favorites, or removes it when already present, and saves the returned user.
func (l *MovieList) ToggleFavorite(movieID string) (*models.User, error) {
	ctx, done, err := l.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	remove := l.IsFavorite(movieID)

	var user *models.User
	if remove {
		user, err = l.deps.Service.DeleteFavoriteMovie(ctx, movieID)
	} else {
		user, err = l.deps.Service.AddFavoriteMovie(ctx, movieID)
	}
	if aerr := l.alive(); aerr != nil {
		return nil, aerr
	}
	if err == nil {
		err = l.deps.Store.SaveUser(user)
	}
	if err != nil {
		l.deps.Logger.Error("failed to update favorites", "movie", movieID, "remove", remove, "error", services.ErrorMessage(err))
		l.notify(MsgFavoriteFailed, NotificationDuration)
		return nil, err
	}

	if remove {
		l.notify(MsgFavoriteRemoved, NotificationDuration)
	} else {
		l.notify(MsgFavoriteAdded, NotificationDuration)
	}
	return user, nil
}

// Movie looks up a single movie by title.
func (l *MovieList) Movie(title string) (*models.Movie, error) {
	if err := l.alive(); err != nil {
		return nil, err
	}
	movie, err := l.deps.Service.GetMovie(l.ctx, title)
	if aerr := l.alive(); aerr != nil {
		return nil, aerr
	}
	return movie, err
}

// Genre looks up a genre by name.
func (l *MovieList) Genre(name string) (*models.Genre, error) {
	if err := l.alive(); err != nil {
		return nil, err
	}
	genre, err := l.deps.Service.GetGenre(l.ctx, name)
	if aerr := l.alive(); aerr != nil {
		return nil, aerr
	}
	return genre, err
}

// Director looks up a director by name.
func (l *MovieList) Director(name string) (*models.Director, error) {
	if err := l.alive(); err != nil {
		return nil, err
	}
	director, err := l.deps.Service.GetDirector(l.ctx, name)
	if aerr := l.alive(); aerr != nil {
		return nil, aerr
	}
	return director, err
}
