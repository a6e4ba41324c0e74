// package services defines interface Service for interacting with the myFlix API
package services

import (
	"context"

	"github.com/desertthunder/myflix/internal/models"
)

// Service defines the operations the client performs against the movie API.
type Service interface {
	// UserLogin exchanges credentials for a {user, token} pair.
	UserLogin(ctx context.Context, credentials models.Credentials) (*models.LoginResult, error)

	// UserRegistration creates a new account.
	UserRegistration(ctx context.Context, registration models.Registration) (*models.User, error)

	// GetOneUser returns the user of the current session without a network call.
	GetOneUser() (*models.User, error)

	// FetchUser reloads the current user from the API.
	FetchUser(ctx context.Context) (*models.User, error)

	// GetAllMovies returns the full catalog.
	GetAllMovies(ctx context.Context) ([]models.Movie, error)

	// GetMovie returns a single movie by title.
	GetMovie(ctx context.Context, title string) (*models.Movie, error)

	// GetGenre returns a genre by name.
	GetGenre(ctx context.Context, name string) (*models.Genre, error)

	// GetDirector returns a director by name.
	GetDirector(ctx context.Context, name string) (*models.Director, error)

	// EditUser submits the edited profile of the current user and returns the stored result.
	EditUser(ctx context.Context, profile models.Registration) (*models.User, error)

	// DeleteUser deletes the current user's account and returns the server's confirmation text.
	DeleteUser(ctx context.Context) (string, error)

	// AddFavoriteMovie adds movieID to the current user's favorites.
	AddFavoriteMovie(ctx context.Context, movieID string) (*models.User, error)

	// DeleteFavoriteMovie removes movieID from the current user's favorites.
	DeleteFavoriteMovie(ctx context.Context, movieID string) (*models.User, error)
}
