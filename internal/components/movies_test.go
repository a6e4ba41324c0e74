package components

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
)

func TestMovieList(t *testing.T) {
	t.Run("GetMovies", func(t *testing.T) {
		h := newHarness(testSession())
		h.svc.MoviesFn = func(ctx context.Context) ([]models.Movie, error) { return testCatalog(), nil }

		list := NewMovieList(context.Background(), h.deps())
		movies, err := list.GetMovies()
		if err != nil {
			t.Fatalf("GetMovies() error = %v", err)
		}
		if len(movies) != 3 || len(list.Movies) != 3 {
			t.Errorf("expected 3 movies, got %d", len(movies))
		}
	})

	t.Run("GetMovies Failure", func(t *testing.T) {
		h := newHarness(testSession())
		h.svc.MoviesFn = func(ctx context.Context) ([]models.Movie, error) {
			return nil, &services.APIError{StatusCode: 401, Message: "Unauthorized"}
		}

		list := NewMovieList(context.Background(), h.deps())
		if _, err := list.GetMovies(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("IsFavorite", func(t *testing.T) {
		tests := []struct {
			name    string
			session *models.Session
			id      string
			want    bool
		}{
			{"Listed", testSession(), "2", true},
			{"Not Listed", testSession(), "1", false},
			{"No Session", nil, "2", false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				list := NewMovieList(context.Background(), newHarness(tt.session).deps())
				if got := list.IsFavorite(tt.id); got != tt.want {
					t.Errorf("IsFavorite(%q) = %v, want %v", tt.id, got, tt.want)
				}
			})
		}
	})

	t.Run("ToggleFavorite", func(t *testing.T) {
		t.Run("Adds", func(t *testing.T) {
			h := newHarness(testSession())
			h.svc.AddFavoriteFn = func(ctx context.Context, id string) (*models.User, error) {
				user := testUser()
				user.FavoriteMovies = append(user.FavoriteMovies, id)
				return user, nil
			}

			list := NewMovieList(context.Background(), h.deps())
			if _, err := list.ToggleFavorite("3"); err != nil {
				t.Fatalf("ToggleFavorite() error = %v", err)
			}
			if h.svc.Calls("AddFavoriteMovie") != 1 || h.svc.Calls("DeleteFavoriteMovie") != 0 {
				t.Error("expected an add request")
			}
			if !list.IsFavorite("3") {
				t.Error("expected stored user to list the new favorite")
			}
			if h.notifier.last(t).Message != MsgFavoriteAdded {
				t.Errorf("unexpected notification %+v", h.notifier.last(t))
			}
		})

		t.Run("Removes", func(t *testing.T) {
			h := newHarness(testSession())
			h.svc.DropFavoriteFn = func(ctx context.Context, id string) (*models.User, error) {
				user := testUser()
				user.FavoriteMovies = []string{}
				return user, nil
			}

			list := NewMovieList(context.Background(), h.deps())
			if _, err := list.ToggleFavorite("2"); err != nil {
				t.Fatalf("ToggleFavorite() error = %v", err)
			}
			if h.svc.Calls("DeleteFavoriteMovie") != 1 {
				t.Error("expected a delete request")
			}
			if list.IsFavorite("2") {
				t.Error("expected favorite removed from stored user")
			}
			if h.notifier.last(t).Message != MsgFavoriteRemoved {
				t.Errorf("unexpected notification %+v", h.notifier.last(t))
			}
		})

		t.Run("Failure", func(t *testing.T) {
			h := newHarness(testSession())
			h.svc.AddFavoriteFn = func(ctx context.Context, id string) (*models.User, error) {
				return nil, &services.APIError{StatusCode: 500}
			}
			before, _ := h.store.RawUser()

			list := NewMovieList(context.Background(), h.deps())
			if _, err := list.ToggleFavorite("3"); err == nil {
				t.Fatal("expected error")
			}
			after, _ := h.store.RawUser()
			if string(before) != string(after) {
				t.Error("stored user changed on failure")
			}
			if h.notifier.last(t).Message != MsgFavoriteFailed {
				t.Errorf("unexpected notification %+v", h.notifier.last(t))
			}
		})
	})

	t.Run("Lookups", func(t *testing.T) {
		h := newHarness(testSession())
		h.svc.MovieFn = func(ctx context.Context, title string) (*models.Movie, error) {
			return &models.Movie{ID: "1", Title: title}, nil
		}
		list := NewMovieList(context.Background(), h.deps())

		if movie, err := list.Movie("Alien"); err != nil || movie.Title != "Alien" {
			t.Errorf("Movie() = %+v, %v", movie, err)
		}
		if genre, err := list.Genre("Horror"); err != nil || genre.Name != "Horror" {
			t.Errorf("Genre() = %+v, %v", genre, err)
		}
		if director, err := list.Director("Ridley Scott"); err != nil || director.Name != "Ridley Scott" {
			t.Errorf("Director() = %+v, %v", director, err)
		}

		list.Destroy()
		if _, err := list.Genre("Horror"); !errors.Is(err, ErrDestroyed) {
			t.Errorf("expected ErrDestroyed, got %v", err)
		}
	})
}
