package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/myflix/internal/components"
	"github.com/desertthunder/myflix/internal/formatter"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

func (r *Runner) movieList(ctx context.Context) (*components.MovieList, error) {
	if err := r.open(); err != nil {
		return nil, err
	}
	return components.NewMovieList(ctx, r.deps(nil)), nil
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := cmd.StringArg(name)
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// MoviesList prints the catalog, starring the session user's favorites.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	list, err := r.movieList(ctx)
	if err != nil {
		return err
	}
	defer list.Destroy()

	movies, err := list.GetMovies()
	if err != nil {
		return err
	}

	if cmd.Bool("favorites") {
		favorites := []models.Movie{}
		for _, movie := range movies {
			if list.IsFavorite(movie.ID) {
				favorites = append(favorites, movie)
			}
		}
		movies = favorites
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Movies (%d)", len(movies)))
	for _, movie := range movies {
		star := " "
		if list.IsFavorite(movie.ID) {
			star = "★"
		}
		r.writePlain("%s %-26s %-24s %s\n", star, movie.ID, movie.Title, movie.Genre.Name)
	}
	return nil
}

// MoviesShow prints a single movie.
func (r *Runner) MoviesShow(ctx context.Context, cmd *cli.Command) error {
	title, err := requireArg(cmd, "title")
	if err != nil {
		return err
	}
	list, err := r.movieList(ctx)
	if err != nil {
		return err
	}
	defer list.Destroy()

	movie, err := list.Movie(title)
	if err != nil {
		return err
	}
	return r.writePlain("%s", formatter.FormatMovie(movie, list.IsFavorite(movie.ID)))
}

// MoviesGenre prints a genre description.
func (r *Runner) MoviesGenre(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	list, err := r.movieList(ctx)
	if err != nil {
		return err
	}
	defer list.Destroy()

	genre, err := list.Genre(name)
	if err != nil {
		return err
	}
	return r.writePlain("%s", formatter.FormatGenre(genre))
}

// MoviesDirector prints a director's bio.
func (r *Runner) MoviesDirector(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	list, err := r.movieList(ctx)
	if err != nil {
		return err
	}
	defer list.Destroy()

	director, err := list.Director(name)
	if err != nil {
		return err
	}
	return r.writePlain("%s", formatter.FormatDirector(director))
}

// MoviesOpen opens a movie's poster image in the default browser.
func (r *Runner) MoviesOpen(ctx context.Context, cmd *cli.Command) error {
	title, err := requireArg(cmd, "title")
	if err != nil {
		return err
	}
	list, err := r.movieList(ctx)
	if err != nil {
		return err
	}
	defer list.Destroy()

	movie, err := list.Movie(title)
	if err != nil {
		return err
	}
	if movie.ImagePath == "" {
		return fmt.Errorf("%w: %s has no poster", shared.ErrInvalidArgument, movie.Title)
	}

	r.logger.Info("opening poster", "title", movie.Title, "url", movie.ImagePath)
	if err := shared.OpenBrowser(movie.ImagePath); err != nil {
		return err
	}
	return r.writePlain("Opened %s\n", movie.ImagePath)
}

// FavoriteAdd adds a movie to the favorites. Movies already listed are left alone.
func (r *Runner) FavoriteAdd(ctx context.Context, cmd *cli.Command) error {
	return r.setFavorite(ctx, cmd, true)
}

// FavoriteRemove removes a movie from the favorites.
func (r *Runner) FavoriteRemove(ctx context.Context, cmd *cli.Command) error {
	return r.setFavorite(ctx, cmd, false)
}

func (r *Runner) setFavorite(ctx context.Context, cmd *cli.Command, want bool) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	list, err := r.movieList(ctx)
	if err != nil {
		return err
	}
	defer list.Destroy()

	if list.IsFavorite(id) == want {
		if want {
			return r.writePlain("%s is already a favorite\n", id)
		}
		return r.writePlain("%s is not a favorite\n", id)
	}

	user, err := list.ToggleFavorite(id)
	if err != nil {
		return err
	}
	return r.writePlain("Favorites: %d\n", len(user.FavoriteMovies))
}

// APIGet makes a direct authenticated GET request and prints the response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "path")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}
	if r.api == nil {
		return fmt.Errorf("%w: raw requests need the HTTP client", shared.ErrServiceUnavailable)
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !cmd.Bool("json"))
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
