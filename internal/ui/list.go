package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/myflix/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie    models.Movie
	favorite bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	if i.favorite {
		return i.movie.Title + " ★"
	}
	return i.movie.Title
}
func (i movieItem) Description() string {
	desc := i.movie.Genre.Name
	if i.movie.Director.Name != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Director.Name)
	}
	return desc
}

// movieItems converts movies to list items, starring those in favorites.
func movieItems(movies []models.Movie, favorite func(id string) bool) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m, favorite: favorite(m.ID)}
	}
	return items
}

func newMovieList(title string, items []list.Item, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), max(width, 0), max(height, 0))
	l.Title = title
	l.SetShowHelp(false)
	return l
}
