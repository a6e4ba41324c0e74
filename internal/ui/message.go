package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/myflix/internal/components"
	"github.com/desertthunder/myflix/internal/models"
)

// effectMsg wraps a side effect delivered by the [bridge]. Handling one re-arms the bridge.
type effectMsg struct {
	msg tea.Msg
}

type notifyMsg components.Notification

type toastExpiredMsg struct {
	id int
}

type navigateMsg struct {
	route string
}

type closeDialogMsg struct{}

type openDialogMsg struct {
	kind components.DialogKind
	opts components.DialogOptions
}

type confirmMsg struct {
	prompt string
	reply  chan<- bool
}

type loginDoneMsg struct {
	session *models.Session
	err     error
}

type registerDoneMsg struct {
	user *models.User
	err  error
}

type moviesLoadedMsg struct {
	movies    []models.Movie
	favorites map[string]bool
	err       error
}

type profileLoadedMsg struct {
	view *models.ProfileView
	err  error
}

type profileSavedMsg struct {
	user *models.User
	view *models.ProfileView
	err  error
}

type deleteDoneMsg struct {
	err error
}

// favoritesChangedMsg carries the user returned by a favorite toggle. view is set when the change came from the profile page.
type favoritesChangedMsg struct {
	user *models.User
	view *models.ProfileView
	err  error
}

type detailLoadedMsg struct {
	movie *models.Movie
	text  string
	err   error
}
