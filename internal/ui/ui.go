package ui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/components"
	"github.com/desertthunder/myflix/internal/formatter"
	"github.com/desertthunder/myflix/internal/models"
)

// ViewState represents the current page of the TUI.
type ViewState int

const (
	WelcomeView ViewState = iota
	MoviesView
	DetailView
	ProfileView
	EditView
)

// Overlays drawn above the current page.
const (
	LoginView    = "login"
	RegisterView = "register"
	ConfirmView  = "confirm"
)

// dialog is an open login or registration dialog.
type dialog struct {
	kind     components.DialogKind
	width    int
	form     *form
	login    *components.LoginForm
	register *components.RegistrationForm
}

func (d *dialog) destroy() {
	if d.login != nil {
		d.login.Destroy()
	}
	if d.register != nil {
		d.register.Destroy()
	}
}

// Model represents the TUI application state.
//
// Components run their actions in commands. The model only reads what they return in messages.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	deps   components.Deps
	bridge *bridge
	logger *log.Logger

	welcome   *components.WelcomePage
	movieList *components.MovieList
	profile   *components.UserProfile

	view      ViewState
	width     int
	height    int
	movies    list.Model
	catalog   []models.Movie
	favorites map[string]bool
	loaded    bool

	detail      *models.Movie
	detailText  string
	profileView *models.ProfileView
	cursor      int
	edit        *form
	dialog      *dialog
	confirm     *confirmMsg

	toast   *components.Notification
	toastID int
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model. The notifier, navigator, dialog, opener and confirmer in deps are
// replaced by the model's own.
func NewModel(ctx context.Context, deps components.Deps) *Model {
	ctx, cancel := context.WithCancel(ctx)
	b := newBridge(ctx)

	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	deps.Notifier = b
	deps.Navigator = b
	deps.Dialog = b
	deps.Opener = b
	deps.Confirmer = b

	return &Model{
		ctx:       ctx,
		cancel:    cancel,
		deps:      deps,
		bridge:    b,
		logger:    deps.Logger,
		welcome:   components.NewWelcomePage(ctx, deps),
		movieList: components.NewMovieList(ctx, deps),
		profile:   components.NewUserProfile(ctx, deps),
		view:      WelcomeView,
		favorites: map[string]bool{},
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init starts draining the bridge and opens the movie list when a session is stored, the welcome page otherwise.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.wait(), m.start())
}

func (m *Model) start() tea.Cmd {
	return func() tea.Msg {
		session, err := m.deps.Store.Session()
		if err != nil || !session.Valid() {
			return navigateMsg{route: components.RouteWelcome}
		}
		return navigateMsg{route: components.RouteMovies}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case effectMsg:
		_, cmd := m.Update(msg.msg)
		return m, tea.Batch(cmd, m.bridge.wait())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.loaded {
			m.movies.SetSize(max(msg.Width-4, 0), max(msg.Height-8, 0))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case notifyMsg:
		n := components.Notification(msg)
		m.toastID++
		m.toast = &n
		id := m.toastID
		return m, tea.Tick(n.Duration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = nil
		}
		return m, nil

	case navigateMsg:
		return m, m.goTo(msg.route)

	case openDialogMsg:
		m.openDialog(msg.kind, msg.opts)
		return m, m.dialog.form.inputs[0].Focus()

	case closeDialogMsg:
		m.closeDialog()
		return m, nil

	case confirmMsg:
		m.confirm = &msg
		return m, nil

	case loginDoneMsg:
		m.formDone(msg.err)
		return m, nil

	case registerDoneMsg:
		m.formDone(msg.err)
		return m, nil

	case moviesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.catalog = msg.movies
		m.favorites = msg.favorites
		m.movies = newMovieList("Movies", movieItems(m.catalog, m.isFavorite), m.width-4, m.height-8)
		m.loaded = true
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			m.logger.Error("lookup failed", "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.movie != nil {
			m.detail = msg.movie
		}
		m.detailText = msg.text
		m.view = DetailView
		return m, nil

	case favoritesChangedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.setFavorites(msg.user)
		if msg.view != nil {
			m.profileView = msg.view
			m.clampCursor()
		}
		if m.loaded {
			return m, m.movies.SetItems(movieItems(m.catalog, m.isFavorite))
		}
		return m, nil

	case profileLoadedMsg:
		if msg.view == nil {
			m.err = msg.err
			return m, nil
		}
		m.err = msg.err
		m.profileView = msg.view
		m.clampCursor()
		return m, nil

	case profileSavedMsg:
		if m.edit != nil {
			m.edit.submitting = false
		}
		if msg.err != nil {
			if m.edit != nil {
				m.edit.err = msg.err.Error()
			}
			return m, nil
		}
		m.setFavorites(msg.user)
		m.profileView = msg.view
		m.edit = nil
		m.view = ProfileView
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, components.ErrDeclined) {
			m.logger.Error("account deletion failed", "error", msg.err)
		}
		return m, nil
	}

	return m.updateCurrent(msg)
}

// Overlay names the dialog or prompt above the current page, or returns "" when there is none.
func (m *Model) Overlay() string {
	switch {
	case m.confirm != nil:
		return ConfirmView
	case m.dialog == nil:
		return ""
	case m.dialog.kind == components.LoginDialog:
		return LoginView
	default:
		return RegisterView
	}
}

// Page returns the current page.
func (m *Model) Page() ViewState {
	return m.view
}

// View renders the current page with any open dialog, confirmation or toast above it.
func (m *Model) View() string {
	return m.render()
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}
	if m.toast != nil && key.Matches(msg, m.keys.dismiss) {
		m.toast = nil
		return m, nil
	}
	if m.confirm != nil {
		return m.handleConfirmKeys(msg)
	}
	if m.dialog != nil {
		return m.handleDialogKeys(msg)
	}

	switch m.view {
	case WelcomeView:
		return m.handleWelcomeKeys(msg)
	case MoviesView:
		return m.handleMoviesKeys(msg)
	case DetailView:
		return m.handleDetailKeys(msg)
	case ProfileView:
		return m.handleProfileKeys(msg)
	case EditView:
		return m.handleEditKeys(msg)
	}
	return m, nil
}

func (m *Model) handleWelcomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.login):
		m.welcome.OpenUserLoginDialog()
	case key.Matches(msg, m.keys.signup):
		m.welcome.OpenUserRegistrationDialog()
	}
	return m, nil
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		m.closeDialog()
		return m, nil
	}

	f := m.dialog.form
	cmd, submit := f.update(msg, m.keys)
	if !submit || f.submitting {
		return m, cmd
	}

	f.submitting = true
	f.err = ""
	switch m.dialog.kind {
	case components.LoginDialog:
		c := m.dialog.login
		c.Credentials = models.Credentials{Username: f.value(0), Password: f.value(1)}
		return m, func() tea.Msg {
			session, err := c.LogInUser()
			return loginDoneMsg{session: session, err: err}
		}
	default:
		c := m.dialog.register
		c.Form = models.Registration{Username: f.value(0), Password: f.value(1), Email: f.value(2), Birthday: f.value(3)}
		return m, func() tea.Msg {
			user, err := c.RegisterUser()
			return registerDoneMsg{user: user, err: err}
		}
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.confirm.reply <- true
		m.confirm = nil
	case key.Matches(msg, m.keys.no):
		m.confirm.reply <- false
		m.confirm = nil
	}
	return m, nil
}

func (m *Model) handleMoviesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.loaded {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, m.quit()
		case key.Matches(msg, m.keys.reload):
			return m, m.loadMovies()
		case key.Matches(msg, m.keys.logout):
			return m, m.logout()
		}
		return m, nil
	}
	if m.movies.FilterState() == list.Filtering {
		return m.updateCurrent(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.enter):
		if movie := m.selected(); movie != nil {
			return m, m.lookupMovie(movie.Title)
		}
	case key.Matches(msg, m.keys.favorite):
		if movie := m.selected(); movie != nil {
			return m, m.toggleFavorite(movie.ID)
		}
	case key.Matches(msg, m.keys.genre):
		if movie := m.selected(); movie != nil {
			return m, m.lookupGenre(movie.Genre.Name)
		}
	case key.Matches(msg, m.keys.director):
		if movie := m.selected(); movie != nil {
			return m, m.lookupDirector(movie.Director.Name)
		}
	case key.Matches(msg, m.keys.profile):
		return m, m.goTo(components.RouteProfile)
	case key.Matches(msg, m.keys.reload):
		return m, m.loadMovies()
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	}
	return m.updateCurrent(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.back):
		m.detail = nil
		m.detailText = ""
		m.view = MoviesView
	case key.Matches(msg, m.keys.favorite):
		if m.detail != nil {
			return m, m.toggleFavorite(m.detail.ID)
		}
	case key.Matches(msg, m.keys.genre):
		if m.detail != nil {
			return m, m.lookupGenre(m.detail.Genre.Name)
		}
	case key.Matches(msg, m.keys.director):
		if m.detail != nil {
			return m, m.lookupDirector(m.detail.Director.Name)
		}
	}
	return m, nil
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.back):
		return m, m.goTo(components.RouteMovies)
	case key.Matches(msg, m.keys.reload):
		return m, m.goTo(components.RouteProfile)
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	}
	if m.profileView == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.profileView.FavoriteMovies)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.remove):
		if len(m.profileView.FavoriteMovies) == 0 {
			return m, nil
		}
		id := m.profileView.FavoriteMovies[m.cursor].ID
		p := m.profile
		return m, func() tea.Msg {
			user, err := p.RemoveFavorite(id)
			return favoritesChangedMsg{user: user, view: p.View(), err: err}
		}
	case key.Matches(msg, m.keys.edit):
		m.edit = newEditForm(m.profileView, m.width)
		m.view = EditView
		return m, m.edit.inputs[0].Focus()
	case key.Matches(msg, m.keys.delete):
		p := m.profile
		return m, func() tea.Msg {
			return deleteDoneMsg{err: p.DeleteUser()}
		}
	}
	return m, nil
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		m.edit = nil
		m.view = ProfileView
		return m, nil
	}

	cmd, submit := m.edit.update(msg, m.keys)
	if !submit || m.edit.submitting {
		return m, cmd
	}

	p := m.profile
	if p.Busy() {
		m.edit.err = components.ErrInFlight.Error()
		return m, cmd
	}

	edited := *m.profileView
	edited.Username = m.edit.value(0)
	edited.Password = m.edit.value(1)
	edited.Email = m.edit.value(2)
	edited.Birthday = m.edit.value(3)

	m.edit.submitting = true
	m.edit.err = ""
	return m, func() tea.Msg {
		user, err := p.UpdateProfile(&edited)
		return profileSavedMsg{user: user, view: p.View(), err: err}
	}
}

func (m *Model) updateCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.dialog != nil:
		m.dialog.form.inputs[m.dialog.form.focus], cmd = m.dialog.form.inputs[m.dialog.form.focus].Update(msg)
	case m.view == MoviesView && m.loaded:
		m.movies, cmd = m.movies.Update(msg)
	case m.view == EditView && m.edit != nil:
		m.edit.inputs[m.edit.focus], cmd = m.edit.inputs[m.edit.focus].Update(msg)
	}
	return m, cmd
}

// goTo switches the page and loads its data.
func (m *Model) goTo(route string) tea.Cmd {
	m.err = nil
	switch route {
	case components.RouteMovies:
		m.view = MoviesView
		return m.loadMovies()
	case components.RouteProfile:
		m.view = ProfileView
		m.cursor = 0
		p := m.profile
		return func() tea.Msg {
			view, err := p.UserProfile()
			return profileLoadedMsg{view: view, err: err}
		}
	default:
		m.view = WelcomeView
		m.closeDialog()
		m.catalog = nil
		m.favorites = map[string]bool{}
		m.loaded = false
		m.detail = nil
		m.profileView = nil
		m.edit = nil
		return nil
	}
}

func (m *Model) loadMovies() tea.Cmd {
	l := m.movieList
	store := m.deps.Store
	return func() tea.Msg {
		movies, err := l.GetMovies()
		if err != nil {
			return moviesLoadedMsg{err: err}
		}
		favorites := map[string]bool{}
		if session, serr := store.Session(); serr == nil && session.User != nil {
			for _, id := range session.User.FavoriteMovies {
				favorites[id] = true
			}
		}
		return moviesLoadedMsg{movies: movies, favorites: favorites}
	}
}

func (m *Model) toggleFavorite(movieID string) tea.Cmd {
	l := m.movieList
	return func() tea.Msg {
		user, err := l.ToggleFavorite(movieID)
		return favoritesChangedMsg{user: user, err: err}
	}
}

func (m *Model) lookupMovie(title string) tea.Cmd {
	l := m.movieList
	favorites := m.favorites
	return func() tea.Msg {
		movie, err := l.Movie(title)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		return detailLoadedMsg{movie: movie, text: formatter.FormatMovie(movie, favorites[movie.ID])}
	}
}

func (m *Model) lookupGenre(name string) tea.Cmd {
	l := m.movieList
	return func() tea.Msg {
		genre, err := l.Genre(name)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		return detailLoadedMsg{text: formatter.FormatGenre(genre)}
	}
}

func (m *Model) lookupDirector(name string) tea.Cmd {
	l := m.movieList
	return func() tea.Msg {
		director, err := l.Director(name)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		return detailLoadedMsg{text: formatter.FormatDirector(director)}
	}
}

func (m *Model) logout() tea.Cmd {
	store := m.deps.Store
	logger := m.logger
	return func() tea.Msg {
		if err := store.Clear(); err != nil {
			logger.Error("failed to clear session", "error", err)
		}
		return navigateMsg{route: components.RouteWelcome}
	}
}

func (m *Model) quit() tea.Cmd {
	m.closeDialog()
	if m.confirm != nil {
		m.confirm.reply <- false
		m.confirm = nil
	}
	m.cancel()
	return tea.Quit
}

func (m *Model) openDialog(kind components.DialogKind, opts components.DialogOptions) {
	m.closeDialog()

	d := &dialog{kind: kind, width: opts.Width}
	switch kind {
	case components.LoginDialog:
		d.login = components.NewLoginForm(m.ctx, m.deps)
		d.form = newForm("Log in", opts.Width,
			field{label: "Username", placeholder: "username"},
			field{label: "Password", placeholder: "password", secret: true},
		)
	default:
		d.register = components.NewRegistrationForm(m.ctx, m.deps)
		d.form = newForm("Sign up", opts.Width,
			field{label: "Username", placeholder: "at least 5 letters or digits"},
			field{label: "Password", placeholder: "password", secret: true},
			field{label: "Email", placeholder: "you@example.com"},
			field{label: "Birthday", placeholder: "YYYY-MM-DD"},
		)
	}
	m.dialog = d
}

// closeDialog destroys the dialog's component so a late response is discarded.
func (m *Model) closeDialog() {
	if m.dialog == nil {
		return
	}
	m.dialog.destroy()
	m.dialog = nil
}

func (m *Model) formDone(err error) {
	if m.dialog == nil {
		return
	}
	m.dialog.form.submitting = false
	if err != nil && !errors.Is(err, components.ErrDestroyed) && !errors.Is(err, components.ErrInFlight) {
		m.dialog.form.err = err.Error()
	}
}

func (m *Model) selected() *models.Movie {
	item, ok := m.movies.SelectedItem().(movieItem)
	if !ok {
		return nil
	}
	return &item.movie
}

func (m *Model) isFavorite(id string) bool {
	return m.favorites[id]
}

// setFavorites replaces the favorites map. Commands may hold the previous one, so it is never mutated in place.
func (m *Model) setFavorites(user *models.User) {
	if user == nil {
		return
	}
	favorites := make(map[string]bool, len(user.FavoriteMovies))
	for _, id := range user.FavoriteMovies {
		favorites[id] = true
	}
	m.favorites = favorites
}

func (m *Model) clampCursor() {
	if m.profileView == nil {
		m.cursor = 0
		return
	}
	if n := len(m.profileView.FavoriteMovies); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func newEditForm(view *models.ProfileView, width int) *form {
	return newForm("Edit profile", width,
		field{label: "Username", value: view.Username},
		field{label: "Password", placeholder: "leave blank to keep", secret: true},
		field{label: "Email", value: view.Email},
		field{label: "Birthday", placeholder: "YYYY-MM-DD", value: view.Birthday},
	)
}
