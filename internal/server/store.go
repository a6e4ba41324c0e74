package server

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists  = errors.New("user already exists")
	ErrBadPassword = errors.New("incorrect username or password")
)

type account struct {
	user models.User
	hash string
}

// Store holds users and the movie catalog in memory.
type Store struct {
	mu         sync.RWMutex
	byID       map[string]*account
	byUsername map[string]string
	movies     []models.Movie
	cost       int
}

// NewStore creates a store serving catalog.
func NewStore(catalog []models.Movie) *Store {
	return &Store{
		byID:       map[string]*account{},
		byUsername: map[string]string{},
		movies:     catalog,
		cost:       bcrypt.DefaultCost,
	}
}

// SetHashCost changes the bcrypt cost used for new passwords.
func (s *Store) SetHashCost(cost int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cost = cost
}

// CreateUser adds a new account with a hashed password.
func (s *Store) CreateUser(form models.Registration) (models.User, error) {
	hash, err := s.hash(form.Password)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[form.Username]; ok {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserExists, form.Username)
	}

	acct := &account{
		user: models.User{
			ID:             shared.GenerateID(),
			Username:       form.Username,
			Email:          form.Email,
			Birthday:       birthday(form.Birthday),
			FavoriteMovies: []string{},
		},
		hash: hash,
	}
	s.byID[acct.user.ID] = acct
	s.byUsername[form.Username] = acct.user.ID
	return copyUser(acct.user), nil
}

// Authenticate checks credentials and returns the matching user.
func (s *Store) Authenticate(username, password string) (models.User, error) {
	s.mu.RLock()
	acct, ok := s.lookup(username)
	var hash string
	var user models.User
	if ok {
		hash, user = acct.hash, copyUser(acct.user)
	}
	s.mu.RUnlock()

	if !ok {
		return models.User{}, ErrBadPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.User{}, ErrBadPassword
	}
	return user, nil
}

// UserByID returns the user with the given ID.
func (s *Store) UserByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.byID[id]
	if !ok {
		return models.User{}, shared.ErrUserNotFound
	}
	return copyUser(acct.user), nil
}

// User returns the user with the given username.
func (s *Store) User(username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.lookup(username)
	if !ok {
		return models.User{}, shared.ErrUserNotFound
	}
	return copyUser(acct.user), nil
}

// UpdateUser replaces the editable fields of the account with the given ID. A blank password keeps the current one.
func (s *Store) UpdateUser(id string, form models.Registration) (models.User, error) {
	var hash string
	if form.Password != "" {
		h, err := s.hash(form.Password)
		if err != nil {
			return models.User{}, err
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.byID[id]
	if !ok {
		return models.User{}, shared.ErrUserNotFound
	}
	if form.Username != acct.user.Username {
		if _, taken := s.byUsername[form.Username]; taken {
			return models.User{}, fmt.Errorf("%w: %s", ErrUserExists, form.Username)
		}
		delete(s.byUsername, acct.user.Username)
		s.byUsername[form.Username] = id
	}

	acct.user.Username = form.Username
	acct.user.Email = form.Email
	acct.user.Birthday = birthday(form.Birthday)
	if hash != "" {
		acct.hash = hash
	}
	return copyUser(acct.user), nil
}

// DeleteUser removes the account with the given ID.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.byID[id]
	if !ok {
		return shared.ErrUserNotFound
	}
	delete(s.byUsername, acct.user.Username)
	delete(s.byID, id)
	return nil
}

// AddFavorite adds movieID to the user's favorites once.
func (s *Store) AddFavorite(id, movieID string) (models.User, error) {
	return s.editFavorites(id, movieID, func(ids []string) []string {
		if slices.Contains(ids, movieID) {
			return ids
		}
		return append(ids, movieID)
	})
}

// RemoveFavorite drops movieID from the user's favorites.
func (s *Store) RemoveFavorite(id, movieID string) (models.User, error) {
	return s.editFavorites(id, movieID, func(ids []string) []string {
		return slices.DeleteFunc(ids, func(v string) bool { return v == movieID })
	})
}

func (s *Store) editFavorites(id, movieID string, edit func([]string) []string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.byID[id]
	if !ok {
		return models.User{}, shared.ErrUserNotFound
	}
	if !s.hasMovie(movieID) {
		return models.User{}, shared.ErrMovieNotFound
	}
	acct.user.FavoriteMovies = edit(acct.user.FavoriteMovies)
	return copyUser(acct.user), nil
}

// Movies returns the catalog.
func (s *Store) Movies() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.movies)
}

// Movie finds a movie by exact title.
func (s *Store) Movie(title string) (models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if m.Title == title {
			return m, nil
		}
	}
	return models.Movie{}, shared.ErrMovieNotFound
}

// Genre finds a genre by name, case-insensitively.
func (s *Store) Genre(name string) (models.Genre, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if strings.EqualFold(m.Genre.Name, name) {
			return m.Genre, true
		}
	}
	return models.Genre{}, false
}

// Director finds a director by name, case-insensitively.
func (s *Store) Director(name string) (models.Director, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if strings.EqualFold(m.Director.Name, name) {
			return m.Director, true
		}
	}
	return models.Director{}, false
}

func (s *Store) lookup(username string) (*account, bool) {
	id, ok := s.byUsername[username]
	if !ok {
		return nil, false
	}
	return s.byID[id], true
}

func (s *Store) hasMovie(id string) bool {
	for _, m := range s.movies {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) hash(password string) (string, error) {
	s.mu.RLock()
	cost := s.cost
	s.mu.RUnlock()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// birthday stores dates the way the hosted API returns them.
func birthday(date string) string {
	if date == "" {
		return ""
	}
	return date + "T00:00:00.000Z"
}

func copyUser(u models.User) models.User {
	u.FavoriteMovies = slices.Clone(u.FavoriteMovies)
	if u.FavoriteMovies == nil {
		u.FavoriteMovies = []string{}
	}
	return u
}
