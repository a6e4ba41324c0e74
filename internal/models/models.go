// package models defines the data model for the myflix client
package models

import (
	"encoding/json"
	"fmt"
)

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"Username" validate:"required"`
	Password string `json:"Password" validate:"required"`
}

// Registration holds the fields submitted when creating or editing an account.
type Registration struct {
	Username string `json:"Username" validate:"required,min=5,alphanum"`
	Password string `json:"Password,omitempty" validate:"required"`
	Email    string `json:"Email" validate:"required,email"`
	Birthday string `json:"Birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// User is an account as returned by the API.
type User struct {
	ID             string   `json:"_id,omitempty"`
	Username       string   `json:"Username"`
	Password       string   `json:"Password,omitempty"`
	Email          string   `json:"Email"`
	Birthday       string   `json:"Birthday,omitempty"`
	FavoriteMovies []string `json:"FavoriteMovies"`
}

// HasFavorite reports whether movieID is in the user's favorites.
func (u *User) HasFavorite(movieID string) bool {
	for _, id := range u.FavoriteMovies {
		if id == movieID {
			return true
		}
	}
	return false
}

// Genre describes a movie genre.
type Genre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Director describes a movie director.
type Director struct {
	Name  string `json:"Name"`
	Bio   string `json:"Bio"`
	Birth string `json:"Birth,omitempty"`
	Death string `json:"Death,omitempty"`
}

// Movie is a catalog entry.
type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"Title"`
	Description string   `json:"Description,omitempty"`
	Genre       Genre    `json:"Genre"`
	Director    Director `json:"Director"`
	ImagePath   string   `json:"ImagePath,omitempty"`
	Featured    bool     `json:"Featured"`
	Actors      []string `json:"Actors,omitempty"`
}

// LoginResult is the body returned by a successful login.
type LoginResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Session is the persisted {user, token} pair.
type Session struct {
	User  *User
	Token string
}

// Valid reports whether both halves of the session are present.
func (s *Session) Valid() bool {
	return s != nil && s.User != nil && s.User.Username != "" && s.Token != ""
}

// SessionStore is the single owner of persisted session state (storage keys "user" and "token").
type SessionStore interface {
	Session() (*Session, error)   // Session returns the stored session or [shared.ErrNoSession]
	Save(session *Session) error  // Save writes both keys atomically
	SaveUser(user *User) error    // SaveUser replaces the "user" key only
	RawUser() ([]byte, error)     // RawUser returns the "user" key exactly as stored
	Clear() error                 // Clear removes every stored key
}

// ProfileView is the normalized profile view model.
type ProfileView struct {
	Username       string
	Password       string
	Email          string
	Birthday       string // YYYY-MM-DD or empty
	FavoriteIDs    []string
	FavoriteMovies []Movie
}

// NewProfileView builds a view model from user, formatting the birthday with [FormatDate].
//
// An unparseable birthday leaves the field empty and is reported as the returned error.
func NewProfileView(user *User) (*ProfileView, error) {
	view := &ProfileView{
		Username:    user.Username,
		Password:    user.Password,
		Email:       user.Email,
		FavoriteIDs: append([]string(nil), user.FavoriteMovies...),
	}

	if user.Birthday == "" {
		return view, nil
	}

	birthday, err := FormatDate(user.Birthday)
	if err != nil {
		return view, err
	}
	view.Birthday = birthday
	return view, nil
}

// Registration returns the editable fields of the view as a submittable form.
func (v *ProfileView) Registration() Registration {
	return Registration{
		Username: v.Username,
		Password: v.Password,
		Email:    v.Email,
		Birthday: v.Birthday,
	}
}

// MarshalUser encodes a user the way it is persisted under the "user" storage key.
func MarshalUser(user *User) ([]byte, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	return data, nil
}

// UnmarshalUser decodes a persisted "user" value.
func UnmarshalUser(data []byte) (*User, error) {
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}
