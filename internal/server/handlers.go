package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// APIHandler serves the myFlix REST API from a [Store].
type APIHandler struct {
	store    *Store
	issuer   *TokenIssuer
	logger   *log.Logger
	validate *validator.Validate
}

func NewAPIHandler(store *Store, issuer *TokenIssuer, logger *log.Logger) *APIHandler {
	return &APIHandler{
		store:    store,
		issuer:   issuer,
		logger:   logger,
		validate: validator.New(),
	}
}

// Register mounts every endpoint on r.
func (h *APIHandler) Register(r Router) {
	auth := RequireAuth(h.issuer, h.store)

	r.Handle(http.MethodPost, "/login", http.HandlerFunc(h.Login))
	r.Handle(http.MethodPost, "/users", http.HandlerFunc(h.CreateUser))

	r.Handle(http.MethodGet, "/users/{Username}", auth(http.HandlerFunc(h.GetUser)))
	r.Handle(http.MethodPut, "/users/{Username}", auth(http.HandlerFunc(h.UpdateUser)))
	r.Handle(http.MethodDelete, "/users/{Username}", auth(http.HandlerFunc(h.DeleteUser)))
	r.Handle(http.MethodPost, "/users/{Username}/movies/{MovieID}", auth(http.HandlerFunc(h.AddFavorite)))
	r.Handle(http.MethodDelete, "/users/{Username}/movies/{MovieID}", auth(http.HandlerFunc(h.RemoveFavorite)))

	r.Handle(http.MethodGet, "/movies", auth(http.HandlerFunc(h.ListMovies)))
	r.Handle(http.MethodGet, "/movies/genre/{Name}", auth(http.HandlerFunc(h.GetGenre)))
	r.Handle(http.MethodGet, "/movies/directors/{Name}", auth(http.HandlerFunc(h.GetDirector)))
	r.Handle(http.MethodGet, "/movies/{Title}", auth(http.HandlerFunc(h.GetMovie)))
}

// Login handles POST /login.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !h.decode(w, r, &creds) {
		return
	}

	user, err := h.store.Authenticate(creds.Username, creds.Password)
	if err != nil {
		http.Error(w, "Incorrect username or password.", http.StatusUnauthorized)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		http.Error(w, "Error: could not issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResult{User: &user, Token: token})
}

// CreateUser handles POST /users.
func (h *APIHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var form models.Registration
	if !h.decode(w, r, &form) {
		return
	}

	user, err := h.store.CreateUser(form)
	if errors.Is(err, ErrUserExists) {
		http.Error(w, form.Username+" already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /users/{Username}.
func (h *APIHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.self(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, caller)
}

// UpdateUser handles PUT /users/{Username}. A blank password keeps the current one.
func (h *APIHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.self(w, r)
	if !ok {
		return
	}

	var form models.Registration
	if !h.decode(w, r, &form, "Password") {
		return
	}

	user, err := h.store.UpdateUser(caller.ID, form)
	if errors.Is(err, ErrUserExists) {
		http.Error(w, form.Username+" already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{Username}.
func (h *APIHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.self(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteUser(caller.ID); err != nil {
		h.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s was deleted.", caller.Username)
}

// AddFavorite handles POST /users/{Username}/movies/{MovieID}.
func (h *APIHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.favorite(w, r, h.store.AddFavorite)
}

// RemoveFavorite handles DELETE /users/{Username}/movies/{MovieID}.
func (h *APIHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.favorite(w, r, h.store.RemoveFavorite)
}

func (h *APIHandler) favorite(w http.ResponseWriter, r *http.Request, edit func(id, movieID string) (models.User, error)) {
	caller, ok := h.self(w, r)
	if !ok {
		return
	}

	user, err := edit(caller.ID, mux.Vars(r)["MovieID"])
	if errors.Is(err, shared.ErrMovieNotFound) {
		http.Error(w, "Movie not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListMovies handles GET /movies.
func (h *APIHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Movies())
}

// GetMovie handles GET /movies/{Title}.
func (h *APIHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.store.Movie(mux.Vars(r)["Title"])
	if err != nil {
		http.Error(w, "Movie not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// GetGenre handles GET /movies/genre/{Name}.
func (h *APIHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	genre, ok := h.store.Genre(mux.Vars(r)["Name"])
	if !ok {
		http.Error(w, "Genre not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

// GetDirector handles GET /movies/directors/{Name}.
func (h *APIHandler) GetDirector(w http.ResponseWriter, r *http.Request) {
	director, ok := h.store.Director(mux.Vars(r)["Name"])
	if !ok {
		http.Error(w, "Director not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, director)
}

// self returns the caller when the {Username} path variable names them.
func (h *APIHandler) self(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	caller, ok := Caller(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return models.User{}, false
	}
	if mux.Vars(r)["Username"] != caller.Username {
		http.Error(w, "Permission denied", http.StatusForbidden)
		return models.User{}, false
	}
	return caller, true
}

// decode reads a JSON body into v and validates it, skipping the named fields.
func (h *APIHandler) decode(w http.ResponseWriter, r *http.Request, v any, except ...string) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	var err error
	if len(except) > 0 {
		err = h.validate.StructExcept(v, except...)
	} else {
		err = h.validate.Struct(v)
	}
	if err != nil {
		http.Error(w, validationText(err), http.StatusUnprocessableEntity)
		return false
	}
	return true
}

func (h *APIHandler) serverError(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	h.logger.Error("request failed", "error", err)
	http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
}

func validationText(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "\n")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}
