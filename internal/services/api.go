// HTTP implementation of [Service] for the myFlix REST API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8080"

var _ Service = (*MovieAPI)(nil)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string // response body, verbatim
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: status %d", shared.ErrAPIRequest, e.StatusCode)
	}
	return fmt.Sprintf("%v: status %d: %s", shared.ErrAPIRequest, e.StatusCode, e.Message)
}

// Is lets 401 responses match [shared.ErrNotAuthenticated].
func (e *APIError) Is(target error) bool {
	return target == shared.ErrNotAuthenticated && e.StatusCode == http.StatusUnauthorized
}

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

// ErrorMessage returns the text to show a user for err: the server's message verbatim for API errors,
// the error string otherwise.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// APIOpts configures a [MovieAPI].
type APIOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      models.SessionStore
	RateLimit  float64 // requests per second, 0 disables limiting
	Timeout    time.Duration
}

// MovieAPI is the HTTP client for the myFlix API.
type MovieAPI struct {
	baseURL string
	public  *http.Client
	authed  *http.Client
	store   models.SessionStore
	limiter *rate.Limiter
}

// NewMovieAPI creates a new API client.
//
// The base URL defaults to http://localhost:8080 and the client to a copy of [http.DefaultClient].
func NewMovieAPI(opts APIOpts) *MovieAPI {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}

	public := &http.Client{}
	if opts.HTTPClient != nil {
		*public = *opts.HTTPClient
	}
	if opts.Timeout > 0 {
		public.Timeout = opts.Timeout
	}

	authed := *public
	authed.Transport = &oauth2.Transport{
		Source: &sessionTokenSource{store: opts.Store},
		Base:   public.Transport,
	}

	api := &MovieAPI{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		public:  public,
		authed:  &authed,
		store:   opts.Store,
	}
	if opts.RateLimit > 0 {
		api.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return api
}

// BaseURL returns the API root this client talks to.
func (a *MovieAPI) BaseURL() string { return a.baseURL }

// UserLogin posts credentials to /login.
func (a *MovieAPI) UserLogin(ctx context.Context, credentials models.Credentials) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := a.doJSON(ctx, a.public, http.MethodPost, "/login", credentials, &result); err != nil {
		return nil, err
	}
	if result.User == nil || result.Token == "" {
		return nil, fmt.Errorf("%w: login response missing user or token", shared.ErrAPIRequest)
	}
	return &result, nil
}

// UserRegistration posts a new account to /users.
func (a *MovieAPI) UserRegistration(ctx context.Context, registration models.Registration) (*models.User, error) {
	var user models.User
	if err := a.doJSON(ctx, a.public, http.MethodPost, "/users", registration, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOneUser returns the stored session user.
func (a *MovieAPI) GetOneUser() (*models.User, error) {
	session, err := a.session()
	if err != nil {
		return nil, err
	}
	return session.User, nil
}

// FetchUser loads the current user from GET /users/{Username}.
func (a *MovieAPI) FetchUser(ctx context.Context) (*models.User, error) {
	username, err := a.username()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := a.doJSON(ctx, a.authed, http.MethodGet, "/users/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAllMovies loads the catalog from GET /movies.
func (a *MovieAPI) GetAllMovies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := a.doJSON(ctx, a.authed, http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie loads GET /movies/{Title}.
func (a *MovieAPI) GetMovie(ctx context.Context, title string) (*models.Movie, error) {
	var movie models.Movie
	if err := a.doJSON(ctx, a.authed, http.MethodGet, "/movies/"+url.PathEscape(title), nil, &movie); err != nil {
		return nil, notFound(err, shared.ErrMovieNotFound)
	}
	return &movie, nil
}

// GetGenre loads GET /movies/genre/{Name}.
func (a *MovieAPI) GetGenre(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	if err := a.doJSON(ctx, a.authed, http.MethodGet, "/movies/genre/"+url.PathEscape(name), nil, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetDirector loads GET /movies/directors/{Name}.
func (a *MovieAPI) GetDirector(ctx context.Context, name string) (*models.Director, error) {
	var director models.Director
	if err := a.doJSON(ctx, a.authed, http.MethodGet, "/movies/directors/"+url.PathEscape(name), nil, &director); err != nil {
		return nil, err
	}
	return &director, nil
}

// EditUser submits profile to PUT /users/{Username}, addressed by the session's current username.
func (a *MovieAPI) EditUser(ctx context.Context, profile models.Registration) (*models.User, error) {
	username, err := a.username()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := a.doJSON(ctx, a.authed, http.MethodPut, "/users/"+url.PathEscape(username), profile, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser calls DELETE /users/{Username} and returns the plain-text confirmation.
func (a *MovieAPI) DeleteUser(ctx context.Context) (string, error) {
	username, err := a.username()
	if err != nil {
		return "", err
	}

	resp, err := a.do(ctx, a.authed, http.MethodDelete, "/users/"+url.PathEscape(username), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body)), nil
}

// AddFavoriteMovie calls POST /users/{Username}/movies/{MovieID}.
func (a *MovieAPI) AddFavoriteMovie(ctx context.Context, movieID string) (*models.User, error) {
	return a.favorite(ctx, http.MethodPost, movieID)
}

// DeleteFavoriteMovie calls DELETE /users/{Username}/movies/{MovieID}.
func (a *MovieAPI) DeleteFavoriteMovie(ctx context.Context, movieID string) (*models.User, error) {
	return a.favorite(ctx, http.MethodDelete, movieID)
}

func (a *MovieAPI) favorite(ctx context.Context, method, movieID string) (*models.User, error) {
	if movieID == "" {
		return nil, fmt.Errorf("%w: movie ID", shared.ErrMissingArgument)
	}
	username, err := a.username()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/users/%s/movies/%s", url.PathEscape(username), url.PathEscape(movieID))
	var user models.User
	if err := a.doJSON(ctx, a.authed, method, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Get performs an authenticated GET request to path and returns the raw response regardless of status.
func (a *MovieAPI) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.send(ctx, a.authed, http.MethodGet, path, nil)
}

func (a *MovieAPI) session() (*models.Session, error) {
	if a.store == nil {
		return nil, fmt.Errorf("%w: no session store configured", shared.ErrNotAuthenticated)
	}
	session, err := a.store.Session()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}
	return session, nil
}

func (a *MovieAPI) username() (string, error) {
	user, err := a.GetOneUser()
	if err != nil {
		return "", err
	}
	if user.Username == "" {
		return "", fmt.Errorf("%w: stored user has no username", shared.ErrNotAuthenticated)
	}
	return user.Username, nil
}

// doJSON sends body as JSON and decodes a 2xx response into result.
func (a *MovieAPI) doJSON(ctx context.Context, client *http.Client, method, path string, body, result any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = data
	}

	resp, err := a.do(ctx, client, method, path, payload)
	if err != nil {
		return err
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// do sends the request and converts non-2xx responses to [*APIError].
func (a *MovieAPI) do(ctx context.Context, client *http.Client, method, path string, payload []byte) (*APIResponse, error) {
	resp, err := a.send(ctx, client, method, path, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(resp.Body))}
	}
	return resp, nil
}

func (a *MovieAPI) send(ctx context.Context, client *http.Client, method, path string, payload []byte) (*APIResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	var jsonData any
	if err := json.Unmarshal(data, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

func notFound(err, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return err
}
