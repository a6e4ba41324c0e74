package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	tu "github.com/desertthunder/myflix/internal/testing"
	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func loggedInStore(t *testing.T) (*tu.MemoryStore, string) {
	t.Helper()
	token := signedToken(t, "moviebuff", time.Now().Add(time.Hour))
	return tu.NewMemoryStore(&models.Session{
		User:  &models.User{Username: "moviebuff", Email: "buff@example.com", FavoriteMovies: []string{"2"}},
		Token: token,
	}), token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestMovieAPI(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Empty BaseURL", func(t *testing.T) {
			api := NewMovieAPI(APIOpts{})
			if api.BaseURL() != "http://localhost:8080" {
				t.Errorf("expected default baseURL, got %s", api.BaseURL())
			}
			if api.limiter != nil {
				t.Error("expected no limiter without a rate")
			}
		})

		t.Run("Trims Trailing Slash And Applies Options", func(t *testing.T) {
			api := NewMovieAPI(APIOpts{BaseURL: "http://example.com/", RateLimit: 5, Timeout: time.Second})
			if api.BaseURL() != "http://example.com" {
				t.Errorf("expected trimmed baseURL, got %s", api.BaseURL())
			}
			if api.limiter == nil {
				t.Error("expected limiter to be configured")
			}
			if api.public.Timeout != time.Second || api.authed.Timeout != time.Second {
				t.Error("expected timeout on both clients")
			}
		})
	})

	t.Run("UserLogin", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/login" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if r.Header.Get("Authorization") != "" {
					t.Error("login must not carry an Authorization header")
				}
				var creds models.Credentials
				json.NewDecoder(r.Body).Decode(&creds)
				if creds.Username != "moviebuff" || creds.Password != "secret" {
					t.Errorf("unexpected credentials %+v", creds)
				}
				writeJSON(w, http.StatusOK, map[string]any{
					"user":  map[string]any{"Username": "moviebuff", "FavoriteMovies": []string{}},
					"token": "tok",
				})
			}))
			defer server.Close()

			api := NewMovieAPI(APIOpts{BaseURL: server.URL})
			result, err := api.UserLogin(context.Background(), models.Credentials{Username: "moviebuff", Password: "secret"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Token != "tok" || result.User.Username != "moviebuff" {
				t.Errorf("unexpected result %+v", result)
			}
		})

		t.Run("Unauthorized", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Incorrect username or password.", http.StatusUnauthorized)
			}))
			defer server.Close()

			api := NewMovieAPI(APIOpts{BaseURL: server.URL})
			_, err := api.UserLogin(context.Background(), models.Credentials{Username: "x", Password: "y"})

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", apiErr.StatusCode)
			}
			if !errors.Is(err, shared.ErrNotAuthenticated) || !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected 401 to match ErrNotAuthenticated and ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Missing Token In Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"Username": "x"}})
			}))
			defer server.Close()

			api := NewMovieAPI(APIOpts{BaseURL: server.URL})
			if _, err := api.UserLogin(context.Background(), models.Credentials{}); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("UserRegistration Error Message Is Verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("moviebuff already exists"))
		}))
		defer server.Close()

		api := NewMovieAPI(APIOpts{BaseURL: server.URL})
		_, err := api.UserRegistration(context.Background(), models.Registration{Username: "moviebuff"})
		if err == nil {
			t.Fatal("expected error")
		}
		if got := ErrorMessage(err); got != "moviebuff already exists" {
			t.Errorf("ErrorMessage() = %q", got)
		}
	})

	t.Run("GetOneUser", func(t *testing.T) {
		t.Run("Reads Session Without Network", func(t *testing.T) {
			store, _ := loggedInStore(t)
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("network must not be used"))}

			api := NewMovieAPI(APIOpts{HTTPClient: client, Store: store})
			user, err := api.GetOneUser()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if user.Username != "moviebuff" {
				t.Errorf("unexpected user %+v", user)
			}
		})

		t.Run("Without Session", func(t *testing.T) {
			api := NewMovieAPI(APIOpts{Store: tu.NewMemoryStore(nil)})
			if _, err := api.GetOneUser(); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("Without Store", func(t *testing.T) {
			api := NewMovieAPI(APIOpts{})
			if _, err := api.GetOneUser(); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	})

	t.Run("Authenticated Requests", func(t *testing.T) {
		store, token := loggedInStore(t)

		var seen []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer "+token {
				t.Errorf("unexpected Authorization header %q", got)
			}
			seen = append(seen, r.Method+" "+r.URL.EscapedPath())

			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/movies":
				writeJSON(w, http.StatusOK, []models.Movie{{ID: "1", Title: "Alien"}, {ID: "2", Title: "Brazil"}})
			case r.Method == http.MethodGet && r.URL.Path == "/movies/The Thing":
				writeJSON(w, http.StatusOK, models.Movie{ID: "3", Title: "The Thing"})
			case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/movies/genre/"):
				writeJSON(w, http.StatusOK, models.Genre{Name: "Horror"})
			case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/movies/directors/"):
				writeJSON(w, http.StatusOK, models.Director{Name: "John Carpenter"})
			case r.Method == http.MethodGet && r.URL.Path == "/users/moviebuff":
				writeJSON(w, http.StatusOK, models.User{Username: "moviebuff"})
			case r.Method == http.MethodPut && r.URL.Path == "/users/moviebuff":
				body, _ := io.ReadAll(r.Body)
				var form models.Registration
				json.Unmarshal(body, &form)
				writeJSON(w, http.StatusOK, models.User{Username: form.Username, Email: form.Email})
			case r.Method == http.MethodDelete && r.URL.Path == "/users/moviebuff":
				w.Write([]byte("moviebuff was deleted.\n"))
			case r.URL.Path == "/users/moviebuff/movies/2":
				favorites := []string{"2"}
				if r.Method == http.MethodDelete {
					favorites = []string{}
				}
				writeJSON(w, http.StatusOK, models.User{Username: "moviebuff", FavoriteMovies: favorites})
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		api := NewMovieAPI(APIOpts{BaseURL: server.URL, Store: store})
		ctx := context.Background()

		movies, err := api.GetAllMovies(ctx)
		if err != nil || len(movies) != 2 {
			t.Fatalf("GetAllMovies() = %v, %v", movies, err)
		}

		movie, err := api.GetMovie(ctx, "The Thing")
		if err != nil || movie.ID != "3" {
			t.Fatalf("GetMovie() = %+v, %v", movie, err)
		}

		if _, err := api.GetMovie(ctx, "Missing"); !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("expected ErrMovieNotFound, got %v", err)
		}

		if genre, err := api.GetGenre(ctx, "Horror"); err != nil || genre.Name != "Horror" {
			t.Errorf("GetGenre() = %+v, %v", genre, err)
		}

		if director, err := api.GetDirector(ctx, "John Carpenter"); err != nil || director.Name != "John Carpenter" {
			t.Errorf("GetDirector() = %+v, %v", director, err)
		}

		if user, err := api.FetchUser(ctx); err != nil || user.Username != "moviebuff" {
			t.Errorf("FetchUser() = %+v, %v", user, err)
		}

		edited, err := api.EditUser(ctx, models.Registration{Username: "moviebuff2", Email: "new@example.com"})
		if err != nil || edited.Username != "moviebuff2" {
			t.Errorf("EditUser() = %+v, %v", edited, err)
		}

		if user, err := api.AddFavoriteMovie(ctx, "2"); err != nil || !user.HasFavorite("2") {
			t.Errorf("AddFavoriteMovie() = %+v, %v", user, err)
		}

		if user, err := api.DeleteFavoriteMovie(ctx, "2"); err != nil || user.HasFavorite("2") {
			t.Errorf("DeleteFavoriteMovie() = %+v, %v", user, err)
		}

		msg, err := api.DeleteUser(ctx)
		if err != nil || msg != "moviebuff was deleted." {
			t.Errorf("DeleteUser() = %q, %v", msg, err)
		}

		if !containsAll(seen, "GET /movies/The%20Thing", "PUT /users/moviebuff", "DELETE /users/moviebuff") {
			t.Errorf("unexpected request log %v", seen)
		}
	})

	t.Run("Favorite Requires Movie ID", func(t *testing.T) {
		store, _ := loggedInStore(t)
		api := NewMovieAPI(APIOpts{Store: store})
		if _, err := api.AddFavoriteMovie(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Expired Token Fails Before Request", func(t *testing.T) {
		store := tu.NewMemoryStore(&models.Session{
			User:  &models.User{Username: "moviebuff"},
			Token: signedToken(t, "moviebuff", time.Now().Add(-time.Minute)),
		})
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("network must not be used"))}

		api := NewMovieAPI(APIOpts{HTTPClient: client, Store: store})
		_, err := api.GetAllMovies(context.Background())
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("Opaque Token Is Passed Through", func(t *testing.T) {
		store := tu.NewMemoryStore(&models.Session{User: &models.User{Username: "moviebuff"}, Token: "opaque"})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer opaque" {
				t.Errorf("unexpected Authorization header %q", got)
			}
			writeJSON(w, http.StatusOK, []models.Movie{})
		}))
		defer server.Close()

		api := NewMovieAPI(APIOpts{BaseURL: server.URL, Store: store})
		if _, err := api.GetAllMovies(context.Background()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Returns Raw Response For Any Status", func(t *testing.T) {
			store, _ := loggedInStore(t)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Custom-Header", "test-value")
				w.WriteHeader(http.StatusTeapot)
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			api := NewMovieAPI(APIOpts{BaseURL: server.URL, Store: store})
			resp, err := api.Get(context.Background(), "/anything")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusTeapot || resp.IsJSON || string(resp.Body) != "plain text response" {
				t.Errorf("unexpected response %+v", resp)
			}
			if resp.Headers.Get("X-Custom-Header") != "test-value" {
				t.Error("expected headers to be preserved")
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			store, _ := loggedInStore(t)
			api := NewMovieAPI(APIOpts{BaseURL: "http://example.com", Store: store})
			_, err := api.Get(context.Background(), "/test\x00invalid")
			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			store, _ := loggedInStore(t)
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed"))}

			api := NewMovieAPI(APIOpts{BaseURL: "http://example.com", HTTPClient: client, Store: store})
			_, err := api.Get(context.Background(), "/test")
			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			store, _ := loggedInStore(t)
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			api := NewMovieAPI(APIOpts{BaseURL: "http://example.com", HTTPClient: client, Store: store})
			_, err := api.Get(context.Background(), "/test")
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			store, _ := loggedInStore(t)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			api := NewMovieAPI(APIOpts{BaseURL: server.URL, Store: store, RateLimit: 1})
			if _, err := api.Get(ctx, "/test"); err == nil {
				t.Error("expected error for canceled context")
			}
		})
	})

	t.Run("Invalid JSON Body", func(t *testing.T) {
		store, _ := loggedInStore(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>"))
		}))
		defer server.Close()

		api := NewMovieAPI(APIOpts{BaseURL: server.URL, Store: store})
		if _, err := api.GetAllMovies(context.Background()); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestInspectToken(t *testing.T) {
	t.Run("Reads Claims", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		info, err := InspectToken(signedToken(t, "moviebuff", exp))
		if err != nil {
			t.Fatalf("InspectToken() error = %v", err)
		}
		if info.Subject != "moviebuff" {
			t.Errorf("unexpected subject %q", info.Subject)
		}
		if !info.ExpiresAt.Equal(exp) {
			t.Errorf("ExpiresAt = %v, want %v", info.ExpiresAt, exp)
		}
		if info.Expired(time.Now()) {
			t.Error("token should not be expired yet")
		}
		if !info.Expired(exp.Add(time.Second)) {
			t.Error("token should be expired after exp")
		}
	})

	t.Run("Not A JWT", func(t *testing.T) {
		if _, err := InspectToken("opaque"); !errors.Is(err, shared.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("No Expiry Never Expires", func(t *testing.T) {
		if (TokenInfo{}).Expired(time.Now()) {
			t.Error("token without exp should not be expired")
		}
	})
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(&APIError{StatusCode: 400, Message: "Username is required"}); got != "Username is required" {
		t.Errorf("ErrorMessage() = %q", got)
	}
	if got := ErrorMessage(errors.New("dial tcp: refused")); got != "dial tcp: refused" {
		t.Errorf("ErrorMessage() = %q", got)
	}
	if got := (&APIError{StatusCode: 500}).Error(); got != "API request failed: status 500" {
		t.Errorf("Error() = %q", got)
	}
}

func containsAll(haystack []string, needles ...string) bool {
	set := map[string]bool{}
	for _, s := range haystack {
		set[s] = true
	}
	for _, n := range needles {
		if !set[n] {
			return false
		}
	}
	return true
}
