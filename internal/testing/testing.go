// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/myflix/internal/models"
)

var ErrNoSession = errors.New("no active session")

// MockService is a configurable test double for services.Service.
//
// Nil function fields return zero values; every call is counted by method name.
type MockService struct {
	mu    sync.Mutex
	calls map[string]int

	User    *models.User
	UserErr error

	LoginFn        func(ctx context.Context, c models.Credentials) (*models.LoginResult, error)
	RegisterFn     func(ctx context.Context, r models.Registration) (*models.User, error)
	FetchUserFn    func(ctx context.Context) (*models.User, error)
	MoviesFn       func(ctx context.Context) ([]models.Movie, error)
	MovieFn        func(ctx context.Context, title string) (*models.Movie, error)
	GenreFn        func(ctx context.Context, name string) (*models.Genre, error)
	DirectorFn     func(ctx context.Context, name string) (*models.Director, error)
	EditFn         func(ctx context.Context, p models.Registration) (*models.User, error)
	DeleteFn       func(ctx context.Context) (string, error)
	AddFavoriteFn  func(ctx context.Context, movieID string) (*models.User, error)
	DropFavoriteFn func(ctx context.Context, movieID string) (*models.User, error)
}

func (m *MockService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

// Calls returns how many times the named method was called.
func (m *MockService) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockService) UserLogin(ctx context.Context, c models.Credentials) (*models.LoginResult, error) {
	m.record("UserLogin")
	if m.LoginFn == nil {
		return nil, nil
	}
	return m.LoginFn(ctx, c)
}

func (m *MockService) UserRegistration(ctx context.Context, r models.Registration) (*models.User, error) {
	m.record("UserRegistration")
	if m.RegisterFn == nil {
		return &models.User{Username: r.Username, Email: r.Email, Birthday: r.Birthday}, nil
	}
	return m.RegisterFn(ctx, r)
}

func (m *MockService) GetOneUser() (*models.User, error) {
	m.record("GetOneUser")
	return m.User, m.UserErr
}

func (m *MockService) FetchUser(ctx context.Context) (*models.User, error) {
	m.record("FetchUser")
	if m.FetchUserFn == nil {
		return m.User, m.UserErr
	}
	return m.FetchUserFn(ctx)
}

func (m *MockService) GetAllMovies(ctx context.Context) ([]models.Movie, error) {
	m.record("GetAllMovies")
	if m.MoviesFn == nil {
		return []models.Movie{}, nil
	}
	return m.MoviesFn(ctx)
}

func (m *MockService) GetMovie(ctx context.Context, title string) (*models.Movie, error) {
	m.record("GetMovie")
	if m.MovieFn == nil {
		return nil, nil
	}
	return m.MovieFn(ctx, title)
}

func (m *MockService) GetGenre(ctx context.Context, name string) (*models.Genre, error) {
	m.record("GetGenre")
	if m.GenreFn == nil {
		return &models.Genre{Name: name}, nil
	}
	return m.GenreFn(ctx, name)
}

func (m *MockService) GetDirector(ctx context.Context, name string) (*models.Director, error) {
	m.record("GetDirector")
	if m.DirectorFn == nil {
		return &models.Director{Name: name}, nil
	}
	return m.DirectorFn(ctx, name)
}

func (m *MockService) EditUser(ctx context.Context, p models.Registration) (*models.User, error) {
	m.record("EditUser")
	if m.EditFn == nil {
		return nil, nil
	}
	return m.EditFn(ctx, p)
}

func (m *MockService) DeleteUser(ctx context.Context) (string, error) {
	m.record("DeleteUser")
	if m.DeleteFn == nil {
		return "deleted", nil
	}
	return m.DeleteFn(ctx)
}

func (m *MockService) AddFavoriteMovie(ctx context.Context, movieID string) (*models.User, error) {
	m.record("AddFavoriteMovie")
	if m.AddFavoriteFn == nil {
		return nil, nil
	}
	return m.AddFavoriteFn(ctx, movieID)
}

func (m *MockService) DeleteFavoriteMovie(ctx context.Context, movieID string) (*models.User, error) {
	m.record("DeleteFavoriteMovie")
	if m.DropFavoriteFn == nil {
		return nil, nil
	}
	return m.DropFavoriteFn(ctx, movieID)
}

// MemoryStore is an in-memory models.SessionStore keyed like the storage table.
//
// SaveErr and ClearErr make the corresponding writes fail without touching stored data.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	SaveErr  error
	ClearErr error
}

// NewMemoryStore returns a store pre-populated with session when it is non-nil.
func NewMemoryStore(session *models.Session) *MemoryStore {
	s := &MemoryStore{data: map[string][]byte{}}
	if session != nil {
		raw, _ := models.MarshalUser(session.User)
		s.data["user"] = raw
		s.data["token"] = []byte(session.Token)
	}
	return s
}

func (s *MemoryStore) Session() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data["user"]
	token, tok := s.data["token"]
	if !ok || !tok {
		return nil, ErrNoSession
	}
	user, err := models.UnmarshalUser(raw)
	if err != nil {
		return nil, err
	}
	return &models.Session{User: user, Token: string(token)}, nil
}

func (s *MemoryStore) Save(session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	raw, err := models.MarshalUser(session.User)
	if err != nil {
		return err
	}
	s.data["user"] = raw
	s.data["token"] = []byte(session.Token)
	return nil
}

func (s *MemoryStore) SaveUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	raw, err := models.MarshalUser(user)
	if err != nil {
		return err
	}
	s.data["user"] = raw
	return nil
}

func (s *MemoryStore) RawUser() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data["user"]
	if !ok {
		return nil, ErrNoSession
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.data = map[string][]byte{}
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
