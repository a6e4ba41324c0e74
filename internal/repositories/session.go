package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
)

// Storage keys.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

var _ models.SessionStore = (*SessionRepository)(nil)

// SessionRepository implements [models.SessionStore] on the storage key/value table.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Session returns the stored session, or [shared.ErrNoSession] when either key is missing.
func (r *SessionRepository) Session() (*models.Session, error) {
	raw, err := r.get(KeyUser)
	if err != nil {
		return nil, err
	}
	token, err := r.get(KeyToken)
	if err != nil {
		return nil, err
	}

	user, err := models.UnmarshalUser(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	return &models.Session{User: user, Token: string(token)}, nil
}

// Save writes the user and token keys in a single transaction.
func (r *SessionRepository) Save(session *models.Session) error {
	if !session.Valid() {
		return fmt.Errorf("%w: session requires a user and a token", shared.ErrInvalidInput)
	}

	raw, err := models.MarshalUser(session.User)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrStorage, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for key, value := range map[string][]byte{KeyUser: raw, KeyToken: []byte(session.Token)} {
		if err := put(tx, key, value, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit session: %v", shared.ErrStorage, err)
	}
	return nil
}

// SaveUser replaces the stored user, leaving the token untouched.
func (r *SessionRepository) SaveUser(user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", shared.ErrInvalidInput)
	}

	raw, err := models.MarshalUser(user)
	if err != nil {
		return err
	}
	return put(r.db, KeyUser, raw, time.Now().UTC())
}

// RawUser returns the "user" value exactly as stored.
func (r *SessionRepository) RawUser() ([]byte, error) {
	return r.get(KeyUser)
}

// Token returns the stored token.
func (r *SessionRepository) Token() (string, error) {
	token, err := r.get(KeyToken)
	return string(token), err
}

// Clear removes every stored key.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM storage"); err != nil {
		return fmt.Errorf("%w: failed to clear storage: %v", shared.ErrStorage, err)
	}
	return nil
}

// Keys lists the stored keys in name order.
func (r *SessionRepository) Keys() ([]string, error) {
	rows, err := r.db.Query("SELECT key FROM storage ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query keys: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: failed to scan key: %v", shared.ErrStorage, err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %v", shared.ErrStorage, err)
	}
	return keys, nil
}

func (r *SessionRepository) get(key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRow("SELECT value FROM storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: missing %q", shared.ErrNoSession, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %q: %v", shared.ErrStorage, key, err)
	}
	return value, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func put(e execer, key string, value []byte, now time.Time) error {
	query := `
		INSERT INTO storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := e.Exec(query, key, value, now); err != nil {
		return fmt.Errorf("%w: failed to write %q: %v", shared.ErrStorage, key, err)
	}
	return nil
}
