// Package session persists the authenticated session (bearer token plus
// serialized user) in a local SQLite database, and watches the token's
// expiry. It is the durable client storage behind the user store's
// hydration hook.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mkolev/recipe-club/internal/model"
)

// ErrNoSession is returned by Load when no complete session is stored.
// A token without a user (or vice versa) counts as no session.
var ErrNoSession = errors.New("no stored session")

// Open opens (creating if needed) the state database at path and runs
// pending migrations.
func Open(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs all pending goose migrations from the embedded files.
func Migrate(db *sqlx.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	sub, err := fs.Sub(Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("sub migrations fs: %w", err)
	}
	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)
	if err := goose.Up(db.DB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

type record struct {
	ID        int       `db:"id"`
	Token     string    `db:"token"`
	UserJSON  string    `db:"user_json"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store reads and writes the single stored session row. Token and user are
// always written together and removed together; Load treats a partial row
// as no session at all. The current token is cached in memory so that
// Token() can serve the HTTP layer without touching the database.
type Store struct {
	db *sqlx.DB

	mu    sync.Mutex
	token string
}

// NewStore wraps db. The cached token is primed from the database so a
// Store is usable as a gateway.TokenSource immediately.
func NewStore(db *sqlx.DB) (*Store, error) {
	s := &Store{db: db}
	tok, _, err := s.Load(context.Background())
	if err != nil && !errors.Is(err, ErrNoSession) {
		return nil, err
	}
	s.token = tok
	return s, nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Save stores token and user atomically, replacing any previous session.
func (s *Store) Save(ctx context.Context, token string, user model.User) error {
	uj, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, user_json, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			user_json = excluded.user_json,
			updated_at = excluded.updated_at
	`, token, string(uj), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Load returns the stored token and user, or ErrNoSession when either is
// missing.
func (s *Store) Load(ctx context.Context) (string, model.User, error) {
	var rec record
	err := s.db.GetContext(ctx, &rec, `SELECT * FROM session WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.User{}, ErrNoSession
	}
	if err != nil {
		return "", model.User{}, fmt.Errorf("load session: %w", err)
	}
	if rec.Token == "" || rec.UserJSON == "" {
		return "", model.User{}, ErrNoSession
	}
	var user model.User
	if err := json.Unmarshal([]byte(rec.UserJSON), &user); err != nil {
		return "", model.User{}, ErrNoSession
	}
	return rec.Token, user, nil
}

// SaveUser replaces only the stored user, keeping the token. Used by
// profile updates.
func (s *Store) SaveUser(ctx context.Context, user model.User) error {
	uj, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE session SET user_json = ?, updated_at = ? WHERE id = 1
	`, string(uj), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Clear removes the stored session. Safe to call when nothing is stored.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
