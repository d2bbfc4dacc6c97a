// Package credstore persists the Jira credentials between invocations.
// Credentials are the only state this tool keeps; domain data is always
// fetched fresh.
package credstore

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"
)

const (
	busyTimeoutMS   = 5000
	maxOpenConns    = 1
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS credentials (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  url TEXT NOT NULL,
  username TEXT NOT NULL,
  secret BLOB NOT NULL,
  logged_in INTEGER NOT NULL DEFAULT 0,
  updated_at TEXT NOT NULL
);
`

// Credentials holds one login for one Jira server.
type Credentials struct {
	URL       string
	Username  string
	Secret    string
	LoggedIn  bool
	UpdatedAt time.Time
}

// Store wraps the SQLite database holding the credential row.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database and bootstraps the schema.
func Open(path string) (*Store, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores the credentials, replacing any previous login. The secret is
// sealed before it touches disk.
func (s *Store) Save(ctx context.Context, creds Credentials) error {
	if creds.URL == "" || creds.Username == "" {
		return fmt.Errorf("url and username are required")
	}
	sealed, err := sealSecret([]byte(creds.Secret))
	if err != nil {
		return err
	}
	loggedIn := 0
	if creds.LoggedIn {
		loggedIn = 1
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credentials (id, url, username, secret, logged_in, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  url = excluded.url,
		  username = excluded.username,
		  secret = excluded.secret,
		  logged_in = excluded.logged_in,
		  updated_at = excluded.updated_at`,
		creds.URL, creds.Username, sealed, loggedIn, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Load returns the stored credentials. The second return reports whether a
// credential row exists at all.
func (s *Store) Load(ctx context.Context) (Credentials, bool, error) {
	var (
		creds     Credentials
		sealed    []byte
		loggedIn  int
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT url, username, secret, logged_in, updated_at FROM credentials WHERE id = 1").
		Scan(&creds.URL, &creds.Username, &sealed, &loggedIn, &updatedAt)
	if err == sql.ErrNoRows {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}

	secret, err := openSecret(sealed)
	if err != nil {
		return Credentials{}, false, fmt.Errorf("stored secret is unreadable: %w", err)
	}
	creds.Secret = string(secret)
	creds.LoggedIn = loggedIn != 0
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		creds.UpdatedAt = t
	}
	return creds, true, nil
}

// Clear removes the stored credentials.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM credentials WHERE id = 1")
	return err
}

func configureDB(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// Tune connection pool for local usage.
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}
