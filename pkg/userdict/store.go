// Package userdict persists words the user taught the keyboard, along with the
// per-word counters that decide when a typed or picked word gets learned.
package userdict

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrEmptyWord is returned when a blank word is stored or counted.
var ErrEmptyWord = errors.New("userdict: empty word")

// AdditionType tells how a word reached the committed text.
type AdditionType int

const (
	// Typed words were committed exactly as the user typed them.
	Typed AdditionType = iota
	// Picked words were chosen from the suggestion strip.
	Picked
)

func (a AdditionType) String() string {
	switch a {
	case Typed:
		return "typed"
	case Picked:
		return "picked"
	}
	return fmt.Sprintf("AdditionType(%d)", int(a))
}

const schema = `
CREATE TABLE IF NOT EXISTS words (
    word        TEXT PRIMARY KEY,
    frequency   INTEGER NOT NULL,
    added_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
    word        TEXT PRIMARY KEY,
    typed       INTEGER NOT NULL DEFAULT 0,
    picked      INTEGER NOT NULL DEFAULT 0,
    updated_at  INTEGER NOT NULL
);
`

// Store is the SQLite backed user dictionary.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create user dictionary directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open user dictionary: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add stores word with the given frequency, replacing an older entry.
func (s *Store) Add(word string, frequency int) error {
	word = normalize(word)
	if word == "" {
		return ErrEmptyWord
	}
	_, err := s.db.Exec(`
		INSERT INTO words (word, frequency, added_at) VALUES (?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET frequency = excluded.frequency`,
		word, frequency, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("add word %q: %w", word, err)
	}
	return nil
}

// Remove deletes word and its counters. Removing a missing word is not an error.
func (s *Store) Remove(word string) error {
	word = normalize(word)
	if word == "" {
		return ErrEmptyWord
	}
	if _, err := s.db.Exec(`DELETE FROM words WHERE word = ?`, word); err != nil {
		return fmt.Errorf("remove word %q: %w", word, err)
	}
	if _, err := s.db.Exec(`DELETE FROM candidates WHERE word = ?`, word); err != nil {
		return fmt.Errorf("remove candidate %q: %w", word, err)
	}
	return nil
}

// Contains reports whether word is stored.
func (s *Store) Contains(word string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM words WHERE word = ?`, normalize(word)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("lookup word: %w", err)
	}
	return n > 0, nil
}

// Words returns every stored word with its frequency.
func (s *Store) Words() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT word, frequency FROM words`)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	words := make(map[string]int)
	for rows.Next() {
		var w string
		var f int
		if err := rows.Scan(&w, &f); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words[w] = f
	}
	return words, rows.Err()
}

// Bump increments the counter for kind and returns its new value.
func (s *Store) Bump(word string, kind AdditionType) (int, error) {
	word = normalize(word)
	if word == "" {
		return 0, ErrEmptyWord
	}
	column := "typed"
	if kind == Picked {
		column = "picked"
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin bump: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO candidates (word, `+column+`, updated_at) VALUES (?, 1, ?)
		ON CONFLICT(word) DO UPDATE SET `+column+` = `+column+` + 1, updated_at = excluded.updated_at`,
		word, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("bump %s count for %q: %w", kind, word, err)
	}

	var count int
	if err := tx.QueryRow(`SELECT `+column+` FROM candidates WHERE word = ?`, word).Scan(&count); err != nil {
		return 0, fmt.Errorf("read %s count for %q: %w", kind, word, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bump: %w", err)
	}
	return count, nil
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
