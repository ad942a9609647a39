package userdict

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dictionary interface {
	Add(word string, frequency int) error
	Remove(word string) error
	Contains(word string) (bool, error)
	Words() (map[string]int, error)
	Bump(word string, kind AdditionType) (int, error)
	Close() error
}

func openBoth(t *testing.T) map[string]dictionary {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "user.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return map[string]dictionary{
		"sqlite": s,
		"memory": NewMemory(),
	}
}

func TestAddContainsRemove(t *testing.T) {
	for name, d := range openBoth(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, d.Add("Gopher", 250))

			ok, err := d.Contains("gopher")
			require.NoError(t, err)
			assert.True(t, ok)

			words, err := d.Words()
			require.NoError(t, err)
			assert.Equal(t, map[string]int{"gopher": 250}, words)

			require.NoError(t, d.Remove("GOPHER"))
			ok, err = d.Contains("gopher")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, d.Remove("never-added"))
		})
	}
}

func TestBumpCountsPerKind(t *testing.T) {
	for name, d := range openBoth(t) {
		t.Run(name, func(t *testing.T) {
			n, err := d.Bump("typr", Typed)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			n, err = d.Bump("Typr", Typed)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			n, err = d.Bump("typr", Picked)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			require.NoError(t, d.Remove("typr"))
			n, err = d.Bump("typr", Typed)
			require.NoError(t, err)
			assert.Equal(t, 1, n, "remove resets the counters")
		})
	}
}

func TestEmptyWordRejected(t *testing.T) {
	for name, d := range openBoth(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, d.Add("  ", 1), ErrEmptyWord)
			_, err := d.Bump("", Picked)
			assert.ErrorIs(t, err, ErrEmptyWord)
		})
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Add("persisted", 10))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	ok, err := s.Contains("persisted")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCloseNilDB(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}

func TestAdditionTypeString(t *testing.T) {
	assert.Equal(t, "typed", Typed.String())
	assert.Equal(t, "picked", Picked.String())
	assert.Equal(t, "AdditionType(9)", AdditionType(9).String())
}
