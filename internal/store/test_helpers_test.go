package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/vbc/internal/competition"
	"github.com/roach88/vbc/internal/testutil"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// loadCup loads the shared cup fixture with pool A completed.
func loadCup(t *testing.T) *competition.Competition {
	t.Helper()
	c, err := competition.Load(testutil.Fixture(t, "competitions", "cup.json"))
	require.NoError(t, err)

	pa4, ok := c.Groups()[0].MatchByID("PA4")
	require.True(t, ok)
	require.NoError(t, pa4.SetScores([]int{25, 25}, []int{10, 10}, nil))
	return c
}
