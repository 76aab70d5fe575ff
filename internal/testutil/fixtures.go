package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// RepoRoot returns the module root directory.
func RepoRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("testutil: cannot locate source file")
	}
	// file is <root>/internal/testutil/fixtures.go
	return filepath.Dir(filepath.Dir(filepath.Dir(file)))
}

// Fixture returns the path of a file under the shared testdata directory,
// e.g. Fixture(t, "competitions", "cup.json").
func Fixture(t testing.TB, elem ...string) string {
	t.Helper()
	return filepath.Join(append([]string{RepoRoot(t), "testdata"}, elem...)...)
}
