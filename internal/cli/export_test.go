package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportText(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")

	out, _, err := execute(NewExportCommand(&RootOptions{Format: "text"}), cupPath(t), "--db", db, "--id", "round-1")
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Exported report round-1 (seq 1) to "+db)
	assert.Contains(t, out, "9 match outcome(s), 4 table row(s), 4 placing(s)")
}

func TestExportAppendsReports(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")

	_, _, err := execute(NewExportCommand(&RootOptions{Format: "json"}), cupPath(t), "--db", db, "--id", "round-1")
	require.NoError(t, err)

	out, _, err := execute(NewExportCommand(&RootOptions{Format: "json"}), cupPath(t), "--db", db)
	require.NoError(t, err)

	var result ExportResult
	resp := decodeData(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(2), result.Report.Seq)
	assert.Len(t, result.Report.ID, 36, "generated IDs are UUIDs")
	assert.Equal(t, "Summer Cup", result.Report.Competition)
	assert.Equal(t, db, result.Database)
	assert.Equal(t, 9, result.Outcomes)
}

func TestExportDuplicateID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")

	_, _, err := execute(NewExportCommand(&RootOptions{Format: "text"}), cupPath(t), "--db", db, "--id", "round-1")
	require.NoError(t, err)

	out, _, err := execute(NewExportCommand(&RootOptions{Format: "text"}), cupPath(t), "--db", db, "--id", "round-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E007]")
}

func TestExportRequiresDB(t *testing.T) {
	_, _, err := execute(NewExportCommand(&RootOptions{Format: "text"}), cupPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestExportBadDatabasePath(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing", "dir", "results.db")

	out, _, err := execute(NewExportCommand(&RootOptions{Format: "text"}), cupPath(t), "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E007]")
}
