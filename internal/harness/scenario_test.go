package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vbc/internal/testutil"
)

// writeScenario writes body to a temporary scenario file.
func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func cupPath(t *testing.T) string {
	t.Helper()
	return testutil.Fixture(t, "competitions", "cup.json")
}

func TestLoadScenario_Fixture(t *testing.T) {
	s, err := LoadScenario(testutil.Fixture(t, "scenarios", "pool_complete.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "pool_complete", s.Name)
	assert.Equal(t, cupPath(t), s.Document, "document resolved relative to the scenario")
	require.Len(t, s.Scores, 2)
	assert.Equal(t, "P:A:PA4", s.Scores[0].Match)
	assert.Equal(t, []int{25, 25}, s.Scores[0].Home)
	assert.Equal(t, "E211", s.Scores[1].Error)
	assert.Equal(t, "TC", s.Expect.Resolve["{P:A:league:1}"])
	require.Len(t, s.Expect.Standings, 1)
	assert.Equal(t, []string{"TC", "TA", "TB", "TD"}, s.Expect.Standings[0].Order)
	require.NotNil(t, s.Expect.Cycles)
	assert.Equal(t, 0, *s.Expect.Cycles)
}

func TestLoadScenario_AbsoluteDocument(t *testing.T) {
	path := writeScenario(t, `
name: abs
description: absolute document path
document: `+cupPath(t)+`
expect:
  complete: false
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, cupPath(t), s.Document)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing name",
			body:    "description: d\ndocument: DOC\nexpect: {complete: true}\n",
			message: "name is required",
		},
		{
			name:    "missing description",
			body:    "name: n\ndocument: DOC\nexpect: {complete: true}\n",
			message: "description is required",
		},
		{
			name:    "missing document",
			body:    "name: n\ndescription: d\nexpect: {complete: true}\n",
			message: "document is required",
		},
		{
			name:    "document not found",
			body:    "name: n\ndescription: d\ndocument: nope.json\nexpect: {complete: true}\n",
			message: "document not found",
		},
		{
			name:    "no checks",
			body:    "name: n\ndescription: d\ndocument: DOC\n",
			message: "at least one check",
		},
		{
			name:    "unknown field",
			body:    "name: n\ndescription: d\ndocument: DOC\nexpect: {complete: true}\nflow: []\n",
			message: "failed to parse YAML",
		},
		{
			name:    "bad match path",
			body:    "name: n\ndescription: d\ndocument: DOC\nscores: [{match: PA1, home: [], away: []}]\nexpect: {complete: true}\n",
			message: "scores[0]",
		},
		{
			name:    "bad winner",
			body:    "name: n\ndescription: d\ndocument: DOC\nexpect: {outcomes: [{match: \"P:A:PA1\", winner: tie}]}\n",
			message: "winner must be home, away or none",
		},
		{
			name:    "bad standings group",
			body:    "name: n\ndescription: d\ndocument: DOC\nexpect: {standings: [{group: PA, order: [TA]}]}\n",
			message: "expect.standings[0]",
		},
		{
			name:    "empty standings check",
			body:    "name: n\ndescription: d\ndocument: DOC\nexpect: {standings: [{group: \"P:A\"}]}\n",
			message: "order or points is required",
		},
		{
			name:    "maybe without team",
			body:    "name: n\ndescription: d\ndocument: DOC\nexpect: {maybe: [{group: \"F:KO\", maybe: true}]}\n",
			message: "team is required",
		},
		{
			name:    "error combined with checks",
			body:    "name: n\ndescription: d\ndocument: DOC\nexpect: {error: E221, complete: true}\n",
			message: "cannot be combined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.ReplaceAll(tt.body, "DOC", cupPath(t))
			_, err := LoadScenario(writeScenario(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
