package competition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/vbc/internal/document"
	"github.com/roach88/vbc/internal/testutil"
)

func boolPtr(b bool) *bool { return &b }

func cupDoc(t *testing.T) *document.Competition {
	t.Helper()
	doc, err := document.Load(testutil.Fixture(t, "competitions", "cup.json"))
	require.NoError(t, err)
	return doc
}

func loadCup(t *testing.T, opts ...Option) *Competition {
	t.Helper()
	c, err := FromDocument(cupDoc(t), opts...)
	require.NoError(t, err)
	return c
}

func mustGroup(t *testing.T, c *Competition, stage, group string) *Group {
	t.Helper()
	s, ok := c.Stage(stage)
	require.True(t, ok, "stage %s", stage)
	g, ok := s.Group(group)
	require.True(t, ok, "group %s:%s", stage, group)
	return g
}

func mustMatch(t *testing.T, c *Competition, stage, group, id string) *Match {
	t.Helper()
	m, ok := mustGroup(t, c, stage, group).MatchByID(id)
	require.True(t, ok, "match %s:%s:%s", stage, group, id)
	return m
}

func setScores(t *testing.T, c *Competition, stage, group, id string, home, away []int) {
	t.Helper()
	require.NoError(t, mustMatch(t, c, stage, group, id).SetScores(home, away, nil))
}

// completePools finishes pool A: TC 6 pts, TA 3, TB 3, TD 0.
func completePools(t *testing.T, c *Competition) {
	t.Helper()
	setScores(t, c, "P", "A", "PA4", []int{25, 25}, []int{10, 10})
}

// playKnockout plays every knockout match: TC beats TB in the final and TD
// beats TA for third.
func playKnockout(t *testing.T, c *Competition) {
	t.Helper()
	setScores(t, c, "F", "KO", "SF1", []int{25, 25}, []int{15, 15})
	setScores(t, c, "F", "KO", "SF2", []int{20, 22}, []int{25, 25})
	setScores(t, c, "F", "KO", "FIN", []int{25, 25}, []int{20, 20})
	setScores(t, c, "F", "KO", "3RD", []int{25, 25}, []int{23, 19})
}
