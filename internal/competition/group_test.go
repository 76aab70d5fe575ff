package competition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vbc/internal/document"
	"github.com/roach88/vbc/internal/outcome"
	"github.com/roach88/vbc/internal/standings"
)

// =============================================================================
// Matches and outcomes
// =============================================================================

func TestMatch_Outcome(t *testing.T) {
	c := loadCup(t)

	pa2 := mustMatch(t, c, "P", "A", "PA2")
	assert.True(t, pa2.IsComplete())
	assert.False(t, pa2.IsDraw())
	assert.Equal(t, 2, pa2.HomeSets())
	assert.Equal(t, 1, pa2.AwaySets())
	assert.Equal(t, outcome.Home, pa2.Result().Winner)
	assert.Equal(t, "P:A:PA2", pa2.Path())
	assert.Equal(t, "PA2", pa2.ID())

	winner, err := pa2.WinnerTeamID()
	require.NoError(t, err)
	assert.Equal(t, "TC", winner)
	loser, err := pa2.LoserTeamID()
	require.NoError(t, err)
	assert.Equal(t, "TD", loser)
}

func TestCompetition_MatchByPath(t *testing.T) {
	c := loadCup(t)

	m, ok := c.MatchByPath("F:KO:3RD")
	require.True(t, ok)
	assert.Equal(t, "F:KO:3RD", m.Path())

	for _, path := range []string{"", "PA1", "P:PA1", "P:B:PA1", "P:A:PA9", "X:A:PA1"} {
		_, ok := c.MatchByPath(path)
		assert.False(t, ok, path)
	}
}

func TestMatch_ScorelessContinuousIsUndetermined(t *testing.T) {
	c := loadCup(t)
	ex1 := mustMatch(t, c, "C", "EX", "EX1")

	require.NoError(t, ex1.SetScores([]int{0}, []int{0}, boolPtr(true)))
	assert.False(t, ex1.IsComplete())

	_, err := ex1.WinnerTeamID()
	require.Error(t, err)
	assert.ErrorIs(t, err, outcome.ErrMatchIncomplete)
	assert.Contains(t, err.Error(), "match incomplete")
}

func TestMatch_SetScoresValidatesBeforeCommit(t *testing.T) {
	c := loadCup(t)
	pa4 := mustMatch(t, c, "P", "A", "PA4")
	rev := c.Revision()

	err := pa4.SetScores([]int{25, 25, 25, 25}, []int{10, 10, 10, 10}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, outcome.ErrTooManySets)
	assert.Equal(t, ErrInvalidScores, CodeOf(err))

	err = pa4.SetScores([]int{25}, []int{10, 10}, nil)
	assert.ErrorIs(t, err, outcome.ErrScoreLengthMismatch)

	assert.Empty(t, pa4.Home().Scores, "rejected scores are not applied")
	assert.False(t, pa4.IsComplete())
	assert.Equal(t, rev, c.Revision())

	home := []int{25, 25}
	require.NoError(t, pa4.SetScores(home, []int{10, 10}, nil))
	home[0] = 0
	assert.Equal(t, []int{25, 25}, pa4.Home().Scores, "scores are copied")
	assert.Greater(t, c.Revision(), rev)
}

// =============================================================================
// Completeness and cache invalidation
// =============================================================================

func TestCompleteness(t *testing.T) {
	c := loadCup(t)
	pool := mustGroup(t, c, "P", "A")
	pools, _ := c.Stage("P")

	assert.False(t, pool.IsComplete())
	assert.False(t, pools.IsComplete())
	assert.False(t, c.IsComplete())

	completePools(t, c)
	assert.True(t, pool.IsComplete(), "cached completeness is invalidated by SetScores")
	assert.True(t, pools.IsComplete())
	assert.False(t, c.IsComplete())

	playKnockout(t, c)
	require.NoError(t, mustMatch(t, c, "C", "EX", "EX1").SetScores([]int{21}, []int{15}, boolPtr(true)))
	assert.True(t, c.IsComplete())

	pool.AddBreak(Break{Name: "Awards"})
	assert.True(t, pool.IsComplete(), "breaks do not affect completeness")

	_, err := pool.AddMatch(MatchSpec{
		ID:   "PA5",
		Home: MatchTeam{ID: "TA"},
		Away: MatchTeam{ID: "TD"},
	})
	require.NoError(t, err)
	assert.False(t, pool.IsComplete(), "adding a match invalidates completeness")
	assert.False(t, c.IsComplete())
}

func TestGroup_AddMatchDuplicate(t *testing.T) {
	c := loadCup(t)
	pool := mustGroup(t, c, "P", "A")

	_, err := pool.AddMatch(MatchSpec{ID: "PA1", Home: MatchTeam{ID: "TA"}, Away: MatchTeam{ID: "TB"}})
	require.Error(t, err)
	assert.Equal(t, ErrDuplicateMatch, CodeOf(err))
	assert.True(t, pool.HasMatch("PA1"))
	assert.False(t, pool.HasMatch("PA9"))
	assert.Len(t, pool.AllMatches(), 4)
}

// =============================================================================
// Team enumeration
// =============================================================================

func matchIDs(ms []*Match) []string {
	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID())
	}
	return ids
}

func TestGroup_MatchesAndTeamIDs(t *testing.T) {
	c := loadCup(t)
	pool := mustGroup(t, c, "P", "A")

	assert.Equal(t, []string{"PA1", "PA3"}, matchIDs(pool.Matches("TA", FilterPlaying)))
	assert.Equal(t, []string{"PA2"}, matchIDs(pool.Matches("TA", FilterOfficiating)))
	assert.Equal(t, []string{"PA1", "PA2", "PA3"}, matchIDs(pool.Matches("TA", FilterAll)))

	assert.Equal(t, []string{"TA", "TB", "TC", "TD"}, pool.TeamIDs(FilterPlaying))
	assert.Equal(t, []string{"TC", "TA", "TD"}, pool.TeamIDs(FilterOfficiating))
	assert.Equal(t, []string{"TA", "TB", "TC", "TD"}, pool.TeamIDs(FilterAll))

	ko := mustGroup(t, c, "F", "KO")
	assert.Empty(t, ko.TeamIDs(FilterAll), "references are unresolved")

	completePools(t, c)
	assert.Equal(t, []string{"TC", "TD", "TA", "TB"}, ko.TeamIDs(FilterPlaying))
	assert.Equal(t, []string{"SF2"}, matchIDs(ko.Matches("TC", FilterOfficiating)))

	finals, _ := c.Stage("F")
	assert.Equal(t, []string{"SF1", "SF2"}, matchIDs(finals.Matches("TC", FilterAll)))
	assert.Equal(t, []string{"TC", "TD", "TA", "TB"}, finals.TeamIDs(FilterAll))
}

// =============================================================================
// League tables
// =============================================================================

func TestGroup_Table(t *testing.T) {
	c := loadCup(t)
	pool := mustGroup(t, c, "P", "A")

	table, err := pool.Table()
	require.NoError(t, err)
	require.Len(t, table.Entries, 4, "teams in unplayed matches still get a row")
	assert.Equal(t, []string{"TC", "TA", "TB", "TD"}, entryIDs(table))

	completePools(t, c)
	table, err = pool.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"TC", "TA", "TB", "TD"}, entryIDs(table))

	ta, ok := table.Entry("TA")
	require.True(t, ok)
	assert.Equal(t, 2, ta.Played)
	assert.Equal(t, 1, ta.Wins)
	assert.Equal(t, 1, ta.Losses)
	assert.Equal(t, 3, ta.SetsFor)
	assert.Equal(t, 2, ta.SetsAgainst)
	assert.Equal(t, 105, ta.PointsFor)
	assert.Equal(t, 98, ta.PointsAgainst)
	assert.Equal(t, 3, ta.Points)
	assert.Equal(t, 1, ta.H2H["TB"])

	tb, _ := table.Entry("TB")
	assert.Equal(t, 3, tb.Points, "TA and TB are level on points")

	_, err = mustGroup(t, c, "F", "KO").Table()
	require.Error(t, err)
	assert.Equal(t, ErrNotLeague, CodeOf(err))
}

func TestGroup_TableSkipsUnresolvedTeams(t *testing.T) {
	doc := cupDoc(t)
	// Turn the knockout into a league fed by the pool.
	ko := &doc.Stages[1].Groups[0]
	ko.Type = document.GroupLeague
	ko.Knockout = nil
	ko.League = &document.LeagueConfig{Ordering: []string{"PTS"}}
	c, err := FromDocument(doc)
	require.NoError(t, err)

	table, err := mustGroup(t, c, "F", "KO").Table()
	require.NoError(t, err)
	assert.Empty(t, table.Entries)

	completePools(t, c)
	table, err = mustGroup(t, c, "F", "KO").Table()
	require.NoError(t, err)
	assert.Len(t, table.Entries, 4)
}

func TestGroup_LeaguePosition(t *testing.T) {
	c := loadCup(t)
	pool := mustGroup(t, c, "P", "A")

	_, err := pool.LeaguePosition(1)
	require.Error(t, err)
	assert.Equal(t, ErrGroupIncomplete, CodeOf(err))

	completePools(t, c)
	team, err := pool.LeaguePosition(1)
	require.NoError(t, err)
	assert.Equal(t, "Charlie", team.Name)

	_, err = pool.LeaguePosition(0)
	assert.ErrorIs(t, err, standings.ErrPositionOutOfRange)
}

func entryIDs(t *standings.Table) []string {
	ids := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		ids = append(ids, e.TeamID)
	}
	return ids
}

// =============================================================================
// Knockout standing
// =============================================================================

func TestGroup_KnockoutStanding(t *testing.T) {
	c := loadCup(t)
	ko := mustGroup(t, c, "F", "KO")

	placements, err := ko.KnockoutStanding()
	require.NoError(t, err)
	require.Len(t, placements, 4)
	for _, p := range placements {
		assert.True(t, p.Team.IsUnknown(), p.Position)
	}

	completePools(t, c)
	playKnockout(t, c)
	placements, err = ko.KnockoutStanding()
	require.NoError(t, err)

	got := make(map[string]string)
	for _, p := range placements {
		got[p.Position] = p.Team.ID
	}
	assert.Equal(t, map[string]string{"1st": "TC", "2nd": "TB", "3rd": "TD", "4th": "TA"}, got)

	_, err = mustGroup(t, c, "P", "A").KnockoutStanding()
	assert.Equal(t, ErrNoKnockoutConfig, CodeOf(err))
}

// =============================================================================
// Maybe-reachability
// =============================================================================

func TestMayHaveTeam(t *testing.T) {
	c := loadCup(t)
	pool := mustGroup(t, c, "P", "A")
	ko := mustGroup(t, c, "F", "KO")
	ex := mustGroup(t, c, "C", "EX")

	assert.False(t, pool.MayHaveTeam("TA"), "TA is known in the pool")
	assert.Equal(t, []string{"TA", "TB", "TC", "TD"}, ko.MaybeTeamIDs())
	assert.Equal(t, []string{"TA", "TB", "TC", "TD"}, ex.MaybeTeamIDs(), "maybe through the knockout")
	assert.False(t, ko.MayHaveTeam("TZ"))

	completePools(t, c)
	assert.Empty(t, ko.MaybeTeamIDs(), "every knockout team is now known")
	assert.True(t, ex.MayHaveTeam("TA"))

	finals, _ := c.Stage("F")
	classification, _ := c.Stage("C")
	assert.False(t, finals.MayHaveTeam("TA"))
	assert.Equal(t, []string{"TA", "TB", "TC", "TD"}, classification.MaybeTeamIDs())

	playKnockout(t, c)
	assert.Empty(t, ex.MaybeTeamIDs(), "upstream complete")
	assert.Equal(t, []string{"TB", "TD"}, ex.TeamIDs(FilterPlaying))
}

func TestMayHaveTeam_CycleGuard(t *testing.T) {
	c, err := FromDocument(cyclicDoc())
	require.NoError(t, err)
	a := mustGroup(t, c, "S", "A")

	assert.True(t, a.MayHaveTeam("T2"))
	assert.False(t, a.MayHaveTeam("T3"))
	assert.Equal(t, []string{"T2"}, a.MaybeTeamIDs())
}

// =============================================================================
// Round trip
// =============================================================================

func TestDocument_RoundTrip(t *testing.T) {
	c := loadCup(t)
	completePools(t, c)
	setScores(t, c, "F", "KO", "SF1", []int{25, 25}, []int{15, 15})

	data, err := document.Marshal(c.Document())
	require.NoError(t, err)
	doc, err := document.Decode("roundtrip.json", data, document.FormatJSON)
	require.NoError(t, err)
	reloaded, err := FromDocument(doc)
	require.NoError(t, err)

	for _, g := range c.Groups() {
		rg := mustGroup(t, reloaded, g.Stage().ID, g.ID)
		for _, m := range g.AllMatches() {
			rm, ok := rg.MatchByID(m.ID())
			require.True(t, ok)
			assert.Equal(t, m.Result(), rm.Result(), m.Path())
		}
		assert.Equal(t, g.IsComplete(), rg.IsComplete(), g.Key().String())
	}

	want, err := mustGroup(t, c, "P", "A").Table()
	require.NoError(t, err)
	got, err := mustGroup(t, reloaded, "P", "A").Table()
	require.NoError(t, err)
	assert.Equal(t, want.Entries, got.Entries)

	for _, ref := range []string{"{F:KO:SF1:winner}", "{F:KO:SF1:loser}", "{P:A:league:3}"} {
		assert.Equal(t, c.Resolve(ref).ID, reloaded.Resolve(ref).ID, ref)
	}

	again, err := document.Marshal(reloaded.Document())
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}
