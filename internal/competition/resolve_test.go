package competition

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vbc/internal/document"
	"github.com/roach88/vbc/internal/outcome"
)

// =============================================================================
// Resolve
// =============================================================================

func TestResolve_Literal(t *testing.T) {
	c := loadCup(t)

	assert.Equal(t, "Alpha", c.Resolve("TA").Name)
	assert.True(t, c.Resolve("TZ").IsUnknown())
	assert.True(t, c.Resolve("").IsUnknown())
	assert.True(t, c.Resolve("{P:A:league:1").IsUnknown(), "malformed references resolve to unknown")

	unknown := c.Resolve("TZ")
	assert.Equal(t, UnknownTeamID, unknown.ID)
	assert.Equal(t, UnknownTeamName, unknown.Name)
	assert.Same(t, c.UnknownTeam(), unknown)
}

func TestResolve_LeaguePositionNeedsCompleteGroup(t *testing.T) {
	c := loadCup(t)

	assert.True(t, c.Resolve("{P:A:league:1}").IsUnknown())

	completePools(t, c)
	assert.Equal(t, "TC", c.Resolve("{P:A:league:1}").ID)
	assert.Equal(t, "TA", c.Resolve("{P:A:league:2}").ID, "TA beat TB on head-to-head")
	assert.Equal(t, "TB", c.Resolve("{P:A:league:3}").ID)
	assert.Equal(t, "TD", c.Resolve("{P:A:league:4}").ID)
	assert.True(t, c.Resolve("{P:A:league:5}").IsUnknown())
	assert.True(t, c.Resolve("{F:KO:league:1}").IsUnknown(), "knockout has no league positions")
	assert.True(t, c.Resolve("{X:A:league:1}").IsUnknown())
}

func TestResolve_MatchWinnerAndLoser(t *testing.T) {
	c := loadCup(t)
	completePools(t, c)

	assert.Equal(t, "TC", c.Resolve("{P:A:PA2:winner}").ID)
	assert.Equal(t, "TD", c.Resolve("{P:A:PA2:loser}").ID)
	assert.True(t, c.Resolve("{F:KO:SF2:winner}").IsUnknown(), "match not played yet")
	assert.True(t, c.Resolve("{F:KO:NOPE:winner}").IsUnknown())

	// Away side wins SF2.
	setScores(t, c, "F", "KO", "SF2", []int{20, 22}, []int{25, 25})
	assert.Equal(t, "TB", c.Resolve("{F:KO:SF2:winner}").ID)
	assert.Equal(t, "TA", c.Resolve("{F:KO:SF2:loser}").ID)
}

func TestResolve_AwayWinnerOfLeagueMatch(t *testing.T) {
	three, two := 3, 2
	doc := &document.Competition{
		Name: "League",
		Teams: []document.Team{
			{ID: "HOME", Name: "Home Team"},
			{ID: "AWAY", Name: "Away Team"},
		},
		Stages: []document.Stage{{
			ID: "L",
			Groups: []document.Group{{
				ID:        "RL",
				Type:      document.GroupLeague,
				MatchType: string(outcome.Sets),
				Sets:      &document.SetConfig{MaxSets: &three, SetsToWin: &two},
				League:    &document.LeagueConfig{Ordering: []string{"PTS"}},
				Matches: []document.Entry{{
					Type:     document.EntryMatch,
					ID:       "RLM1",
					HomeTeam: &document.MatchTeam{ID: "HOME", Scores: []int{20, 25, 10}},
					AwayTeam: &document.MatchTeam{ID: "AWAY", Scores: []int{25, 20, 15}},
				}},
			}},
		}},
	}
	c, err := FromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, "AWAY", c.Resolve("{L:RL:RLM1:winner}").ID)
	assert.Equal(t, "HOME", c.Resolve("{L:RL:RLM1:loser}").ID)
}

func TestResolve_Ternary(t *testing.T) {
	c := loadCup(t)

	ref := "{P:A:league:1}=={P:A:PA2:winner}?TA:TB"
	assert.True(t, c.Resolve(ref).IsUnknown(), "operands undecided")

	completePools(t, c)
	assert.Equal(t, "TA", c.Resolve(ref).ID)
	assert.Equal(t, "TB", c.Resolve("{P:A:league:1}=={P:A:PA2:loser}?TA:TB").ID)
	assert.Equal(t, "TD", c.Resolve("{P:A:league:4}==TD?{P:A:PA2:loser}:TA").ID)
	assert.True(t, c.Resolve("{X:A:league:1}=={X:A:league:1}?TA:TB").IsUnknown(), "unknown operands never compare equal")
}

func TestResolve_Idempotent(t *testing.T) {
	c := loadCup(t)
	completePools(t, c)
	playKnockout(t, c)

	refs := []string{"TA", "{P:A:league:2}", "{F:KO:FIN:winner}", "{F:KO:SF1:winner}=={P:A:league:1}?TD:TA"}
	for _, ref := range refs {
		first := c.Resolve(ref)
		rev := c.Revision()
		assert.Same(t, first, c.Resolve(ref), ref)
		assert.Equal(t, rev, c.Revision(), "resolving must not mutate")
	}
}

func TestResolve_ChainedReferences(t *testing.T) {
	c := loadCup(t)
	completePools(t, c)
	playKnockout(t, c)

	// FIN home is {F:KO:SF1:winner}, which is {P:A:league:1}.
	assert.Equal(t, "TC", c.Resolve("{F:KO:FIN:winner}").ID)
	assert.Equal(t, "TB", c.Resolve("{F:KO:FIN:loser}").ID)
	assert.Equal(t, "TD", c.Resolve("{F:KO:3RD:winner}").ID)
	assert.Equal(t, "TA", c.Resolve("{F:KO:3RD:loser}").ID)
}

// =============================================================================
// ValidateTeamRef
// =============================================================================

func TestValidateTeamRef(t *testing.T) {
	c := loadCup(t)

	assert.NoError(t, c.ValidateTeamRef("TA", "F:KO:SF1", "homeTeam.id"))
	assert.NoError(t, c.ValidateTeamRef("{P:A:league:9}", "F:KO:SF1", "homeTeam.id"), "group not complete yet")
	assert.NoError(t, c.ValidateTeamRef("{F:KO:SF1:winner}=={F:KO:SF2:loser}?TA:{P:A:PA1:loser}", "X", "f"))

	err := c.ValidateTeamRef("{P:A}", "F:KO:SF1", "homeTeam.id")
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))
	assert.Contains(t, err.Error(), "[E220] F:KO:SF1 homeTeam.id:")
	assert.Contains(t, err.Error(), "must have four parts")

	err = c.ValidateTeamRef("{P:A:PA1:winner}=={P:A:PA2:winner}", "F:KO:SF1", "homeTeam.id")
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err), "ternary without branches")

	completePools(t, c)
	err = c.ValidateTeamRef("{P:A:league:9}", "F:KO:SF1", "homeTeam.id")
	require.Error(t, err)
	assert.Equal(t, ErrLeaguePosition, CodeOf(err))
	assert.True(t, IsReferenceError(err))
}

// =============================================================================
// Resolution never fails on cyclic documents
// =============================================================================

func cyclicDoc() *document.Competition {
	return &document.Competition{
		Name: "Cycle",
		Teams: []document.Team{
			{ID: "T1", Name: "One"},
			{ID: "T2", Name: "Two"},
			{ID: "T3", Name: "Three"},
		},
		Stages: []document.Stage{{
			ID: "S",
			Groups: []document.Group{
				{
					ID: "A", Type: document.GroupCrossover, MatchType: string(outcome.Continuous),
					Matches: []document.Entry{{
						Type: document.EntryMatch, ID: "A1",
						HomeTeam: &document.MatchTeam{ID: "{S:B:B1:winner}", Scores: []int{}},
						AwayTeam: &document.MatchTeam{ID: "T1", Scores: []int{}},
					}},
				},
				{
					ID: "B", Type: document.GroupCrossover, MatchType: string(outcome.Continuous),
					Matches: []document.Entry{{
						Type: document.EntryMatch, ID: "B1",
						HomeTeam: &document.MatchTeam{ID: "{S:A:A1:winner}", Scores: []int{}},
						AwayTeam: &document.MatchTeam{ID: "T2", Scores: []int{}},
					}},
				},
			},
		}},
	}
}

func TestAnalyzeReferenceCycles(t *testing.T) {
	c, err := FromDocument(cyclicDoc())
	require.NoError(t, err)

	warnings := c.AnalyzeReferenceCycles()
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"S:A", "S:B", "S:A"}, warnings[0].Path)
	assert.Equal(t, "warning", warnings[0].Level)
	assert.Contains(t, warnings[0].Message, "S:A → S:B → S:A")

	assert.Empty(t, loadCup(t).AnalyzeReferenceCycles(), "same-group references are not cycles")
}

func TestResolve_CyclicWinnersTerminate(t *testing.T) {
	c, err := FromDocument(cyclicDoc())
	require.NoError(t, err)

	a1 := mustMatch(t, c, "S", "A", "A1")
	b1 := mustMatch(t, c, "S", "B", "B1")
	require.NoError(t, a1.SetScores([]int{3}, []int{1}, boolPtr(true)))
	require.NoError(t, b1.SetScores([]int{3}, []int{1}, boolPtr(true)))

	// Each winner is the winner of the other match.
	assert.True(t, c.Resolve("{S:A:A1:winner}").IsUnknown())
	assert.Equal(t, "T1", c.Resolve("{S:A:A1:loser}").ID)
}

// =============================================================================
// League positions that depend on each other
// =============================================================================

// leagueCycleDoc has two leagues whose first match is hosted by the winner
// of the other league.
func leagueCycleDoc() *document.Competition {
	league := func(id, other, away string) document.Group {
		return document.Group{
			ID: id, Type: document.GroupLeague, MatchType: string(outcome.Continuous),
			Matches: []document.Entry{{
				Type: document.EntryMatch, ID: id + "1",
				HomeTeam: &document.MatchTeam{ID: "{S:" + other + ":league:1}", Scores: []int{}},
				AwayTeam: &document.MatchTeam{ID: away, Scores: []int{}},
			}},
		}
	}
	return &document.Competition{
		Name:  "League cycle",
		Teams: []document.Team{{ID: "T1", Name: "One"}, {ID: "T2", Name: "Two"}},
		Stages: []document.Stage{{
			ID:     "S",
			Groups: []document.Group{league("A", "B", "T1"), league("B", "A", "T2")},
		}},
	}
}

func TestFromDocument_RejectsLeagueCycles(t *testing.T) {
	_, err := FromDocument(leagueCycleDoc())
	require.Error(t, err)
	assert.Equal(t, ErrLeagueCycle, CodeOf(err))
	assert.True(t, IsReferenceError(err))
	assert.Contains(t, err.Error(), "S:A → S:B → S:A")

	doc := cupDoc(t)
	doc.Stages[0].Groups[0].Matches[4].HomeTeam.ID = "{P:A:league:1}"
	_, err = FromDocument(doc)
	require.Error(t, err)
	assert.Equal(t, ErrLeagueCycle, CodeOf(err))
	assert.Contains(t, err.Error(), "[E230] P:A:PA4 homeTeam.id")
}

func TestFromDocument_LeagueOfficialsMayReferToOwnTable(t *testing.T) {
	doc := cupDoc(t)
	doc.Stages[0].Groups[0].Matches[4].Officials.Team = "{P:A:league:1}"
	_, err := FromDocument(doc)
	require.NoError(t, err)
}

// buildLeagueCycle assembles the cycle without load validation, so every
// match is already complete.
func buildLeagueCycle(t *testing.T, opts ...Option) *Competition {
	t.Helper()
	c := New("League cycle", opts...)
	for _, id := range []string{"T1", "T2", "T3"} {
		_, err := c.AddTeam(Team{ID: id, Name: "Team " + id})
		require.NoError(t, err)
	}
	s, err := c.AddStage("S", "")
	require.NoError(t, err)
	a, err := s.AddGroup(GroupSpec{ID: "A", Kind: League, MatchType: outcome.Continuous})
	require.NoError(t, err)
	b, err := s.AddGroup(GroupSpec{ID: "B", Kind: League, MatchType: outcome.Continuous})
	require.NoError(t, err)

	add := func(g *Group, id, home, away string) {
		_, err := g.AddMatch(MatchSpec{
			ID:       id,
			Home:     MatchTeam{ID: home, Scores: []int{3}},
			Away:     MatchTeam{ID: away, Scores: []int{1}},
			Complete: boolPtr(true),
		})
		require.NoError(t, err)
	}
	add(a, "A1", "{S:B:league:1}", "T1")
	add(b, "B1", "{S:A:league:1}", "T2")
	add(b, "B2", "T2", "T3")
	return c
}

func TestResolve_LeagueCycleTerminates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := buildLeagueCycle(t, WithLogger(logger))

	// B1 drops out of B's table, so T2 tops B and hosts A1, which it wins.
	assert.Equal(t, "T2", c.Resolve("{S:A:league:1}").ID)
	assert.Equal(t, "T2", c.Resolve("{S:B:league:1}").ID)
	assert.Equal(t, "T2", c.Resolve("{S:A:league:1}").ID, "same answer on a second call")
	assert.Contains(t, buf.String(), "league table depends on its own positions")

	err := c.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrLeagueCycle, CodeOf(err))
}

func TestResolve_OwnLeaguePositionTerminates(t *testing.T) {
	c := New("Own table")
	for _, id := range []string{"T1", "T2", "T3"} {
		_, err := c.AddTeam(Team{ID: id, Name: "Team " + id})
		require.NoError(t, err)
	}
	s, err := c.AddStage("S", "")
	require.NoError(t, err)
	a, err := s.AddGroup(GroupSpec{ID: "A", Kind: League, MatchType: outcome.Continuous})
	require.NoError(t, err)
	for _, m := range []MatchSpec{
		{ID: "A1", Home: MatchTeam{ID: "T1", Scores: []int{3}}, Away: MatchTeam{ID: "T2", Scores: []int{1}}, Complete: boolPtr(true)},
		{ID: "A2", Home: MatchTeam{ID: "{S:A:league:1}", Scores: []int{3}}, Away: MatchTeam{ID: "T3", Scores: []int{1}}, Complete: boolPtr(true)},
	} {
		_, err := a.AddMatch(m)
		require.NoError(t, err)
	}

	assert.Equal(t, "T1", c.Resolve("{S:A:league:1}").ID)
	table, err := a.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, entryIDs(table))

	err = c.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrLeagueCycle, CodeOf(err))
	assert.Contains(t, err.Error(), "S:A:A2 homeTeam.id")
}

// =============================================================================
// League positions are re-checked when the group completes
// =============================================================================

func TestSetScores_RechecksLeaguePositions(t *testing.T) {
	doc := cupDoc(t)
	doc.Stages[1].Groups[0].Matches[0].AwayTeam.ID = "{P:A:league:5}"
	c, err := FromDocument(doc)
	require.NoError(t, err, "positions are unbounded while the pool is open")

	pa4 := mustMatch(t, c, "P", "A", "PA4")
	err = pa4.SetScores([]int{25, 25}, []int{10, 10}, nil)
	require.Error(t, err)
	assert.Equal(t, ErrLeaguePosition, CodeOf(err))
	assert.Contains(t, err.Error(), "F:KO:SF1 awayTeam.id")

	assert.False(t, pa4.IsComplete(), "scores were rolled back")
	assert.Empty(t, pa4.Home().Scores)
	assert.False(t, mustGroup(t, c, "P", "A").IsComplete())

	// Scores that leave the pool open are still accepted.
	require.NoError(t, pa4.SetScores([]int{25}, []int{10}, nil))
	assert.False(t, pa4.IsComplete())
}
