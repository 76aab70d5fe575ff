package competition

import (
	"github.com/roach88/vbc/internal/outcome"
	"github.com/roach88/vbc/internal/standings"
	"github.com/roach88/vbc/internal/teamref"
)

// GroupKind is the kind of a group.
type GroupKind string

const (
	League    GroupKind = "league"
	Knockout  GroupKind = "knockout"
	Crossover GroupKind = "crossover"
)

// Valid reports whether k is a known group kind.
func (k GroupKind) Valid() bool {
	return k == League || k == Knockout || k == Crossover
}

// MatchFilter selects how a team takes part in a match.
type MatchFilter int

const (
	// FilterAll matches teams that play or officiate.
	FilterAll MatchFilter = iota
	// FilterPlaying matches the home and away teams.
	FilterPlaying
	// FilterOfficiating matches the officiating team.
	FilterOfficiating
)

// StandingPosition maps a final position label of a knockout group to a
// team reference.
type StandingPosition struct {
	Position string
	TeamRef  string
}

// Placement is a resolved knockout standing position.
type Placement struct {
	Position string
	Team     *Team
}

// Group is a league, knockout or crossover within a stage.
type Group struct {
	ID           string
	Name         string
	Notes        string
	Description  []string
	Kind         GroupKind
	MatchType    outcome.MatchType
	Sets         outcome.SetConfig
	DrawsAllowed bool

	stage      *Stage
	entries    []Entry
	matches    []*Match
	matchIndex map[string]*Match

	league   *leagueState       // league groups only
	standing []StandingPosition // knockout groups only

	completeAt revisionCache[bool]
	refsAt     revisionCache[[]teamref.GroupKey]
	maybeAt    revisionCache[map[string]bool]
}

type leagueState struct {
	config  standings.Config
	tableAt revisionCache[*standings.Table]
}

// Entry is a Match or a Break.
type Entry interface {
	isEntry()
}

// Break is a scheduled pause between matches.
type Break struct {
	Name     string
	Date     string
	Start    string
	Duration string
}

func (*Break) isEntry() {}

// Stage returns the owning stage.
func (g *Group) Stage() *Stage {
	return g.stage
}

// Key returns the stage:group key of g.
func (g *Group) Key() teamref.GroupKey {
	return teamref.GroupKey{Stage: g.stage.ID, Group: g.ID}
}

func (g *Group) comp() *Competition {
	return g.stage.comp
}

// AddBreak appends a break.
func (g *Group) AddBreak(b Break) *Break {
	br := &b
	g.entries = append(g.entries, br)
	g.comp().touch()
	return br
}

// Entries returns matches and breaks in schedule order.
func (g *Group) Entries() []Entry {
	return g.entries
}

// AllMatches returns every match in schedule order.
func (g *Group) AllMatches() []*Match {
	return g.matches
}

// MatchByID returns the match with id.
func (g *Group) MatchByID(id string) (*Match, bool) {
	m, ok := g.matchIndex[id]
	return m, ok
}

// HasMatch reports whether the group has a match with id.
func (g *Group) HasMatch(id string) bool {
	_, ok := g.matchIndex[id]
	return ok
}

// IsComplete reports whether every match in the group is complete.
// Breaks are ignored.
func (g *Group) IsComplete() bool {
	rev := g.comp().revision
	if v, ok := g.completeAt.get(rev); ok {
		return v
	}
	complete := true
	for _, m := range g.matches {
		if !m.IsComplete() {
			complete = false
			break
		}
	}
	g.completeAt.set(rev, complete)
	return complete
}

// Matches returns the matches in which teamID takes part as selected by
// filter. Team references are resolved first.
func (g *Group) Matches(teamID string, filter MatchFilter) []*Match {
	c := g.comp()
	var out []*Match
	for _, m := range g.matches {
		playing := c.Resolve(m.spec.Home.ID).ID == teamID || c.Resolve(m.spec.Away.ID).ID == teamID
		officiating := m.spec.Officials != nil && m.spec.Officials.Team != "" &&
			c.Resolve(m.spec.Officials.Team).ID == teamID
		switch {
		case filter == FilterPlaying && playing,
			filter == FilterOfficiating && officiating,
			filter == FilterAll && (playing || officiating):
			out = append(out, m)
		}
	}
	return out
}

// TeamIDs returns the resolved IDs of the teams taking part in the group,
// in order of first appearance. Unresolved references are left out.
func (g *Group) TeamIDs(filter MatchFilter) []string {
	c := g.comp()
	var ids []string
	seen := make(map[string]bool)
	add := func(ref string) {
		if ref == "" {
			return
		}
		t := c.Resolve(ref)
		if t.IsUnknown() || seen[t.ID] {
			return
		}
		seen[t.ID] = true
		ids = append(ids, t.ID)
	}
	for _, m := range g.matches {
		if filter != FilterOfficiating {
			add(m.spec.Home.ID)
			add(m.spec.Away.ID)
		}
		if filter != FilterPlaying && m.spec.Officials != nil {
			add(m.spec.Officials.Team)
		}
	}
	return ids
}

// HasTeam reports whether teamID definitely plays in the group.
func (g *Group) HasTeam(teamID string) bool {
	for _, id := range g.TeamIDs(FilterPlaying) {
		if id == teamID {
			return true
		}
	}
	return false
}

// LeagueConfig returns the league configuration of a league group.
func (g *Group) LeagueConfig() (standings.Config, bool) {
	if g.league == nil {
		return standings.Config{}, false
	}
	return g.league.config, true
}

// Table returns the ranked league table. It is rebuilt after any mutation
// of the competition.
//
// A table whose teams depend on its own positions, directly or through
// other league groups, fails with ErrLeagueCycle when it is re-entered.
// Tables built across such a cycle are not cached.
func (g *Group) Table() (*standings.Table, error) {
	key := g.Key().String()
	if g.league == nil {
		return nil, newError(ErrNotLeague, KindReference, key, "", "group %q is not a league", g.ID)
	}
	c := g.comp()
	if t, ok := g.league.tableAt.get(c.revision); ok {
		return t, nil
	}
	if c.building[g] {
		c.tableCycles++
		c.logger.Debug("league table depends on its own positions", "group", key)
		return nil, newError(ErrLeagueCycle, KindReference, key, "",
			"league table of group %q depends on its own positions", g.ID)
	}
	c.building[g] = true
	defer delete(c.building, g)
	cycles := c.tableCycles

	fixtures := make([]standings.Fixture, 0, len(g.matches))
	for _, m := range g.matches {
		home, away := c.Resolve(m.spec.Home.ID), c.Resolve(m.spec.Away.ID)
		if home.IsUnknown() || away.IsUnknown() {
			continue
		}
		fixtures = append(fixtures, standings.Fixture{
			MatchID:  m.spec.ID,
			Home:     fixtureTeam(home, m.spec.Home),
			Away:     fixtureTeam(away, m.spec.Away),
			Result:   m.result,
			Friendly: m.spec.Friendly,
		})
	}
	t := standings.Build(g.league.config, g.MatchType, g.Sets, fixtures)
	if c.tableCycles == cycles {
		g.league.tableAt.set(c.revision, t)
	}
	c.logger.Debug("league table built",
		"group", key,
		"fixtures", len(fixtures),
		"teams", len(t.Entries),
		"revision", c.revision)
	return t, nil
}

func fixtureTeam(t *Team, mt MatchTeam) standings.FixtureTeam {
	return standings.FixtureTeam{
		ID:            t.ID,
		Name:          t.Name,
		Scores:        mt.Scores,
		Forfeit:       mt.Forfeit,
		BonusPoints:   mt.BonusPoints,
		PenaltyPoints: mt.PenaltyPoints,
	}
}

// LeaguePosition returns the team at the 1-based position of a complete
// league group.
func (g *Group) LeaguePosition(position int) (*Team, error) {
	path := g.Key().String()
	if g.league == nil {
		return nil, newError(ErrNotLeague, KindReference, path, "", "group %q is not a league", g.ID)
	}
	if !g.IsComplete() {
		return nil, newError(ErrGroupIncomplete, KindRule, path, "", "cannot get league position %d of an incomplete group", position)
	}
	t, err := g.Table()
	if err != nil {
		return nil, err
	}
	e, err := t.Position(position)
	if err != nil {
		return nil, wrapError(ErrLeaguePosition, KindReference, path, "", err)
	}
	team, ok := g.comp().teamIndex[e.TeamID]
	if !ok {
		return g.comp().unknown, nil
	}
	return team, nil
}

// Standing returns the unresolved knockout standing.
func (g *Group) Standing() []StandingPosition {
	return g.standing
}

// KnockoutStanding resolves each position of the knockout standing.
// Positions that cannot be decided yet hold the Unknown team.
func (g *Group) KnockoutStanding() ([]Placement, error) {
	if g.Kind != Knockout || g.standing == nil {
		return nil, newError(ErrNoKnockoutConfig, KindReference, g.Key().String(), "knockout", "group %q has no knockout standing", g.ID)
	}
	c := g.comp()
	out := make([]Placement, 0, len(g.standing))
	for _, sp := range g.standing {
		out = append(out, Placement{Position: sp.Position, Team: c.Resolve(sp.TeamRef)})
	}
	return out, nil
}
