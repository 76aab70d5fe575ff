package competition

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/vbc/internal/document"
	"github.com/roach88/vbc/internal/outcome"
	"github.com/roach88/vbc/internal/teamref"
)

// ErrMatchDrawn is returned when a winner or loser is requested from a
// drawn match.
var ErrMatchDrawn = errors.New("match was drawn")

// MatchTeam is one side of a match. ID is a team reference.
type MatchTeam struct {
	ID            string
	Scores        []int
	Forfeit       bool
	BonusPoints   int
	PenaltyPoints int
	MVP           string
	Notes         string
	Players       []string
}

// MatchSpec is everything a match is created from.
type MatchSpec struct {
	ID   string
	Home MatchTeam
	Away MatchTeam

	// Complete is the explicit completion flag; nil derives completion from
	// the scores where the match type allows it.
	Complete *bool

	Officials *document.Officials
	Manager   *document.Manager
	Friendly  bool

	Court    string
	Venue    string
	Warmup   string
	Date     string
	Start    string
	Duration string
	MVP      string
	Notes    string
}

// Match is a fixture between two teams. The ID and owning group never
// change; scores change only through SetScores.
type Match struct {
	group  *Group
	spec   MatchSpec
	result outcome.Result
}

func (*Match) isEntry() {}

// AddMatch validates spec and appends it to the group. Team references
// are not checked here; Competition.Validate checks the whole graph.
func (g *Group) AddMatch(spec MatchSpec) (*Match, error) {
	path := g.Key().String() + ":" + spec.ID
	if !teamref.ValidID(spec.ID) {
		return nil, newError(ErrInvalidID, KindSyntax, path, "id", "match ID %q contains a reserved character", spec.ID)
	}
	if g.HasMatch(spec.ID) {
		return nil, newError(ErrDuplicateMatch, KindRule, path, "id", "match with ID %q already exists in group %q", spec.ID, g.ID)
	}
	if spec.Officials != nil && spec.Officials.Team != "" &&
		(spec.Officials.Team == spec.Home.ID || spec.Officials.Team == spec.Away.ID) {
		return nil, newError(ErrOfficialsPlaying, KindRule, path, "officials.team",
			"refereeing team %q is playing in the match", spec.Officials.Team)
	}

	m := &Match{group: g, spec: spec}
	m.spec.Home.Scores = slices.Clone(spec.Home.Scores)
	m.spec.Away.Scores = slices.Clone(spec.Away.Scores)
	result, err := m.compute(m.spec.Home.Scores, m.spec.Away.Scores, spec.Complete)
	if err != nil {
		return nil, err
	}
	m.result = result

	g.entries = append(g.entries, m)
	g.matches = append(g.matches, m)
	g.matchIndex[m.spec.ID] = m
	g.comp().touch()
	return m, nil
}

func (m *Match) compute(home, away []int, complete *bool) (outcome.Result, error) {
	g := m.group
	r, err := outcome.Compute(outcome.Input{
		Type:         g.MatchType,
		Sets:         g.Sets,
		Home:         home,
		Away:         away,
		Complete:     complete,
		Duration:     m.spec.Duration,
		DrawsAllowed: g.DrawsAllowed,
	})
	if err != nil {
		return outcome.Result{}, wrapError(ErrInvalidScores, KindRule, m.Path(), "scores", err)
	}
	return r, nil
}

// SetScores replaces the scores and completion flag. The new scores are
// checked first; on error the match is left unchanged.
//
// Scores that complete a league group also re-check the references to its
// positions, e.g. {P:A:league:9} in a group of eight teams.
func (m *Match) SetScores(home, away []int, complete *bool) error {
	home, away = slices.Clone(home), slices.Clone(away)
	r, err := m.compute(home, away, complete)
	if err != nil {
		return err
	}
	g := m.group
	wasComplete := g.IsComplete()
	prev := m.spec
	prevResult := m.result

	m.apply(home, away, complete, r)
	if g.Kind == League && !wasComplete && g.IsComplete() {
		if err := g.comp().validateLeagueRefs(g.Key()); err != nil {
			m.apply(prev.Home.Scores, prev.Away.Scores, prev.Complete, prevResult)
			return err
		}
	}
	return nil
}

func (m *Match) apply(home, away []int, complete *bool, r outcome.Result) {
	m.spec.Home.Scores = home
	m.spec.Away.Scores = away
	m.spec.Complete = complete
	m.result = r
	m.group.comp().touch()
}

// ID returns the match ID, unique within its group.
func (m *Match) ID() string {
	return m.spec.ID
}

// Group returns the owning group.
func (m *Match) Group() *Group {
	return m.group
}

// Path returns the stage:group:match coordinates.
func (m *Match) Path() string {
	return m.group.Key().String() + ":" + m.spec.ID
}

// Spec returns a copy of the match data.
func (m *Match) Spec() MatchSpec {
	s := m.spec
	s.Home.Scores = slices.Clone(s.Home.Scores)
	s.Away.Scores = slices.Clone(s.Away.Scores)
	return s
}

// Home returns the home side.
func (m *Match) Home() MatchTeam { return m.spec.Home }

// Away returns the away side.
func (m *Match) Away() MatchTeam { return m.spec.Away }

// IsFriendly reports whether the match is excluded from league tables.
func (m *Match) IsFriendly() bool { return m.spec.Friendly }

// Officials returns the officials, or nil.
func (m *Match) Officials() *document.Officials { return m.spec.Officials }

// Result returns the derived outcome.
func (m *Match) Result() outcome.Result {
	return m.result
}

// IsComplete reports whether the match has finished.
func (m *Match) IsComplete() bool {
	return m.result.Complete
}

// IsDraw reports whether the match finished level.
func (m *Match) IsDraw() bool {
	return m.result.Draw
}

// HomeSets returns the sets won by the home team.
func (m *Match) HomeSets() int { return m.result.HomeSets }

// AwaySets returns the sets won by the away team.
func (m *Match) AwaySets() int { return m.result.AwaySets }

// WinnerTeamID returns the team reference of the winning side.
func (m *Match) WinnerTeamID() (string, error) {
	return m.sideID(m.result.Winner)
}

// LoserTeamID returns the team reference of the losing side.
func (m *Match) LoserTeamID() (string, error) {
	return m.sideID(m.result.Loser())
}

func (m *Match) sideID(side outcome.Side) (string, error) {
	if !m.result.Complete {
		return "", fmt.Errorf("%s: %w", m.Path(), outcome.ErrMatchIncomplete)
	}
	switch side {
	case outcome.Home:
		return m.spec.Home.ID, nil
	case outcome.Away:
		return m.spec.Away.ID, nil
	default:
		return "", fmt.Errorf("%s: %w", m.Path(), ErrMatchDrawn)
	}
}

// refField is a team reference held by a match.
type refField struct {
	field string
	ref   string
}

func (m *Match) refFields() []refField {
	fields := []refField{
		{"homeTeam.id", m.spec.Home.ID},
		{"awayTeam.id", m.spec.Away.ID},
	}
	if m.spec.Officials != nil && m.spec.Officials.Team != "" {
		fields = append(fields, refField{"officials.team", m.spec.Officials.Team})
	}
	if m.spec.Manager != nil && m.spec.Manager.Team != "" {
		fields = append(fields, refField{"manager.team", m.spec.Manager.Team})
	}
	return fields
}
