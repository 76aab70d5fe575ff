package standings

import (
	"errors"
	"fmt"

	"github.com/roach88/vbc/internal/outcome"
)

// ErrPositionOutOfRange is returned for a league position below 1 or beyond
// the number of teams in the table.
var ErrPositionOutOfRange = errors.New("league position out of range")

// FixtureTeam is one side of a fixture, with its team already resolved.
type FixtureTeam struct {
	ID            string
	Name          string
	Scores        []int
	Forfeit       bool
	BonusPoints   int
	PenaltyPoints int
}

// Fixture is a league match as seen by the table builder.
type Fixture struct {
	MatchID  string
	Home     FixtureTeam
	Away     FixtureTeam
	Result   outcome.Result
	Friendly bool
}

// Entry is one team's row in a league table.
type Entry struct {
	TeamID        string         `json:"teamID"`
	TeamName      string         `json:"teamName"`
	Played        int            `json:"played"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Draws         int            `json:"draws"`
	SetsFor       int            `json:"sf"`
	SetsAgainst   int            `json:"sa"`
	SetsDiff      int            `json:"sd"`
	PointsFor     int            `json:"pf"`
	PointsAgainst int            `json:"pa"`
	PointsDiff    int            `json:"pd"`
	BonusPoints   int            `json:"bp"`
	PenaltyPoints int            `json:"pp"`
	Points        int            `json:"pts"`
	H2H           map[string]int `json:"h2h"`
}

// Table is a ranked league table.
type Table struct {
	Config  Config  `json:"config"`
	Entries []Entry `json:"entries"`
}

// Build accumulates fixtures into a table and ranks it.
func Build(cfg Config, matchType outcome.MatchType, sets outcome.SetConfig, fixtures []Fixture) *Table {
	var order []*Entry
	index := make(map[string]*Entry)
	entry := func(t FixtureTeam) *Entry {
		if e, ok := index[t.ID]; ok {
			return e
		}
		e := &Entry{TeamID: t.ID, TeamName: t.Name, H2H: make(map[string]int)}
		index[t.ID] = e
		order = append(order, e)
		return e
	}

	for _, f := range fixtures {
		if f.Friendly {
			continue
		}
		home, away := entry(f.Home), entry(f.Away)
		if !f.Result.Complete {
			continue
		}
		accumulate(cfg.Points, matchType, sets, f, home, away)
	}

	t := &Table{Config: cfg, Entries: make([]Entry, 0, len(order))}
	for _, e := range order {
		e.PointsDiff = e.PointsFor - e.PointsAgainst
		e.SetsDiff = e.SetsFor - e.SetsAgainst
		e.Points += e.Played*cfg.Points.Played + e.BonusPoints - e.PenaltyPoints
		t.Entries = append(t.Entries, *e)
	}
	t.Sort()
	return t
}

func accumulate(p Points, matchType outcome.MatchType, sets outcome.SetConfig, f Fixture, home, away *Entry) {
	r := f.Result
	home.Played++
	away.Played++

	var winner, loser *Entry
	switch {
	case r.Draw:
		home.Draws++
		away.Draws++
		home.H2H[away.TeamID] += 0
		away.H2H[home.TeamID] += 0
	case r.Winner == outcome.Home:
		winner, loser = home, away
	case r.Winner == outcome.Away:
		winner, loser = away, home
	}
	if winner != nil {
		winner.Wins++
		loser.Losses++
		winner.H2H[loser.TeamID]++
		loser.H2H[winner.TeamID]--
	}

	switch matchType {
	case outcome.Continuous:
		if len(f.Home.Scores) > 0 && len(f.Away.Scores) > 0 {
			home.PointsFor += f.Home.Scores[0]
			home.PointsAgainst += f.Away.Scores[0]
			away.PointsFor += f.Away.Scores[0]
			away.PointsAgainst += f.Home.Scores[0]
		}
		if winner != nil {
			winner.Points += p.Win
			loser.Points += p.Lose
		}
	case outcome.Sets:
		for i := range f.Home.Scores {
			h, a := f.Home.Scores[i], f.Away.Scores[i]
			if h < sets.MinPoints && a < sets.MinPoints {
				continue
			}
			home.PointsFor += h
			home.PointsAgainst += a
			away.PointsFor += a
			away.PointsAgainst += h
		}
		home.SetsFor += r.HomeSets
		home.SetsAgainst += r.AwaySets
		away.SetsFor += r.AwaySets
		away.SetsAgainst += r.HomeSets
		home.Points += p.PerSet * r.HomeSets
		away.Points += p.PerSet * r.AwaySets
		if winner != nil {
			if r.SetsFor(r.Winner)-r.SetsFor(r.Loser()) == 1 {
				winner.Points += p.WinByOne
				loser.Points += p.LoseByOne
			} else {
				winner.Points += p.Win
				loser.Points += p.Lose
			}
		}
	}

	if f.Home.Forfeit {
		home.Points -= p.Forfeit
	}
	if f.Away.Forfeit {
		away.Points -= p.Forfeit
	}
	home.BonusPoints += f.Home.BonusPoints
	home.PenaltyPoints += f.Home.PenaltyPoints
	away.BonusPoints += f.Away.BonusPoints
	away.PenaltyPoints += f.Away.PenaltyPoints
}

// Position returns the entry at the 1-based league position.
func (t *Table) Position(position int) (Entry, error) {
	if position < 1 || position > len(t.Entries) {
		return Entry{}, fmt.Errorf("%w: position %d, table has %d teams", ErrPositionOutOfRange, position, len(t.Entries))
	}
	return t.Entries[position-1], nil
}

// Entry returns the row for teamID.
func (t *Table) Entry(teamID string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.TeamID == teamID {
			return e, true
		}
	}
	return Entry{}, false
}

// OrderingText describes how the table is ranked.
func (t *Table) OrderingText() string {
	return t.Config.OrderingText()
}

// ScoringText describes how league points are awarded.
func (t *Table) ScoringText() string {
	return t.Config.ScoringText()
}
