package standings

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compare orders two entries by the ordering keys. A negative result means
// a ranks above b. When every key ties the team names decide, then the IDs.
func Compare(a, b *Entry, ordering []Key, col *collate.Collator) int {
	for _, k := range ordering {
		if c := compareKey(k, a, b); c != 0 {
			return c
		}
	}
	if col != nil {
		if c := col.CompareString(a.TeamName, b.TeamName); c != 0 {
			return c
		}
	}
	return strings.Compare(a.TeamID, b.TeamID)
}

func compareKey(k Key, a, b *Entry) int {
	switch k {
	case KeyPoints:
		return b.Points - a.Points
	case KeyWins:
		return b.Wins - a.Wins
	case KeyLosses:
		return a.Losses - b.Losses
	case KeyHeadToHead:
		ab, okA := a.H2H[b.TeamID]
		ba, okB := b.H2H[a.TeamID]
		if !okA || !okB {
			return 0
		}
		return ba - ab
	case KeyPointsFor:
		return b.PointsFor - a.PointsFor
	case KeyPointsAgainst:
		return a.PointsAgainst - b.PointsAgainst
	case KeyPointsDiff:
		return b.PointsDiff - a.PointsDiff
	case KeySetsFor:
		return b.SetsFor - a.SetsFor
	case KeySetsAgainst:
		return a.SetsAgainst - b.SetsAgainst
	case KeySetsDiff:
		return b.SetsDiff - a.SetsDiff
	case KeyBonusPoints:
		return b.BonusPoints - a.BonusPoints
	case KeyPenaltyPoints:
		return a.PenaltyPoints - b.PenaltyPoints
	default:
		return 0
	}
}

// NewCollator returns the collator used for the team name tie-break.
func NewCollator() *collate.Collator {
	return collate.New(language.English)
}

// Sort ranks the entries in place.
func (t *Table) Sort() {
	col := NewCollator()
	sort.SliceStable(t.Entries, func(i, j int) bool {
		return Compare(&t.Entries[i], &t.Entries[j], t.Config.Ordering, col) < 0
	})
}
