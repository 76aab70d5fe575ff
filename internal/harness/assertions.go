package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/vbc/internal/competition"
	"github.com/roach88/vbc/internal/teamref"
)

// AssertionError is returned when a check fails.
type AssertionError struct {
	Type     string // outcome, resolve, standings, maybe, complete, cycles
	Subject  string // match path, reference or group key
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Subject != "" {
		fmt.Fprintf(&buf, " %s", e.Subject)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

// EvaluateExpectations runs every check of e against c and returns the
// failure messages. A nil result means all checks passed.
func EvaluateExpectations(c *competition.Competition, e Expect) []string {
	var errs []error

	if e.Complete != nil && c.IsComplete() != *e.Complete {
		errs = append(errs, &AssertionError{
			Type:     "complete",
			Expected: fmt.Sprint(*e.Complete),
			Actual:   fmt.Sprint(c.IsComplete()),
		})
	}
	for _, o := range e.Outcomes {
		errs = append(errs, assertOutcome(c, o)...)
	}
	for _, ref := range slices.Sorted(maps.Keys(e.Resolve)) {
		if err := assertResolve(c, ref, e.Resolve[ref]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, st := range e.Standings {
		errs = append(errs, assertStandings(c, st)...)
	}
	for _, m := range e.Maybe {
		if err := assertMaybe(c, m); err != nil {
			errs = append(errs, err)
		}
	}
	if e.Cycles != nil {
		if n := len(c.AnalyzeReferenceCycles()); n != *e.Cycles {
			errs = append(errs, &AssertionError{
				Type:     "cycles",
				Expected: fmt.Sprintf("%d reference cycles", *e.Cycles),
				Actual:   fmt.Sprintf("%d reference cycles", n),
			})
		}
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

func assertOutcome(c *competition.Competition, o OutcomeExpectation) []error {
	m, ok := c.MatchByPath(o.Match)
	if !ok {
		return []error{&AssertionError{Type: "outcome", Subject: o.Match, Expected: "match exists", Actual: "not found"}}
	}
	r := m.Result()

	var errs []error
	check := func(field string, want, got any) {
		if want != got {
			errs = append(errs, &AssertionError{
				Type:     "outcome",
				Subject:  o.Match,
				Expected: fmt.Sprintf("%s = %v", field, want),
				Actual:   fmt.Sprintf("%s = %v", field, got),
			})
		}
	}
	if o.Winner != "" {
		check("winner", o.Winner, r.Winner.String())
	}
	if o.Complete != nil {
		check("complete", *o.Complete, r.Complete)
	}
	if o.Draw != nil {
		check("draw", *o.Draw, r.Draw)
	}
	if o.HomeSets != nil {
		check("homeSets", *o.HomeSets, r.HomeSets)
	}
	if o.AwaySets != nil {
		check("awaySets", *o.AwaySets, r.AwaySets)
	}
	return errs
}

func assertResolve(c *competition.Competition, ref, want string) error {
	got := c.Resolve(ref).ID
	if got == want {
		return nil
	}
	return &AssertionError{Type: "resolve", Subject: ref, Expected: want, Actual: got}
}

func assertStandings(c *competition.Competition, st StandingsExpectation) []error {
	key, _ := teamref.ParseGroupKey(st.Group)
	g, ok := c.Group(key)
	if !ok {
		return []error{&AssertionError{Type: "standings", Subject: st.Group, Expected: "group exists", Actual: "not found"}}
	}
	table, err := g.Table()
	if err != nil {
		return []error{&AssertionError{Type: "standings", Subject: st.Group, Expected: "league table", Actual: err.Error()}}
	}

	var errs []error
	if len(st.Order) > 0 {
		order := make([]string, len(table.Entries))
		for i, e := range table.Entries {
			order[i] = e.TeamID
		}
		if !slices.Equal(order, st.Order) {
			errs = append(errs, &AssertionError{
				Type:     "standings",
				Subject:  st.Group,
				Expected: fmt.Sprintf("order %v", st.Order),
				Actual:   fmt.Sprintf("order %v", order),
			})
		}
	}
	for _, teamID := range slices.Sorted(maps.Keys(st.Points)) {
		want := st.Points[teamID]
		entry, ok := table.Entry(teamID)
		switch {
		case !ok:
			errs = append(errs, &AssertionError{
				Type:     "standings",
				Subject:  st.Group,
				Expected: fmt.Sprintf("%s has %d points", teamID, want),
				Actual:   fmt.Sprintf("%s not in table", teamID),
			})
		case entry.Points != want:
			errs = append(errs, &AssertionError{
				Type:     "standings",
				Subject:  st.Group,
				Expected: fmt.Sprintf("%s has %d points", teamID, want),
				Actual:   fmt.Sprintf("%s has %d points", teamID, entry.Points),
			})
		}
	}
	return errs
}

func assertMaybe(c *competition.Competition, m MaybeExpectation) error {
	key, _ := teamref.ParseGroupKey(m.Group)
	g, ok := c.Group(key)
	if !ok {
		return &AssertionError{Type: "maybe", Subject: m.Group, Expected: "group exists", Actual: "not found"}
	}
	if got := g.MayHaveTeam(m.Team); got != m.Maybe {
		return &AssertionError{
			Type:     "maybe",
			Subject:  m.Group,
			Expected: fmt.Sprintf("maybe(%s) = %v", m.Team, m.Maybe),
			Actual:   fmt.Sprintf("maybe(%s) = %v", m.Team, got),
		}
	}
	return nil
}
