package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// FormatSnapshot renders the exported results of a run as stable text,
// one line per match, table row and knockout placing, in document order.
func FormatSnapshot(result *Result) []byte {
	var buf bytes.Buffer
	snap := result.Snapshot

	fmt.Fprintf(&buf, "report %s complete=%t\n", result.Report.Competition, result.Report.Complete)

	buf.WriteString("outcomes:\n")
	for _, o := range snap.Outcomes {
		status := o.Winner
		switch {
		case !o.Complete:
			status = "incomplete"
		case o.Draw:
			status = "draw"
		}
		fmt.Fprintf(&buf, "  %s:%s:%s %s v %s %d-%d %s\n",
			o.Stage, o.Group, o.Match, o.HomeTeam, o.AwayTeam, o.HomeSets, o.AwaySets, status)
	}

	group := ""
	for _, st := range snap.Standings {
		if key := st.Stage + ":" + st.Group; key != group {
			group = key
			fmt.Fprintf(&buf, "standings %s:\n", key)
		}
		fmt.Fprintf(&buf, "  %d. %s played=%d won=%d lost=%d sets=%d-%d points=%d\n",
			st.Position, st.TeamID, st.Played, st.Wins, st.Losses, st.SetsFor, st.SetsAgainst, st.Points)
	}

	group = ""
	for _, p := range snap.Placements {
		if key := p.Stage + ":" + p.Group; key != group {
			group = key
			fmt.Fprintf(&buf, "placements %s:\n", key)
		}
		fmt.Fprintf(&buf, "  %s %s\n", p.Position, p.TeamID)
	}
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden
// file or any expectation fails.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}
	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares the given result's snapshot against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, FormatSnapshot(result))
}
