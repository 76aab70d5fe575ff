package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/vbc/internal/teamref"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the competition document to load, relative to the
	// scenario file.
	Document string `yaml:"document"`

	// Scores are applied in order after loading.
	Scores []ScoreUpdate `yaml:"scores,omitempty"`

	// Expect holds the checks run after the score updates.
	Expect Expect `yaml:"expect"`
}

// ScoreUpdate replaces the scores of one match.
type ScoreUpdate struct {
	// Match is addressed as STAGE:GROUP:MATCH.
	Match    string `yaml:"match"`
	Home     []int  `yaml:"home"`
	Away     []int  `yaml:"away"`
	Complete *bool  `yaml:"complete,omitempty"`

	// Error, if set, is the expected rejection (code or message fragment).
	// The match keeps its previous scores.
	Error string `yaml:"error,omitempty"`
}

// Expect lists the checks of a scenario. Empty blocks are skipped.
type Expect struct {
	// Error is the expected load failure. When set no other block runs.
	Error string `yaml:"error,omitempty"`

	Complete  *bool                  `yaml:"complete,omitempty"`
	Outcomes  []OutcomeExpectation   `yaml:"outcomes,omitempty"`
	Resolve   map[string]string      `yaml:"resolve,omitempty"`
	Standings []StandingsExpectation `yaml:"standings,omitempty"`
	Maybe     []MaybeExpectation     `yaml:"maybe,omitempty"`
	Cycles    *int                   `yaml:"cycles,omitempty"`
}

// OutcomeExpectation checks the result of one match. Nil fields are not
// checked.
type OutcomeExpectation struct {
	Match    string `yaml:"match"`
	Winner   string `yaml:"winner,omitempty"` // home, away or none
	Complete *bool  `yaml:"complete,omitempty"`
	Draw     *bool  `yaml:"draw,omitempty"`
	HomeSets *int   `yaml:"homeSets,omitempty"`
	AwaySets *int   `yaml:"awaySets,omitempty"`
}

// StandingsExpectation checks the order of a league table and, optionally,
// the points of some teams.
type StandingsExpectation struct {
	Group  string         `yaml:"group"`
	Order  []string       `yaml:"order"`
	Points map[string]int `yaml:"points,omitempty"`
}

// MaybeExpectation checks whether a team could still reach a group.
type MaybeExpectation struct {
	Group string `yaml:"group"`
	Team  string `yaml:"team"`
	Maybe bool   `yaml:"maybe"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// The document path is resolved relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Document != "" && !filepath.IsAbs(scenario.Document) {
		scenario.Document = filepath.Join(filepath.Dir(path), scenario.Document)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Document == "" {
		return fmt.Errorf("document is required")
	}
	if _, err := os.Stat(s.Document); os.IsNotExist(err) {
		return fmt.Errorf("document not found: %s", s.Document)
	}

	for i, u := range s.Scores {
		if err := validateMatchPath(u.Match); err != nil {
			return fmt.Errorf("scores[%d]: %w", i, err)
		}
	}

	e := s.Expect
	if e.Error != "" {
		if len(s.Scores) > 0 || e.hasChecks() {
			return fmt.Errorf("expect.error cannot be combined with scores or other checks")
		}
		return nil
	}
	if !e.hasChecks() {
		return fmt.Errorf("expect must contain at least one check")
	}

	for i, o := range e.Outcomes {
		if err := validateMatchPath(o.Match); err != nil {
			return fmt.Errorf("expect.outcomes[%d]: %w", i, err)
		}
		switch o.Winner {
		case "", "home", "away", "none":
		default:
			return fmt.Errorf("expect.outcomes[%d]: winner must be home, away or none, got %q", i, o.Winner)
		}
	}
	for i, st := range e.Standings {
		if _, err := teamref.ParseGroupKey(st.Group); err != nil {
			return fmt.Errorf("expect.standings[%d]: %w", i, err)
		}
		if len(st.Order) == 0 && len(st.Points) == 0 {
			return fmt.Errorf("expect.standings[%d]: order or points is required", i)
		}
	}
	for i, m := range e.Maybe {
		if _, err := teamref.ParseGroupKey(m.Group); err != nil {
			return fmt.Errorf("expect.maybe[%d]: %w", i, err)
		}
		if m.Team == "" {
			return fmt.Errorf("expect.maybe[%d]: team is required", i)
		}
	}
	return nil
}

func (e Expect) hasChecks() bool {
	return e.Complete != nil || len(e.Outcomes) > 0 || len(e.Resolve) > 0 ||
		len(e.Standings) > 0 || len(e.Maybe) > 0 || e.Cycles != nil
}

func validateMatchPath(path string) error {
	i := strings.LastIndexByte(path, ':')
	if i < 0 {
		return fmt.Errorf("invalid match %q: want STAGE:GROUP:MATCH", path)
	}
	if _, err := teamref.ParseGroupKey(path[:i]); err != nil {
		return fmt.Errorf("invalid match %q: want STAGE:GROUP:MATCH", path)
	}
	if !teamref.ValidID(path[i+1:]) {
		return fmt.Errorf("invalid match %q: want STAGE:GROUP:MATCH", path)
	}
	return nil
}
