package outcome

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MatchType selects the scoring model for every match in a group.
type MatchType string

const (
	// Continuous matches carry at most one score per side.
	Continuous MatchType = "continuous"
	// Sets matches carry one score per played set.
	Sets MatchType = "sets"
)

// Valid reports whether t is a known match type.
func (t MatchType) Valid() bool {
	return t == Continuous || t == Sets
}

// SetConfig holds the rules for judging sets and matches played in sets.
// The decider set is the set at index MaxSets-1.
type SetConfig struct {
	MaxSets            int `json:"maxSets" validate:"gte=1"`
	SetsToWin          int `json:"setsToWin" validate:"gte=1,ltefield=MaxSets"`
	ClearPoints        int `json:"clearPoints" validate:"gte=1"`
	MinPoints          int `json:"minPoints" validate:"gte=1"`
	PointsToWin        int `json:"pointsToWin" validate:"gte=1"`
	LastSetPointsToWin int `json:"lastSetPointsToWin" validate:"gte=1"`
	MaxPoints          int `json:"maxPoints" validate:"gtefield=PointsToWin"`
	LastSetMaxPoints   int `json:"lastSetMaxPoints" validate:"gtefield=LastSetPointsToWin"`
}

// DefaultSetConfig returns the volleyball defaults used when a group omits
// any part of its set configuration.
func DefaultSetConfig() SetConfig {
	return SetConfig{
		MaxSets:            5,
		SetsToWin:          3,
		ClearPoints:        2,
		MinPoints:          1,
		PointsToWin:        25,
		LastSetPointsToWin: 15,
		MaxPoints:          1000,
		LastSetMaxPoints:   1000,
	}
}

var configValidate = validator.New()

// Validate checks the configuration is internally consistent.
func (c SetConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid set configuration: %w", err)
	}
	return nil
}

// isDecider reports whether index is the final possible set.
func (c SetConfig) isDecider(index int) bool {
	return index == c.MaxSets-1
}

// target returns the points needed to win the set at index and the cap at
// which the set ends regardless of margin.
func (c SetConfig) target(index int) (pointsToWin, maxPoints int) {
	if c.isDecider(index) {
		return c.LastSetPointsToWin, c.LastSetMaxPoints
	}
	return c.PointsToWin, c.MaxPoints
}
