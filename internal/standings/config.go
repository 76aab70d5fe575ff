package standings

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Key is a league table ordering key.
type Key string

const (
	KeyPoints        Key = "PTS"
	KeyWins          Key = "WINS"
	KeyLosses        Key = "LOSSES"
	KeyHeadToHead    Key = "H2H"
	KeyPointsFor     Key = "PF"
	KeyPointsAgainst Key = "PA"
	KeyPointsDiff    Key = "PD"
	KeySetsFor       Key = "SF"
	KeySetsAgainst   Key = "SA"
	KeySetsDiff      Key = "SD"
	KeyBonusPoints   Key = "BP"
	KeyPenaltyPoints Key = "PP"
)

// Points is the league points formula.
type Points struct {
	Played    int `json:"played"`
	PerSet    int `json:"perSet"`
	Win       int `json:"win"`
	WinByOne  int `json:"winByOne"`
	Lose      int `json:"lose"`
	LoseByOne int `json:"loseByOne"`
	Forfeit   int `json:"forfeit" validate:"gte=0"`
}

// Config is the league configuration of a group.
type Config struct {
	Ordering []Key  `json:"ordering" validate:"min=1,dive,oneof=PTS WINS LOSSES H2H PF PA PD SF SA SD BP PP"`
	Points   Points `json:"points"`
}

// DefaultPoints returns the points formula used when a document omits it.
func DefaultPoints() Points {
	return Points{Win: 3}
}

// DefaultConfig orders by league points alone.
func DefaultConfig() Config {
	return Config{
		Ordering: []Key{KeyPoints},
		Points:   DefaultPoints(),
	}
}

var configValidate = validator.New()

// Validate checks the ordering keys and points formula.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid league configuration: %w", err)
	}
	return nil
}

var keyText = map[Key]string{
	KeyPoints:        "points",
	KeyWins:          "wins",
	KeyLosses:        "losses",
	KeyHeadToHead:    "head-to-head",
	KeyPointsFor:     "points for",
	KeyPointsAgainst: "points against",
	KeyPointsDiff:    "points difference",
	KeySetsFor:       "sets for",
	KeySetsAgainst:   "sets against",
	KeySetsDiff:      "sets difference",
	KeyBonusPoints:   "bonus points",
	KeyPenaltyPoints: "penalty points",
}

// OrderingText describes the ordering in words, e.g.
// "Position is decided by points, then head-to-head".
func (c Config) OrderingText() string {
	if len(c.Ordering) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c.Ordering))
	for _, k := range c.Ordering {
		parts = append(parts, keyText[k])
	}
	return "Position is decided by " + strings.Join(parts, ", then ")
}

// ScoringText describes the points formula in words. Zero-valued terms are
// omitted.
func (c Config) ScoringText() string {
	p := c.Points
	var parts []string
	add := func(n int, what string) {
		if n == 0 {
			return
		}
		parts = append(parts, fmt.Sprintf("%d %s %s", n, plural(n, "point", "points"), what))
	}
	add(p.Played, "for playing a match")
	add(p.PerSet, "per set won")
	add(p.Win, "for a win")
	add(p.WinByOne, "for a win by one set")
	add(p.Lose, "for a loss")
	add(p.LoseByOne, "for a loss by one set")
	if len(parts) == 0 && p.Forfeit == 0 {
		return ""
	}

	text := "Teams win " + strings.Join(parts, ", ")
	if len(parts) == 0 {
		text = "Teams win no points"
	}
	if p.Forfeit > 0 {
		text += fmt.Sprintf(", and lose %d %s for forfeiting a match", p.Forfeit, plural(p.Forfeit, "point", "points"))
	}
	return text
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
