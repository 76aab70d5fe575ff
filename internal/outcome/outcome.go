package outcome

import "fmt"

// Side identifies one team of a match.
type Side int

const (
	NoSide Side = iota
	Home
	Away
)

func (s Side) String() string {
	switch s {
	case Home:
		return "home"
	case Away:
		return "away"
	default:
		return "none"
	}
}

// Other returns the opposing side. NoSide maps to itself.
func (s Side) Other() Side {
	switch s {
	case Home:
		return Away
	case Away:
		return Home
	default:
		return NoSide
	}
}

// Input is everything needed to judge one match.
type Input struct {
	Type MatchType
	Sets SetConfig // ignored for Continuous

	Home []int
	Away []int

	// Complete is the explicit completion flag from the document. Nil means
	// completion is derived from the scores where the match type allows it.
	Complete *bool

	// Duration caps the match by time. A timed sets match never
	// auto-completes and its set scores are not checked against set rules.
	Duration string

	DrawsAllowed bool
}

// Result is the derived outcome of a match.
type Result struct {
	Complete bool `json:"complete"`
	Draw     bool `json:"draw"`
	Winner   Side `json:"winner"`
	HomeSets int  `json:"homeSets"`
	AwaySets int  `json:"awaySets"`
}

// Loser returns the losing side, or NoSide when there is no winner.
func (r Result) Loser() Side {
	return r.Winner.Other()
}

// Decided reports whether the match is complete and has a winner.
func (r Result) Decided() bool {
	return r.Complete && r.Winner != NoSide
}

// SetsFor returns the sets won by side.
func (r Result) SetsFor(side Side) int {
	switch side {
	case Home:
		return r.HomeSets
	case Away:
		return r.AwaySets
	default:
		return 0
	}
}

// Compute validates the scores in in and derives the match outcome.
// On error the zero Result is returned.
func Compute(in Input) (Result, error) {
	if len(in.Home) != len(in.Away) {
		return Result{}, ErrScoreLengthMismatch
	}
	for i := range in.Home {
		if in.Home[i] < 0 || in.Away[i] < 0 {
			return Result{}, ErrNegativeScore
		}
	}

	switch in.Type {
	case Continuous:
		return computeContinuous(in)
	case Sets:
		return computeSets(in)
	default:
		return Result{}, fmt.Errorf("unknown match type %q", in.Type)
	}
}

func computeContinuous(in Input) (Result, error) {
	if len(in.Home) > 1 {
		return Result{}, ErrTooManyScores
	}

	var r Result
	if len(in.Home) == 0 || (in.Home[0] == 0 && in.Away[0] == 0) {
		return r, nil
	}
	if in.Complete == nil || !*in.Complete {
		return r, nil
	}

	r.Complete = true
	return decide(r, in.Home[0], in.Away[0], in.DrawsAllowed)
}

func computeSets(in Input) (Result, error) {
	cfg := in.Sets
	if len(in.Home) > cfg.MaxSets {
		return Result{}, fmt.Errorf("%w: %d sets given, maximum is %d", ErrTooManySets, len(in.Home), cfg.MaxSets)
	}
	if in.Duration == "" {
		if err := ValidateSetScores(in.Home, in.Away, cfg); err != nil {
			return Result{}, err
		}
	}

	explicit := in.Complete != nil && *in.Complete

	var r Result
	counted := 0
	for i := range in.Home {
		h, a := in.Home[i], in.Away[i]
		if h < cfg.MinPoints && a < cfg.MinPoints {
			continue
		}
		counted++
		if !explicit && !cfg.SetComplete(i, h, a) {
			continue
		}
		if h > a {
			r.HomeSets++
		} else if a > h {
			r.AwaySets++
		}
	}
	if counted == 0 {
		return r, nil
	}

	switch {
	case in.Complete != nil:
		r.Complete = *in.Complete
	case in.Duration == "":
		played := r.HomeSets + r.AwaySets
		r.Complete = played == cfg.MaxSets || r.HomeSets >= cfg.SetsToWin || r.AwaySets >= cfg.SetsToWin
	}
	if !r.Complete {
		return r, nil
	}
	return decide(r, r.HomeSets, r.AwaySets, in.DrawsAllowed)
}

// decide fills in the winner of a complete match from the deciding totals.
func decide(r Result, home, away int, drawsAllowed bool) (Result, error) {
	switch {
	case home > away:
		r.Winner = Home
	case away > home:
		r.Winner = Away
	case drawsAllowed:
		r.Draw = true
	default:
		return Result{}, ErrDrawNotAllowed
	}
	return r, nil
}
