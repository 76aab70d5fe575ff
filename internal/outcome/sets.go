package outcome

import "fmt"

// SetComplete reports whether the set at index with the given scores has
// been won: a side reached the points target with a clear lead, or a side
// reached the points cap.
func (c SetConfig) SetComplete(index, home, away int) bool {
	pointsToWin, maxPoints := c.target(index)
	if (home >= pointsToWin || away >= pointsToWin) && abs(home-away) >= c.ClearPoints {
		return true
	}
	return home >= maxPoints || away >= maxPoints
}

// ValidateSetScores checks a raw set score sequence against cfg without
// computing an outcome.
//
// Rules:
//   - both sequences have equal length, no longer than MaxSets
//   - a won set shows no more points than were needed to win it
//   - no set after an incomplete or unplayed set carries a non-zero score
//   - no set after the match was won carries a non-zero score
func ValidateSetScores(home, away []int, cfg SetConfig) error {
	if len(home) != len(away) {
		return ErrScoreLengthMismatch
	}
	if len(home) > cfg.MaxSets {
		return fmt.Errorf("%w: %d sets given, maximum is %d", ErrTooManySets, len(home), cfg.MaxSets)
	}

	homeWon, awayWon := 0, 0
	incomplete := false
	for i := range home {
		h, a := home[i], away[i]
		if incomplete || homeWon >= cfg.SetsToWin || awayWon >= cfg.SetsToWin {
			if h == 0 && a == 0 {
				continue
			}
			if incomplete {
				return fmt.Errorf("set %d: %w", i+1, ErrScoresAfterIncompleteSet)
			}
			return fmt.Errorf("set %d: %w", i+1, ErrScoresAfterMatchWon)
		}

		if (h < cfg.MinPoints && a < cfg.MinPoints) || h == a || !cfg.SetComplete(i, h, a) {
			incomplete = true
			continue
		}

		winner, loser, side := h, a, Home
		if a > h {
			winner, loser, side = a, h, Away
		}
		pointsToWin, maxPoints := cfg.target(i)
		if winner > maxPoints || (winner > pointsToWin && winner-loser > cfg.ClearPoints) {
			return fmt.Errorf("set %d: %s team %w", i+1, side, ErrTooManyPoints)
		}

		switch side {
		case Home:
			homeWon++
		case Away:
			awayWon++
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
