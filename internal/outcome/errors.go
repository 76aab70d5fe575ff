package outcome

import "errors"

// Score validation errors. Callers wrap these with match coordinates.
var (
	ErrScoreLengthMismatch      = errors.New("score lengths are different")
	ErrTooManyScores            = errors.New("continuous matches may only carry a single score per team")
	ErrTooManySets              = errors.New("more sets than the configured maximum")
	ErrNegativeScore            = errors.New("scores may not be negative")
	ErrDrawNotAllowed           = errors.New("scores show a draw but draws are not allowed")
	ErrTooManyPoints            = errors.New("scored more points than necessary to win the set")
	ErrScoresAfterIncompleteSet = errors.New("non-zero scores for a set after an incomplete set")
	ErrScoresAfterMatchWon      = errors.New("non-zero scores for a set after the match was won")

	// ErrMatchIncomplete is returned when a winner or loser is requested from
	// a match whose outcome is not yet determined.
	ErrMatchIncomplete = errors.New("match incomplete")
)
