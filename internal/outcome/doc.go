// Package outcome computes the result of a single match from its raw scores.
//
// This package is the leaf of the derivation graph. It knows nothing about
// teams, groups or references; callers hand it a match type, the set rules
// and the two score sequences, and it returns completeness, the winning side
// and the sets won by each side.
//
// Two scoring models are supported:
//   - continuous: a single score per side (football, netball, ...)
//   - sets: a sequence of set scores judged against SetConfig (volleyball, ...)
//
// All functions are pure. Validation always happens before a Result is
// returned, so a failed Compute never yields a partially applied outcome.
package outcome
