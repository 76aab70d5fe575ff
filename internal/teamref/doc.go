// Package teamref parses team references.
//
// A team reference is one of:
//
//	TEAM1                                   literal team ID
//	{stage:group:match:winner}              winner or loser of a match
//	{stage:group:league:3}                  league position
//	{s:g:m:winner}=={s:g:m2:loser}?A:B      ternary over two references
//
// Parse produces a Ref tree. It performs syntax checks only; whether the
// stage, group or match exists is the caller's concern.
package teamref
