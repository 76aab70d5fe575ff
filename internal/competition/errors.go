package competition

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ValidationError.
type ErrorKind string

const (
	// KindSyntax covers malformed IDs and team references.
	KindSyntax ErrorKind = "syntax"
	// KindReference covers references to stages, groups, matches or teams
	// that do not exist or cannot exist.
	KindReference ErrorKind = "reference"
	// KindRule covers domain rule violations such as invalid scores or
	// duplicate IDs.
	KindRule ErrorKind = "rule"
)

// Validation error codes (E200-E299)
const (
	// Identity errors (E200-E209)
	ErrInvalidID        = "E200" // ID contains reserved characters
	ErrDuplicateTeam    = "E201" // team ID used twice
	ErrDuplicateStage   = "E202" // stage ID used twice
	ErrDuplicateGroup   = "E203" // group ID used twice within a stage
	ErrDuplicateMatch   = "E204" // match ID used twice within a group
	ErrDuplicateClub    = "E205" // club ID used twice
	ErrDuplicateContact = "E206" // contact ID used twice within a team
	ErrDuplicatePlayer  = "E207" // player ID used twice within a team

	// Rule errors (E210-E219)
	ErrInvalidConfig    = "E210" // set or league configuration is inconsistent
	ErrInvalidScores    = "E211" // scores break the match rules
	ErrOfficialsPlaying = "E212" // officiating team is also playing
	ErrInvalidGroup     = "E213" // unknown group type or match type
	ErrInvalidEntry     = "E214" // entry is neither a match nor a break
	ErrGroupIncomplete  = "E215" // league position requested before the group finished

	// Reference errors (E220-E239)
	ErrReferenceSyntax  = "E220" // team reference does not parse
	ErrUnknownTeam      = "E221" // literal team ID is not registered
	ErrUnknownStage     = "E222" // structured reference names a missing stage
	ErrUnknownGroup     = "E223" // structured reference names a missing group
	ErrUnknownMatch     = "E224" // structured reference names a missing match
	ErrNotLeague        = "E225" // league position in a group that is not a league
	ErrLeaguePosition   = "E226" // league position beyond the number of teams
	ErrUnknownClub      = "E227" // team belongs to a missing club
	ErrSelfReference    = "E228" // match references its own result
	ErrNoKnockoutConfig = "E229" // knockout standing requested from a group without one
	ErrLeagueCycle      = "E230" // league positions depend on each other
)

// ValidationError is a load or mutation failure with its location in the
// competition.
type ValidationError struct {
	Code    string    `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Path    string    `json:"path,omitempty"`  // stage:group:match coordinates
	Field   string    `json:"field,omitempty"` // e.g. homeTeam.id
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	where := e.Path
	if e.Field != "" {
		if where != "" {
			where += " "
		}
		where += e.Field
	}
	if where == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, where, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newError(code string, kind ErrorKind, path, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:    code,
		Kind:    kind,
		Path:    path,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func wrapError(code string, kind ErrorKind, path, field string, err error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Kind:    kind,
		Path:    path,
		Field:   field,
		Message: err.Error(),
		Err:     err,
	}
}

// IsKind reports whether err is a ValidationError of the given kind.
// Uses errors.As to handle wrapped errors.
func IsKind(err error, kind ErrorKind) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}

// IsSyntaxError returns true if err is a malformed ID or reference.
func IsSyntaxError(err error) bool { return IsKind(err, KindSyntax) }

// IsReferenceError returns true if err is a dangling reference.
func IsReferenceError(err error) bool { return IsKind(err, KindReference) }

// IsRuleError returns true if err is a domain rule violation.
func IsRuleError(err error) bool { return IsKind(err, KindRule) }

// CodeOf returns the validation code of err, or "" if err is not a
// ValidationError.
func CodeOf(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}
