package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/roach88/vbc/internal/competition"
	"github.com/roach88/vbc/internal/document"
	"github.com/roach88/vbc/internal/teamref"
)

// Error code constants for failures that happen before the competition
// rules run. Rule and reference failures carry their own E2xx codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeSchema      = "E006" // Document is not valid JSON/YAML or fails the schema
	ErrCodeWriteFailed = "E007" // Database or file write error
	ErrCodeBadArgument = "E008" // Malformed command argument
)

// LoadError describes why a competition document could not be loaded.
type LoadError struct {
	Code    string
	Message string
	Issues  []document.SchemaIssue // schema violations, if any
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ExitCode maps the error to a process exit code: a document that exists
// but is invalid is a validation failure, anything else a command error.
func (e *LoadError) ExitCode() int {
	if e.Code == ErrCodeNotFound || e.Code == ErrCodeGeneric {
		return ExitCommandError
	}
	return ExitFailure
}

// LoadCompetition reads, schema-checks and builds the competition at path.
// Every failure is returned as a *LoadError.
func LoadCompetition(path string, f *OutputFormatter) (*competition.Competition, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("competition document not found: %s", path), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error(), Err: err}
	}

	f.VerboseLog("Loading %s", path)
	c, err := competition.Load(path, competition.WithLogger(f.Logger()))
	if err == nil {
		return c, nil
	}

	var schemaErr *document.SchemaError
	var ve *competition.ValidationError
	switch {
	case errors.As(err, &schemaErr):
		return nil, &LoadError{Code: ErrCodeSchema, Message: err.Error(), Issues: schemaErr.Issues, Err: err}
	case errors.As(err, &ve):
		return nil, &LoadError{Code: ve.Code, Message: err.Error(), Err: err}
	default:
		return nil, &LoadError{Code: ErrCodeSchema, Message: err.Error(), Err: err}
	}
}

// loadOrFail loads the document and reports a failure through f.
func loadOrFail(path string, f *OutputFormatter) (*competition.Competition, error) {
	c, err := LoadCompetition(path, f)
	if err != nil {
		var loadErr *LoadError
		errors.As(err, &loadErr)
		_ = f.Error(loadErr.Code, loadErr.Message, issuesOrNil(loadErr.Issues))
		return nil, WrapExitError(loadErr.ExitCode(), "load failed", loadErr)
	}
	return c, nil
}

func issuesOrNil(issues []document.SchemaIssue) any {
	if len(issues) == 0 {
		return nil
	}
	return issues
}

// lookupGroup resolves a --group flag value.
func lookupGroup(c *competition.Competition, key string, f *OutputFormatter) (*competition.Group, error) {
	k, err := teamref.ParseGroupKey(key)
	if err != nil {
		_ = f.Error(ErrCodeBadArgument, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "bad --group", err)
	}
	g, ok := c.Group(k)
	if !ok {
		msg := fmt.Sprintf("no group %s", key)
		_ = f.Error(ErrCodeBadArgument, msg, nil)
		return nil, NewExitError(ExitCommandError, msg)
	}
	return g, nil
}
