package document

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

// SchemaIssue is one schema violation.
type SchemaIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// SchemaError reports every schema violation found in a document.
type SchemaError struct {
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 0 {
		return "document does not match the competition schema"
	}
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			msgs = append(msgs, issue.Path+": "+issue.Message)
		} else {
			msgs = append(msgs, issue.Message)
		}
	}
	return "document does not match the competition schema: " + strings.Join(msgs, "; ")
}

// CheckSchema unifies JSON data with the #Competition schema.
// filename is used for error positions only.
func CheckSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling competition schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Competition"))

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return &SchemaError{Issues: issues(err)}
	}
	value := ctx.BuildExpr(expr)
	if err := value.Err(); err != nil {
		return &SchemaError{Issues: issues(err)}
	}

	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Issues: issues(err)}
	}
	return nil
}

func issues(err error) []SchemaIssue {
	var out []SchemaIssue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		issue := SchemaIssue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		}
		if pos := e.Position(); pos.IsValid() {
			issue.Line = pos.Line()
		}
		out = append(out, issue)
	}
	if len(out) == 0 {
		out = append(out, SchemaIssue{Message: err.Error()})
	}
	return out
}
