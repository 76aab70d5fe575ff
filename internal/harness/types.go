package harness

import "github.com/roach88/vbc/internal/store"

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Errors contains failed check messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Report and Snapshot are the exported results. Both are zero when
	// the scenario expected the document to be rejected.
	Report   store.Report   `json:"report"`
	Snapshot store.Snapshot `json:"snapshot"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
