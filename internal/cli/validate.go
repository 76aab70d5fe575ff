package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vbc/internal/competition"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool                       `json:"valid"`
	Competition string                     `json:"competition,omitempty"`
	Teams       int                        `json:"teams"`
	Stages      int                        `json:"stages"`
	Groups      int                        `json:"groups"`
	Matches     int                        `json:"matches"`
	Complete    bool                       `json:"complete"`
	Warnings    []competition.CycleWarning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a competition document",
		Long: `Validate a competition document (JSON or YAML).

Checks the document against the competition schema, then builds the
competition: unique IDs, score validity and every team reference.
Groups whose results depend on each other are reported as warnings.

Exit codes:
  0 - Document valid (warnings do not fail validation)
  1 - Document invalid
  2 - Command error (document not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := loadOrFail(path, formatter)
	if err != nil {
		return err
	}

	result := ValidationResult{
		Valid:       true,
		Competition: c.Name,
		Teams:       len(c.Teams()),
		Stages:      len(c.Stages()),
		Complete:    c.IsComplete(),
		Warnings:    c.AnalyzeReferenceCycles(),
	}
	for _, g := range c.Groups() {
		result.Groups++
		result.Matches += len(g.AllMatches())
	}
	formatter.VerboseLog("Checked %d match(es) in %d group(s)", result.Matches, result.Groups)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ %s is valid\n", c.Name)
	fmt.Fprintf(w, "  %d team(s), %d stage(s), %d group(s), %d match(es)\n",
		result.Teams, result.Stages, result.Groups, result.Matches)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠ %s\n", warning.Message)
	}
	return nil
}
