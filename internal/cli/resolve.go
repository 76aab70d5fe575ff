package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Resolution is the team a reference currently points at.
type Resolution struct {
	Ref   string `json:"ref"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"` // set when the reference itself is invalid
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <document> <ref>...",
		Short: "Resolve team references",
		Long: `Resolve team references against the current results.

A reference is a team ID, a structured reference such as
{P:A:league:1} or {F:KO:SF1:winner}, or a ternary A==B?C:D.
References that cannot be resolved yet print UNKNOWN_TEAM_ID.
Invalid references also print the validation error and fail the
command.

Examples:
  vbc resolve cup.json '{P:A:league:1}' '{F:KO:FIN:winner}'`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runResolve(opts *RootOptions, path string, refs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := loadOrFail(path, formatter)
	if err != nil {
		return err
	}

	results := make([]Resolution, 0, len(refs))
	invalid := 0
	for _, ref := range refs {
		team := c.Resolve(ref)
		r := Resolution{Ref: ref, ID: team.ID, Name: team.Name}
		if err := c.ValidateTeamRef(ref, "", "ref"); err != nil {
			r.Error = err.Error()
			invalid++
		}
		results = append(results, r)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			fmt.Fprintf(formatter.Writer, "%s → %s (%s)\n", r.Ref, r.ID, r.Name)
			if r.Error != "" {
				fmt.Fprintf(formatter.Writer, "  %s\n", r.Error)
			}
		}
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid reference(s)", invalid))
	}
	return nil
}
