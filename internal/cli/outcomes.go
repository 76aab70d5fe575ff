package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/vbc/internal/store"
)

// NewOutcomesCommand creates the outcomes command.
func NewOutcomesCommand(rootOpts *RootOptions) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "outcomes <document>",
		Short: "Show the outcome of every match",
		Long: `Show every match with its resolved teams, sets won and result.

Teams that depend on results not yet known are shown as UNKNOWN_TEAM_ID.

Examples:
  vbc outcomes cup.json
  vbc outcomes cup.json --group F:KO
  vbc outcomes cup.json --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutcomes(rootOpts, args[0], group, cmd)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "only show matches of this group (STAGE:GROUP)")

	return cmd
}

func runOutcomes(opts *RootOptions, path, group string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := loadOrFail(path, formatter)
	if err != nil {
		return err
	}
	if group != "" {
		if _, err := lookupGroup(c, group, formatter); err != nil {
			return err
		}
	}

	snap, err := store.TakeSnapshot(c)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "outcomes failed", err)
	}

	outcomes := []store.MatchOutcome{}
	for _, o := range snap.Outcomes {
		if group == "" || o.Stage+":"+o.Group == group {
			outcomes = append(outcomes, o)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(outcomes)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATCH\tHOME\tAWAY\tSETS\tRESULT")
	for _, o := range outcomes {
		fmt.Fprintf(tw, "%s:%s:%s\t%s\t%s\t%d-%d\t%s\n",
			o.Stage, o.Group, o.Match, o.HomeTeam, o.AwayTeam, o.HomeSets, o.AwaySets, resultText(o))
	}
	return tw.Flush()
}

func resultText(o store.MatchOutcome) string {
	switch {
	case !o.Complete:
		return "incomplete"
	case o.Draw:
		return "draw"
	default:
		return o.Winner + " win"
	}
}
