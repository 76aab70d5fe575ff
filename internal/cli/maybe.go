package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/vbc/internal/competition"
)

// TeamPresence says whether a team plays, or may still play, in a group.
type TeamPresence struct {
	Group   string `json:"group"`
	Playing bool   `json:"playing"`
	Maybe   bool   `json:"maybe"`
}

// NewMaybeCommand creates the maybe command.
func NewMaybeCommand(rootOpts *RootOptions) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "maybe <document> <team>",
		Short: "Show where a team plays or may still play",
		Long: `Show, for every group, whether a team is known to play there or may
still get there through the results of a group that has not finished.

Examples:
  vbc maybe cup.json TA
  vbc maybe cup.json TA --group C:EX`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaybe(rootOpts, args[0], args[1], group, cmd)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "only check this group (STAGE:GROUP)")

	return cmd
}

func runMaybe(opts *RootOptions, path, teamID, group string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := loadOrFail(path, formatter)
	if err != nil {
		return err
	}
	if !c.HasTeam(teamID) {
		msg := fmt.Sprintf("team %q is not registered", teamID)
		_ = formatter.Error(competition.ErrUnknownTeam, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	groups := c.Groups()
	if group != "" {
		g, err := lookupGroup(c, group, formatter)
		if err != nil {
			return err
		}
		groups = []*competition.Group{g}
	}

	presence := make([]TeamPresence, 0, len(groups))
	for _, g := range groups {
		presence = append(presence, TeamPresence{
			Group:   g.Key().String(),
			Playing: g.HasTeam(teamID),
			Maybe:   g.MayHaveTeam(teamID),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(presence)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	for _, p := range presence {
		status := "-"
		switch {
		case p.Playing:
			status = "playing"
		case p.Maybe:
			status = "maybe"
		}
		fmt.Fprintf(tw, "%s\t%s\n", p.Group, status)
	}
	return tw.Flush()
}
