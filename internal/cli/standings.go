package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/vbc/internal/competition"
	"github.com/roach88/vbc/internal/standings"
)

// GroupStandings is the league table of one group.
type GroupStandings struct {
	Group    string            `json:"group"`
	Name     string            `json:"name,omitempty"`
	Ordering string            `json:"ordering"`
	Scoring  string            `json:"scoring,omitempty"`
	Entries  []standings.Entry `json:"entries"`
}

// NewStandingsCommand creates the standings command.
func NewStandingsCommand(rootOpts *RootOptions) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "standings <document>",
		Short: "Show league tables",
		Long: `Show the current table of every league group, or of one group.

Tables include incomplete groups; only completed matches count.

Examples:
  vbc standings cup.json
  vbc standings cup.json --group P:A --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandings(rootOpts, args[0], group, cmd)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "only show this league group (STAGE:GROUP)")

	return cmd
}

func runStandings(opts *RootOptions, path, group string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := loadOrFail(path, formatter)
	if err != nil {
		return err
	}

	var groups []*competition.Group
	if group != "" {
		g, err := lookupGroup(c, group, formatter)
		if err != nil {
			return err
		}
		groups = append(groups, g)
	} else {
		for _, g := range c.Groups() {
			if g.Kind == competition.League {
				groups = append(groups, g)
			}
		}
	}

	tables := []GroupStandings{}
	for _, g := range groups {
		table, err := g.Table()
		if err != nil {
			var ve *competition.ValidationError
			code := ErrCodeGeneric
			if errors.As(err, &ve) {
				code = ve.Code
			}
			_ = formatter.Error(code, err.Error(), nil)
			return WrapExitError(ExitCommandError, "standings failed", err)
		}
		tables = append(tables, GroupStandings{
			Group:    g.Key().String(),
			Name:     g.Name,
			Ordering: table.OrderingText(),
			Scoring:  table.ScoringText(),
			Entries:  table.Entries,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(tables)
	}
	if len(tables) == 0 {
		fmt.Fprintln(formatter.Writer, "No league groups.")
		return nil
	}
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		writeTable(formatter.Writer, t)
	}
	return nil
}

func writeTable(w io.Writer, t GroupStandings) {
	if t.Name != "" {
		fmt.Fprintf(w, "%s %s\n", t.Group, t.Name)
	} else {
		fmt.Fprintln(w, t.Group)
	}
	fmt.Fprintln(w, t.Ordering)
	if t.Scoring != "" {
		fmt.Fprintln(w, t.Scoring)
	}
	fmt.Fprintf(w, "%2s  %-6s %-12s %2s %2s %2s %2s %3s %3s %4s %4s %4s\n",
		"#", "ID", "TEAM", "P", "W", "L", "D", "SF", "SA", "PF", "PA", "PTS")
	for i, e := range t.Entries {
		fmt.Fprintf(w, "%2d  %-6s %-12s %2d %2d %2d %2d %3d %3d %4d %4d %4d\n",
			i+1, e.TeamID, e.TeamName, e.Played, e.Wins, e.Losses, e.Draws,
			e.SetsFor, e.SetsAgainst, e.PointsFor, e.PointsAgainst, e.Points)
	}
}
