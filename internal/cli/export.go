package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vbc/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	DBPath string
	ID     string // report ID; a UUIDv7 when empty
}

// ExportResult summarises an exported report.
type ExportResult struct {
	Report     store.Report `json:"report"`
	Database   string       `json:"database"`
	Outcomes   int          `json:"outcomes"`
	Standings  int          `json:"standings"`
	Placements int          `json:"placements"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <document>",
		Short: "Export derived results to a SQLite database",
		Long: `Export every derived result of a competition as a new report in a
SQLite database: match outcomes, league tables and knockout placings.

The database is created if needed. Each export is a new report with
its own sequence number; earlier reports are never modified.

Examples:
  vbc export cup.json --db results.db
  vbc export cup.json --db results.db --id round-3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "report ID (default: generated UUIDv7)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := loadOrFail(path, formatter)
	if err != nil {
		return err
	}

	var ids store.IDGenerator = store.UUIDv7Generator{}
	if opts.ID != "" {
		ids = store.NewFixedGenerator(opts.ID)
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := st.WriteReport(ctx, ids.Generate(), c)
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "export failed", err)
	}
	snap, err := st.ReadSnapshot(ctx, report.ID)
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "export failed", err)
	}
	formatter.VerboseLog("Report %s digest %s", report.ID, report.Digest)

	result := ExportResult{
		Report:     report,
		Database:   opts.DBPath,
		Outcomes:   len(snap.Outcomes),
		Standings:  len(snap.Standings),
		Placements: len(snap.Placements),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Exported report %s (seq %d) to %s\n", report.ID, report.Seq, opts.DBPath)
	fmt.Fprintf(w, "  %d match outcome(s), %d table row(s), %d placing(s)\n",
		result.Outcomes, result.Standings, result.Placements)
	return nil
}
