// Package update provides the update command implementation.
package update

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/internal/appcontext"
	"github.com/agentstation/partsync/internal/cmd/cmdutil"
	"github.com/agentstation/partsync/internal/cmd/output"
)

// NewCommand creates the update command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		pairFlags *cmdutil.PairFlags
		flags     = &Flags{}
	)

	cmd := &cobra.Command{
		Use:     "update [LIB_FOLDER] [CSV_FOLDER]",
		GroupID: "core",
		Short:   "Write CSV edits back into symbol libraries",
		Args:    cobra.MaximumNArgs(2),
		Long: `Update applies each CSV file to its library in four stages:

1. Replace - a renamed row at the same position renames the component
2. Delete  - components missing from the CSV are removed
3. Add     - new rows are created from the --template component
4. Update  - changed, emptied and new fields are written

The library is saved after each stage that changed it. The CSV always
wins when both sides hold different values.`,
		Example: `  partsync update libs csv                   # Review and apply changes
  partsync update libs csv --dry-run         # Preview changes
  partsync update libs csv -y                # Apply without asking
  partsync update libs csv --template tpl.lib  # Create new components from a template
  partsync update libs csv --no-delete       # Never remove components`,
		RunE: func(cmd *cobra.Command, args []string) error {
			libFolder, csvFolder, err := cmdutil.Folders(args, app.Settings())
			if err != nil {
				return err
			}
			pairs, err := cmdutil.Pairs(libFolder, csvFolder, pairFlags)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return cmdutil.EachPair(ctx, app.Logger(), "update", pairs, func(pair partsync.Pair) error {
				return ExecuteUpdate(ctx, app, pair, flags, format, cmd.OutOrStdout())
			})
		},
	}

	pairFlags = cmdutil.AddPairFlags(cmd, true)
	cmd.Flags().StringVar(&flags.Template, "template", "", "library whose first component is the template for new components")
	cmd.Flags().StringVar(&flags.GlobalField, "global-field", "", "field set on every component that lacks it")
	cmd.Flags().StringVar(&flags.GlobalValue, "global-value", "", "value for --global-field")
	cmd.Flags().BoolVar(&flags.NoAdd, "no-add", false, "never create components")
	cmd.Flags().BoolVar(&flags.NoDelete, "no-delete", false, "never remove components")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show changes without applying them")
	cmd.Flags().BoolVarP(&flags.AutoApprove, "yes", "y", false, "apply changes without asking")

	return cmd
}

// ExecuteUpdate reconciles one pair: it prints the pending changes, asks
// for confirmation unless approved, and applies them.
func ExecuteUpdate(ctx context.Context, app appcontext.Interface, pair partsync.Pair, flags *Flags, format output.Format, w io.Writer) error {
	logger := app.Logger().With().Str("library", pair.Name).Logger()

	s, err := app.Open(pair, BuildOptions(flags, app.Settings())...)
	if err != nil {
		return err
	}

	report, err := s.Diff(ctx)
	if err != nil {
		return err
	}
	if err := output.PrintReport(w, format, pair.Name, report); err != nil {
		return err
	}
	if report.IsEmpty() || flags.DryRun {
		return nil
	}

	if !flags.AutoApprove {
		title := fmt.Sprintf("Apply %d changes to %s?", report.Summary().TotalChanges, pair.Library)
		ok, err := app.Confirm(title, report.String())
		if err != nil {
			return err
		}
		if !ok {
			logger.Info().Msg("Update cancelled")
			return nil
		}
	}

	res, err := s.Update(ctx)
	if err != nil {
		return err
	}
	if n := len(res.Errors); n > 0 {
		logger.Warn().Int("errors", n).Msg("Some changes were not applied")
	}
	return output.NewFormatter(format).Format(w, output.NewLibraryResult(pair.Name, res))
}
