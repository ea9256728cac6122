// Package diff provides the diff command implementation.
package diff

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/internal/appcontext"
	"github.com/agentstation/partsync/internal/cmd/cmdutil"
	"github.com/agentstation/partsync/internal/cmd/output"
)

// NewCommand creates the diff command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var pairFlags *cmdutil.PairFlags

	cmd := &cobra.Command{
		Use:     "diff [LIB_FOLDER] [CSV_FOLDER]",
		GroupID: "core",
		Short:   "Show what update would change",
		Args:    cobra.MaximumNArgs(2),
		Long: `Diff compares each library with its CSV file and prints the components
to replace, remove and add, and the fields to update, remove and add.
Nothing is written.`,
		Example: `  partsync diff libs csv                     # Compare every library
  partsync diff libs csv -o yaml             # Machine-readable report
  partsync diff libs csv -o markdown         # Report for a pull request`,
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
			return cmdutil.EachPair(ctx, app.Logger(), "diff", pairs, func(pair partsync.Pair) error {
				s, err := app.Open(pair)
				if err != nil {
					return err
				}
				report, err := s.Diff(ctx)
				if err != nil {
					return err
				}
				return output.PrintReport(cmd.OutOrStdout(), format, pair.Name, report)
			})
		},
	}

	pairFlags = cmdutil.AddPairFlags(cmd, true)

	return cmd
}
