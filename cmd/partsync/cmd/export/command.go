// Package export provides the export command implementation.
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/internal/appcontext"
	"github.com/agentstation/partsync/internal/cmd/cmdutil"
	"github.com/agentstation/partsync/pkg/errors"
)

// NewCommand creates the export command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		pairFlags *cmdutil.PairFlags
		force     bool
	)

	cmd := &cobra.Command{
		Use:     "export [LIB_FOLDER] [CSV_FOLDER]",
		GroupID: "core",
		Short:   "Write symbol libraries out as CSV files",
		Args:    cobra.MaximumNArgs(2),
		Long: `Export writes every component of each library in LIB_FOLDER to a CSV
file in CSV_FOLDER with the same base name. Columns are the canonical
field keys in order of first appearance.

Existing non-empty CSV files are left alone unless --force is given.`,
		Example: `  partsync export libs csv                   # Export every library
  partsync export libs csv --lib passives.lib  # Export one library
  partsync export libs csv --force           # Overwrite existing CSV files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			libFolder, csvFolder, err := cmdutil.Folders(args, app.Settings())
			if err != nil {
				return err
			}
			pairs, err := cmdutil.Pairs(libFolder, csvFolder, pairFlags)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := app.Logger()
			out := cmd.OutOrStdout()
			return cmdutil.EachPair(ctx, logger, "export", pairs, func(pair partsync.Pair) error {
				s, err := app.Open(pair)
				if err != nil {
					return err
				}
				n, err := s.Export(ctx, force)
				if errors.Is(err, errors.ErrAlreadyExists) {
					logger.Warn().Str("csv", pair.CSV).Msg("CSV file exists, use --force to overwrite")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "Exported %d components from %s to %s\n", n, pair.Library, pair.CSV)
				return nil
			})
		},
	}

	pairFlags = cmdutil.AddPairFlags(cmd, true)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing CSV files")

	return cmd
}
