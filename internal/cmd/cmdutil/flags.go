// Package cmdutil provides shared flags and argument handling for partsync commands.
package cmdutil

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/internal/appcontext"
	"github.com/agentstation/partsync/pkg/errors"
)

// PairFlags select one explicit library/CSV pair instead of pairing
// whole folders.
type PairFlags struct {
	Lib string
	CSV string
}

// AddPairFlags adds --lib and, when withCSV is set, --csv to a command.
func AddPairFlags(cmd *cobra.Command, withCSV bool) *PairFlags {
	flags := &PairFlags{}

	cmd.Flags().StringVar(&flags.Lib, "lib", "",
		"KiCad symbol library file (.lib) inside LIB_FOLDER")
	if withCSV {
		cmd.Flags().StringVar(&flags.CSV, "csv", "",
			"CSV file inside CSV_FOLDER (default <lib name>.csv)")
	}

	return flags
}

// Folders resolves LIB_FOLDER and CSV_FOLDER from positional arguments,
// falling back to the lib_folder and csv_folder settings.
func Folders(args []string, settings appcontext.Settings) (libFolder, csvFolder string, err error) {
	libFolder, csvFolder = settings.LibFolder, settings.CSVFolder
	if len(args) > 0 {
		libFolder = args[0]
	}
	if len(args) > 1 {
		csvFolder = args[1]
	}
	if libFolder == "" {
		return "", "", errors.NewValidationError("LIB_FOLDER", "", "library folder is required")
	}
	return libFolder, csvFolder, nil
}

// Pairs resolves the pairs a command works on.
func Pairs(libFolder, csvFolder string, flags *PairFlags) ([]partsync.Pair, error) {
	if csvFolder == "" {
		csvFolder = libFolder
	}
	if flags != nil && flags.Lib != "" {
		csv := flags.CSV
		if csv == "" {
			csv = partsync.ExplicitPair(libFolder, csvFolder, flags.Lib, "").Name + ".csv"
		}
		return []partsync.Pair{partsync.ExplicitPair(libFolder, csvFolder, flags.Lib, csv)}, nil
	}
	if flags != nil && flags.CSV != "" {
		return nil, errors.NewValidationError("csv", flags.CSV, "--csv requires --lib")
	}

	pairs, err := partsync.PairFolders(libFolder, csvFolder)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, errors.NewNotFoundError("library", libFolder)
	}
	return pairs, nil
}

// EachPair runs fn for every pair. A pair that fails is logged and skipped
// so the rest of the batch still runs; cancellation stops the loop. When
// any pair failed the returned error wraps ErrPairsFailed.
func EachPair(ctx context.Context, logger *zerolog.Logger, operation string, pairs []partsync.Pair, fn func(partsync.Pair) error) error {
	failed := 0
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return errors.WrapResource(operation, "library", pair.Name, errors.ErrCanceled)
		}
		err := fn(pair)
		if err == nil {
			continue
		}
		if errors.IsCanceled(err) || errors.Is(err, context.Canceled) {
			return err
		}
		failed++
		logger.Error().
			Err(err).
			Str("library", pair.Name).
			Str("csv", pair.CSV).
			Msg("Skipping library")
	}
	if failed > 0 {
		return errors.WrapResource(operation, "libraries", fmt.Sprintf("%d of %d", failed, len(pairs)), errors.ErrPairsFailed)
	}
	return nil
}
