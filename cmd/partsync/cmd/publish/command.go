// Package publish provides the publish command implementation.
package publish

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/internal/appcontext"
	"github.com/agentstation/partsync/internal/cmd/cmdutil"
	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/sink"
)

// Flags holds the publish-specific flags.
type Flags struct {
	RedisAddr string
	Prefix    string
}

// NewCommand creates the publish command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		pairFlags *cmdutil.PairFlags
		flags     = &Flags{}
	)

	cmd := &cobra.Command{
		Use:     "publish [LIB_FOLDER]",
		GroupID: "core",
		Short:   "Copy library records into Redis",
		Args:    cobra.MaximumNArgs(1),
		Long: `Publish projects every component of each library into a flat record
and stores it as a Redis hash at <prefix>:<library>:<component>. The
component names of a library are indexed in the set <prefix>:<library>.`,
		Example: `  partsync publish libs                      # Publish to the configured Redis
  partsync publish libs --redis-addr db:6379 # Publish to another server
  partsync publish libs --lib passives.lib   # Publish one library`,
		RunE: func(cmd *cobra.Command, args []string) error {
			libFolder, _, err := cmdutil.Folders(args, app.Settings())
			if err != nil {
				return err
			}
			pairs, err := cmdutil.Pairs(libFolder, libFolder, pairFlags)
			if err != nil {
				return err
			}

			target, err := resolveSink(app, flags)
			if err != nil {
				return err
			}
			if target != nil {
				defer func() { _ = target.Close() }()
			} else if target, err = app.Sink(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.SinkTimeout)
			defer cancel()

			return cmdutil.EachPair(ctx, app.Logger(), "publish", pairs, func(pair partsync.Pair) error {
				s, err := app.Open(pair, partsync.WithSink(target))
				if err != nil {
					return err
				}
				n, err := s.Publish(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Published %d components from %s\n", n, pair.Library)
				return nil
			})
		},
	}

	pairFlags = cmdutil.AddPairFlags(cmd, false)
	cmd.Flags().StringVar(&flags.RedisAddr, "redis-addr", "", "Redis address (overrides redis_addr)")
	cmd.Flags().StringVar(&flags.Prefix, "prefix", "", "key prefix (overrides sink_prefix)")

	return cmd
}

// resolveSink builds a dedicated Redis sink when flags override the
// configured one, and returns nil otherwise.
func resolveSink(app appcontext.Interface, flags *Flags) (sink.Sink, error) {
	if flags.RedisAddr == "" && flags.Prefix == "" {
		return nil, nil
	}

	settings := app.Settings()
	addr, prefix := settings.RedisAddr, settings.SinkPrefix
	if flags.RedisAddr != "" {
		addr = flags.RedisAddr
	}
	if flags.Prefix != "" {
		prefix = flags.Prefix
	}

	rs := sink.NewRedisSink(addr, settings.RedisPassword, settings.RedisDB, prefix)
	if err := rs.Ping(context.Background()); err != nil {
		_ = rs.Close()
		return nil, err
	}
	return rs, nil
}
