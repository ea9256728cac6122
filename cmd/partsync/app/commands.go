package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/partsync/cmd/partsync/cmd/diff"
	"github.com/agentstation/partsync/cmd/partsync/cmd/export"
	"github.com/agentstation/partsync/cmd/partsync/cmd/publish"
	"github.com/agentstation/partsync/cmd/partsync/cmd/update"
)

// CreateExportCommand creates the export command with app dependencies.
func (a *App) CreateExportCommand() *cobra.Command {
	return export.NewCommand(a)
}

// CreateDiffCommand creates the diff command with app dependencies.
func (a *App) CreateDiffCommand() *cobra.Command {
	return diff.NewCommand(a)
}

// CreateUpdateCommand creates the update command with app dependencies.
func (a *App) CreateUpdateCommand() *cobra.Command {
	return update.NewCommand(a)
}

// CreatePublishCommand creates the publish command with app dependencies.
func (a *App) CreatePublishCommand() *cobra.Command {
	return publish.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("partsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
