package update

import (
	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/internal/appcontext"
)

// Flags holds the update-specific flags.
type Flags struct {
	Template    string
	GlobalField string
	GlobalValue string
	NoAdd       bool
	NoDelete    bool
	DryRun      bool
	AutoApprove bool
}

// BuildOptions creates session options from the flags. Settings from the
// config file stay in effect for anything the flags leave unset; the
// template falls back to the template setting.
func BuildOptions(flags *Flags, settings appcontext.Settings) []partsync.Option {
	var opts []partsync.Option

	template := flags.Template
	if template == "" {
		template = settings.Template
	}
	if template != "" {
		opts = append(opts, partsync.WithTemplateFile(template))
	}
	if flags.GlobalField != "" || flags.GlobalValue != "" {
		opts = append(opts, partsync.WithGlobalField(flags.GlobalField, flags.GlobalValue))
	}
	if flags.NoAdd {
		opts = append(opts, partsync.WithAdd(false))
	}
	if flags.NoDelete {
		opts = append(opts, partsync.WithDelete(false))
	}

	return opts
}
