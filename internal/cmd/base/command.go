package base

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/annotation-forge/annotator/pkg/outage"
)

// Command holds what every subcommand shares.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is where -out files are written.
	Fs afero.Fs

	// Context is cancelled on interrupt.
	Context context.Context

	// RenderContext overrides terminal detection when set.
	RenderContext outage.RenderContext
}

// NewCommand creates a base command writing to the OS filesystem.
func NewCommand(ctx context.Context, log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:     log,
		UI:      ui,
		Fs:      afero.NewOsFs(),
		Context: ctx,
	}
}

// Ctx returns the command context, never nil.
func (c *Command) Ctx() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}
