package cmd

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/annotation-forge/annotator/internal/cmd/base"
	"github.com/annotation-forge/annotator/internal/version"
	"github.com/annotation-forge/annotator/pkg/outage"
)

// RunOptions replaces the process-wide defaults Main uses. Zero fields keep
// their defaults.
type RunOptions struct {
	Context       context.Context
	Log           hclog.Logger
	UI            cli.Ui
	Fs            afero.Fs
	RenderContext outage.RenderContext
}

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return RunCustom(args, &RunOptions{Context: ctx})
}

// RunCustom runs the CLI with opts.
func RunCustom(args []string, opts *RunOptions) int {
	if opts == nil {
		opts = &RunOptions{}
	}
	cliName := args[0]

	log := opts.Log
	if log == nil {
		log = hclog.New(&hclog.LoggerOptions{
			Name:   cliName,
			Output: os.Stderr,
		})
	}

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	ui := opts.UI
	if ui == nil {
		ui = &cli.BasicUi{
			Reader:      bufio.NewReader(os.Stdin),
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		}
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	b := base.NewCommand(ctx, log, ui)
	if opts.Fs != nil {
		b.Fs = opts.Fs
	}
	b.RenderContext = opts.RenderContext

	c := &cli.CLI{
		Name:         cliName,
		Args:         args[1:],
		Version:      version.Version,
		Commands:     commands(b),
		Autocomplete: false,
		HelpWriter:   os.Stderr,
	}

	exitCode, err := c.Run()
	if err != nil {
		log.Error("error running command", "error", err)
		return 1
	}

	return exitCode
}
