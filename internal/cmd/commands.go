package cmd

import (
	"github.com/mitchellh/cli"

	"github.com/annotation-forge/annotator/internal/cmd/base"
	"github.com/annotation-forge/annotator/internal/cmd/commands/annotations"
	"github.com/annotation-forge/annotator/internal/cmd/commands/compare"
	"github.com/annotation-forge/annotator/internal/cmd/commands/discrepancies"
	"github.com/annotation-forge/annotator/internal/cmd/commands/multi"
	"github.com/annotation-forge/annotator/internal/cmd/commands/version"
)

// commands returns the command factories, all sharing b.
func commands(b *base.Command) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"annotations": func() (cli.Command, error) {
			return &annotations.Command{Command: b}, nil
		},
		"compare": func() (cli.Command, error) {
			return &compare.Command{Command: b}, nil
		},
		"discrepancies": func() (cli.Command, error) {
			return &discrepancies.Command{Command: b}, nil
		},
		"multi": func() (cli.Command, error) {
			return &multi.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
