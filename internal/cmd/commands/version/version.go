package version

import (
	"github.com/annotation-forge/annotator/internal/cmd/base"
	"github.com/annotation-forge/annotator/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the annotator version"
}

func (c *Command) Help() string {
	return "Usage: annotator version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
