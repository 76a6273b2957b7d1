package annotations

import (
	"flag"
	"fmt"

	"github.com/annotation-forge/annotator/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagConfig   string
	flagProject  string
	flagDocument string
	flagUser     string
	flagOut      string
}

func (c *Command) Synopsis() string {
	return "Print one annotator's annotations on a document"
}

func (c *Command) Help() string {
	return `Usage: annotator annotations -config=config.hcl -project=ID -doc=ID -user=ID` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("annotations", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to annotator config file")
	f.StringVar(&c.flagProject, "project", "", "(Required) Project ID")
	f.StringVar(&c.flagDocument, "doc", "", "(Required) Document ID")
	f.StringVar(&c.flagUser, "user", "", "(Required) User ID")
	f.StringVar(&c.flagOut, "out", "", "Write the result to this file instead of stdout")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagConfig == "" || c.flagProject == "" || c.flagDocument == "" || c.flagUser == "" {
		ui.Error("config, project, doc and user flags are required")
		return 1
	}

	rt, err := c.LoadRuntime(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer rt.Close()

	items := rt.Annotations.GetUserAnnotations(c.Ctx(), c.flagProject, c.flagDocument, c.flagUser)

	if err := c.WriteResult(items, c.flagOut); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
