package discrepancies

import (
	"flag"
	"fmt"

	"github.com/annotation-forge/annotator/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagConfig  string
	flagProject string
	flagStored  bool
	flagOut     string
}

func (c *Command) Synopsis() string {
	return "List annotator discrepancies of a project"
}

func (c *Command) Help() string {
	return `Usage: annotator discrepancies -config=config.hcl -project=ID

  Prints the discrepancies the backend computes for the project, or the
  stored ones with -stored.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("discrepancies", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to annotator config file")
	f.StringVar(&c.flagProject, "project", "", "(Required) Project ID")
	f.BoolVar(&c.flagStored, "stored", false, "List stored discrepancies instead of computing them")
	f.StringVar(&c.flagOut, "out", "", "Write the result to this file instead of stdout")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagConfig == "" {
		ui.Error("config flag is required")
		return 1
	}
	if c.flagProject == "" {
		ui.Error("project flag is required")
		return 1
	}

	rt, err := c.LoadRuntime(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer rt.Close()

	var result any
	if c.flagStored {
		result, err = rt.Discrepancies.GetDiscrepanciesDB(c.Ctx(), c.flagProject)
	} else {
		result, err = rt.Discrepancies.ListDiscrepancies(c.Ctx(), c.flagProject, nil)
	}
	if err != nil {
		ui.Error(fmt.Sprintf("error listing discrepancies: %v", err))
		return 1
	}

	if err := c.WriteResult(result, c.flagOut); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
