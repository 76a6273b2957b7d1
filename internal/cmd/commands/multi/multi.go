package multi

import (
	"flag"
	"fmt"

	"github.com/annotation-forge/annotator/internal/cmd/base"
	"github.com/annotation-forge/annotator/pkg/models"
)

type Command struct {
	*base.Command

	flagConfig   string
	flagProject  string
	flagDocument string
	flagUsers    []string
	flagOut      string
	flagStrict   bool
}

func (c *Command) Synopsis() string {
	return "Collect several annotators' annotations on a document"
}

func (c *Command) Help() string {
	return `Usage: annotator multi -config=config.hcl -project=ID -doc=ID -users=ID,ID,...

  Fetches each user's annotations on the document one after another and
  prints a JSON object keyed by user ID. Every requested user has a key,
  with an empty list when nothing could be fetched.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("multi", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to annotator config file")
	f.StringVar(&c.flagProject, "project", "", "(Required) Project ID")
	f.StringVar(&c.flagDocument, "doc", "", "(Required) Document ID")
	f.StringSliceVar(&c.flagUsers, "users", "(Required) Comma-separated user IDs; may be repeated")
	f.StringVar(&c.flagOut, "out", "", "Write the result to this file instead of stdout")
	f.BoolVar(&c.flagStrict, "strict", false, "Exit non-zero when any user's annotations could not be fetched")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI
	c.flagUsers = nil

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	switch {
	case c.flagConfig == "":
		ui.Error("config flag is required")
		return 1
	case c.flagProject == "":
		ui.Error("project flag is required")
		return 1
	case c.flagDocument == "":
		ui.Error("doc flag is required")
		return 1
	case len(c.flagUsers) == 0:
		ui.Error("users flag is required")
		return 1
	}

	rt, err := c.LoadRuntime(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer rt.Close()

	var (
		result   models.MultiUserAnnotationMap
		fetchErr error
	)
	if c.flagStrict {
		result, fetchErr = rt.Annotations.FetchMultiUserComparisonData(c.Ctx(),
			c.flagProject, c.flagDocument, c.flagUsers)
	} else {
		result = rt.Annotations.GetMultiUserComparisonData(c.Ctx(),
			c.flagProject, c.flagDocument, c.flagUsers)
	}

	c.Log.Info("multi-user fetch complete",
		"project", c.flagProject,
		"document", c.flagDocument,
		"users", result.Users(),
	)

	if err := c.WriteResult(result, c.flagOut); err != nil {
		ui.Error(err.Error())
		return 1
	}
	if fetchErr != nil {
		ui.Error(fmt.Sprintf("error fetching annotations: %v", fetchErr))
		return 2
	}
	return 0
}
