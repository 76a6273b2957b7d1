package compare

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
	flagUser1    string
	flagUser2    string
	flagOut      string
}

func (c *Command) Synopsis() string {
	return "Compare two annotators' annotations on a document"
}

func (c *Command) Help() string {
	return `Usage: annotator compare -config=config.hcl -project=ID -doc=ID -user1=ID -user2=ID

  Fetches both users' annotations on the document concurrently and prints
  them side by side as {"user1": [...], "user2": [...]}. When neither user
  has annotated the document, the configured fallback users are compared
  instead.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("compare", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to annotator config file")
	f.StringVar(&c.flagProject, "project", "", "(Required) Project ID")
	f.StringVar(&c.flagDocument, "doc", "", "(Required) Document ID")
	f.StringVar(&c.flagUser1, "user1", "", "(Required) First user ID")
	f.StringVar(&c.flagUser2, "user2", "", "(Required) Second user ID")
	f.StringVar(&c.flagOut, "out", "", "Write the result to this file instead of stdout")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

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
	case c.flagUser1 == "" || c.flagUser2 == "":
		ui.Error("user1 and user2 flags are required")
		return 1
	}

	rt, err := c.LoadRuntime(c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer rt.Close()

	result := rt.Annotations.GetComparisonData(c.Ctx(),
		c.flagProject, c.flagDocument, c.flagUser1, c.flagUser2)

	c.Log.Info("comparison complete",
		"project", c.flagProject,
		"document", c.flagDocument,
		"user1", len(result.User1),
		"user2", len(result.User2),
	)

	if err := c.WriteResult(result, c.flagOut); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
