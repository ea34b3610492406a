package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type notificationsCmd struct {
	limit int
}

func (*notificationsCmd) Name() string     { return "notifications" }
func (*notificationsCmd) Synopsis() string { return "display the notification history" }
func (*notificationsCmd) Usage() string {
	return `fin notifications [-n <limit>]

  Displays the notification history, most recent first.
`
}

func (c *notificationsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 0, "Show only the most recent N entries")
}

func (c *notificationsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "| When | | Message |\n|---|---|---|\n")
	for i, e := range store.Get().NotificationHistory {
		if c.limit > 0 && i >= c.limit {
			break
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Message)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
