package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	ledger "github.com/collegecrush44-collab/local-ledger"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	month string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the dashboard summary for a month" }
func (*summaryCmd) Usage() string {
	return `fin summary [-m <month>]

  Displays the month's income, expenses, remaining balance, EMIs due and
  pending reminders, plus the running position of loans, debts, chit funds
  and savings.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", ledger.Today().MonthOf().Key(), "Month to summarize (YYYY-MM)")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := ledger.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	snap := store.Get()
	today := ledger.Today()
	cur := currency(store)
	sum := ledger.NewMonthlySummary(snap, month, today)

	var b strings.Builder
	fmt.Fprintf(&b, "# Summary for %s\n\n", month)
	fmt.Fprintf(&b, "| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Income | %s |\n", sum.Income.Display(cur))
	fmt.Fprintf(&b, "| Expenses | %s |\n", sum.Expenses.Display(cur))
	fmt.Fprintf(&b, "| Remaining balance | %s |\n", sum.RemainingBalance.Display(cur))
	fmt.Fprintf(&b, "| EMIs due | %s |\n", sum.EMIsDue.Display(cur))
	fmt.Fprintf(&b, "| Due reminders | %d |\n", sum.DueReminders)

	if len(snap.Loans) > 0 {
		fmt.Fprintf(&b, "\n## Loans\n\n| Loan | Progress | Remaining |\n|---|---:|---:|\n")
		for _, l := range snap.Loans {
			status := ledger.NewLoanStatus(l, today)
			fmt.Fprintf(&b, "| %s | %s | %s |\n", l.Name, status.Progress, status.RemainingBalance.Display(cur))
		}
	}
	if len(snap.Borrowed) > 0 {
		fmt.Fprintf(&b, "\n## Borrowed\n\n| Person | Paid | Remaining |\n|---|---:|---:|\n")
		for _, d := range snap.Borrowed {
			status := ledger.NewDebtStatus(d)
			fmt.Fprintf(&b, "| %s | %s | %s |\n", d.PersonName, status.PaidTillDate.Display(cur), status.RemainingBalance.Display(cur))
		}
	}
	if len(snap.ChitFunds) > 0 {
		fmt.Fprintf(&b, "\n## Chit funds\n\n| Fund | Paid | Net |\n|---|---:|---:|\n")
		for _, cf := range snap.ChitFunds {
			status := ledger.NewChitStatus(cf)
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cf.Name, status.TotalPaid.Display(cur), status.Net.Display(cur))
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
