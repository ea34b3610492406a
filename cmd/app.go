// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	ledger "github.com/collegecrush44-collab/local-ledger"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&notificationsCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")

	c.Register(&addIncomeCmd{}, "records")
	c.Register(&incomeCmd{}, "records")
	c.Register(&rmIncomeCmd{}, "records")
	c.Register(&addExpenseCmd{}, "records")
	c.Register(&expenseCmd{}, "records")
	c.Register(&rmExpenseCmd{}, "records")

	c.Register(&addLoanCmd{}, "loans")
	c.Register(&loansCmd{}, "loans")
	c.Register(&timelineCmd{}, "loans")
	c.Register(&payEMICmd{}, "loans")
	c.Register(&unpayEMICmd{}, "loans")
	c.Register(&rmLoanCmd{}, "loans")

	c.Register(&addDebtCmd{}, "debts")
	c.Register(&debtsCmd{}, "debts")
	c.Register(&payDebtCmd{}, "debts")
	c.Register(&rmDebtCmd{}, "debts")

	c.Register(&addChitCmd{}, "chit funds")
	c.Register(&chitsCmd{}, "chit funds")
	c.Register(&chitEntryCmd{}, "chit funds")
	c.Register(&rmChitCmd{}, "chit funds")

	c.Register(&addSavingCmd{}, "savings")
	c.Register(&savingsCmd{}, "savings")
	c.Register(&depositCmd{}, "savings")
	c.Register(&rmSavingCmd{}, "savings")

	c.Register(&addReminderCmd{}, "reminders")
	c.Register(&remindersCmd{}, "reminders")
	c.Register(&payReminderCmd{}, "reminders")
	c.Register(&rmReminderCmd{}, "reminders")

	c.Register(&addCategoryCmd{}, "settings")
	c.Register(&categoriesCmd{}, "settings")

	c.Register(&exportCmd{}, "backup")
	c.Register(&importCmd{}, "backup")
	c.Register(&resetCmd{}, "backup")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataFile = flag.String("data-file", "ledger.json", "Path to the ledger snapshot file (JSON format)")

// openStore is the central function to open the ledger store backed by the
// app data file.
func openStore() (*ledger.Store, error) {
	return ledger.Open(ledger.NewFileStore(*dataFile))
}

// currency returns the display currency configured in the store's settings.
func currency(s *ledger.Store) string { return s.Get().Settings.Currency }

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer is unavailable.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// fail prints the error and maps it to an exit status: validation errors are
// usage errors, everything else is a failure.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	if _, ok := err.(*ledger.ValidationError); ok {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
