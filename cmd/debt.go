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

// --- Add Debt Command ---

type addDebtCmd struct {
	person string
	total  string
	start  string
	notes  string
}

func (*addDebtCmd) Name() string     { return "add-debt" }
func (*addDebtCmd) Synopsis() string { return "track money borrowed from a person" }
func (*addDebtCmd) Usage() string {
	return `fin add-debt -person <name> -total <amount> [-start <date>] [-n <notes>]

  Tracks an informal debt owed to a person.
`
}

func (c *addDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.person, "person", "", "Lender's name")
	f.StringVar(&c.total, "total", "", "Total amount owed")
	f.StringVar(&c.start, "start", "0d", "Date borrowed (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.notes, "n", "", "An optional note")
}

func (c *addDebtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	total, err := ledger.ParseMoney(c.total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	start, err := ledger.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.AddBorrowed(ledger.BorrowedMoney{
		PersonName:  c.person,
		TotalAmount: total,
		StartDate:   start,
		Notes:       c.notes,
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Tracking %s owed to %s\n", total.Display(currency(store)), c.person)
	return subcommands.ExitSuccess
}

// --- List Debts Command ---

type debtsCmd struct{}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "list borrowed money with repayment progress" }
func (*debtsCmd) Usage() string {
	return `fin debts

  Lists informal debts with their derived repayment status.
`
}

func (c *debtsCmd) SetFlags(f *flag.FlagSet) {}

func (c *debtsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	cur := currency(store)

	var b strings.Builder
	fmt.Fprintf(&b, "| Person | Owed | Paid | Remaining | Progress | ID |\n|---|---:|---:|---:|---:|---|\n")
	for _, d := range store.Get().Borrowed {
		status := ledger.NewDebtStatus(d)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			d.PersonName, d.TotalAmount.Display(cur),
			status.PaidTillDate.Display(cur), status.RemainingBalance.Display(cur),
			status.Progress, d.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// --- Pay Debt Command ---

type payDebtCmd struct {
	id     string
	amount string
	date   string
}

func (*payDebtCmd) Name() string     { return "pay-debt" }
func (*payDebtCmd) Synopsis() string { return "record a repayment against a debt" }
func (*payDebtCmd) Usage() string {
	return `fin pay-debt -id <debt> -a <amount> [-d <date>]

  Records a repayment. Paying more than the remaining balance is rejected;
  paying it off exactly settles the debt.
`
}

func (c *payDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Debt id")
	f.StringVar(&c.amount, "a", "", "Repayment amount")
	f.StringVar(&c.date, "d", "0d", "Date (YYYY-MM-DD, defaults to today)")
}

func (c *payDebtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := ledger.ParseMoney(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	day, err := ledger.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.AddDebtPayment(c.id, ledger.Payment{Amount: amount, Date: day}); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded repayment of %s\n", amount.Display(currency(store)))
	return subcommands.ExitSuccess
}

// --- Remove Debt Command ---

type rmDebtCmd struct {
	id string
}

func (*rmDebtCmd) Name() string     { return "rm-debt" }
func (*rmDebtCmd) Synopsis() string { return "stop tracking a debt" }
func (*rmDebtCmd) Usage() string {
	return `fin rm-debt -id <id>

  Deletes the debt and its payment history.
`
}

func (c *rmDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Debt id")
}

func (c *rmDebtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteBorrowed(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted debt %s\n", c.id)
	return subcommands.ExitSuccess
}
