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

// --- Add Income Command ---

type addIncomeCmd struct {
	amount   string
	category string
	date     string
	notes    string
}

func (*addIncomeCmd) Name() string     { return "add-income" }
func (*addIncomeCmd) Synopsis() string { return "record an income" }
func (*addIncomeCmd) Usage() string {
	return `fin add-income -a <amount> -c <category> [-d <date>] [-n <notes>]

  Records an income. The category is one of the built-in or custom income
  categories; see 'fin categories'.
`
}

func (c *addIncomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount")
	f.StringVar(&c.category, "c", "", "Income category")
	f.StringVar(&c.date, "d", "0d", "Date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.notes, "n", "", "An optional note")
}

func (c *addIncomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := store.AddIncome(ledger.Income{
		Category: c.category,
		Amount:   amount,
		Date:     day,
		Notes:    c.notes,
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded income of %s (%s) on %s\n", amount.Display(currency(store)), c.category, day)
	return subcommands.ExitSuccess
}

// --- List Income Command ---

type incomeCmd struct {
	month string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "list income records" }
func (*incomeCmd) Usage() string {
	return `fin income [-m <month>]

  Lists income records, optionally restricted to one month.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Only list this month (YYYY-MM)")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	var filter *ledger.Month
	if c.month != "" {
		m, err := ledger.ParseMonth(c.month)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter = &m
	}

	cur := currency(store)
	var b strings.Builder
	var total ledger.Money
	fmt.Fprintf(&b, "| Date | Category | Amount | Notes | ID |\n|---|---|---:|---|---|\n")
	for _, in := range store.Get().Incomes {
		if filter != nil && !filter.Contains(in.Date) {
			continue
		}
		total = total.Add(in.Amount)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", in.Date, in.Category, in.Amount.Display(cur), in.Notes, in.ID)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", total.Display(cur))
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// --- Remove Income Command ---

type rmIncomeCmd struct {
	id string
}

func (*rmIncomeCmd) Name() string     { return "rm-income" }
func (*rmIncomeCmd) Synopsis() string { return "delete an income record" }
func (*rmIncomeCmd) Usage() string {
	return `fin rm-income -id <id>

  Deletes the income record with the given id.
`
}

func (c *rmIncomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Income record id")
}

func (c *rmIncomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteIncome(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted income %s\n", c.id)
	return subcommands.ExitSuccess
}
