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

// --- Add Expense Command ---

type addExpenseCmd struct {
	amount   string
	category string
	date     string
	notes    string
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an expense" }
func (*addExpenseCmd) Usage() string {
	return `fin add-expense -a <amount> -c <category> [-d <date>] [-n <notes>]

  Records an expense. The category is one of the built-in or custom expense
  categories; see 'fin categories'.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount")
	f.StringVar(&c.category, "c", "", "Expense category")
	f.StringVar(&c.date, "d", "0d", "Date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.notes, "n", "", "An optional note")
}

func (c *addExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := store.AddExpense(ledger.Expense{
		Category: c.category,
		Amount:   amount,
		Date:     day,
		Notes:    c.notes,
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded expense of %s (%s) on %s\n", amount.Display(currency(store)), c.category, day)
	return subcommands.ExitSuccess
}

// --- List Expense Command ---

type expenseCmd struct {
	month    string
	category string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "list expense records" }
func (*expenseCmd) Usage() string {
	return `fin expense [-m <month>] [-c <category>]

  Lists expense records, optionally restricted to one month or category.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Only list this month (YYYY-MM)")
	f.StringVar(&c.category, "c", "", "Only list this category")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	for _, e := range store.Get().Expenses {
		if filter != nil && !filter.Contains(e.Date) {
			continue
		}
		if c.category != "" && e.Category != c.category {
			continue
		}
		total = total.Add(e.Amount)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", e.Date, e.Category, e.Amount.Display(cur), e.Notes, e.ID)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", total.Display(cur))
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// --- Remove Expense Command ---

type rmExpenseCmd struct {
	id string
}

func (*rmExpenseCmd) Name() string     { return "rm-expense" }
func (*rmExpenseCmd) Synopsis() string { return "delete an expense record" }
func (*rmExpenseCmd) Usage() string {
	return `fin rm-expense -id <id>

  Deletes the expense record with the given id.
`
}

func (c *rmExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Expense record id")
}

func (c *rmExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteExpense(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted expense %s\n", c.id)
	return subcommands.ExitSuccess
}
