package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// --- Add Category Command ---

type addCategoryCmd struct {
	kind string
}

func (*addCategoryCmd) Name() string     { return "add-category" }
func (*addCategoryCmd) Synopsis() string { return "add a custom category label" }
func (*addCategoryCmd) Usage() string {
	return `fin add-category -kind <income|expense|reminder> <label>...

  Adds custom labels to one of the category lists. Labels already present
  are left alone; the list keeps insertion order.
`
}

func (c *addCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "expense", "Which list to extend: income, expense or reminder")
}

func (c *addCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}

	add := store.AddExpenseCategory
	switch c.kind {
	case "income":
		add = store.AddIncomeCategory
	case "expense":
	case "reminder":
		add = store.AddReminderType
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown kind %q, want income, expense or reminder\n", c.kind)
		return subcommands.ExitUsageError
	}

	for _, label := range f.Args() {
		if err := add(label); err != nil {
			return fail(err)
		}
	}
	fmt.Printf("Added %d %s label(s)\n", f.NArg(), c.kind)
	return subcommands.ExitSuccess
}

// --- Categories Command ---

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list category labels, built-in and custom" }
func (*categoriesCmd) Usage() string {
	return `fin categories

  Lists the income categories, expense categories and reminder types,
  built-ins first, custom labels after.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {}

func (c *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	settings := store.Get().Settings

	var b strings.Builder
	fmt.Fprintf(&b, "# Categories\n\n")
	fmt.Fprintf(&b, "Income: %s\n\n", strings.Join(settings.AllIncomeCategories(), ", "))
	fmt.Fprintf(&b, "Expense: %s\n\n", strings.Join(settings.AllExpenseCategories(), ", "))
	fmt.Fprintf(&b, "Reminder types: %s\n", strings.Join(settings.AllReminderTypes(), ", "))
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
