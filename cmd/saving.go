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

// --- Add Saving Command ---

type addSavingCmd struct {
	name string
	typ  string
}

func (*addSavingCmd) Name() string     { return "add-saving" }
func (*addSavingCmd) Synopsis() string { return "create a saving bucket" }
func (*addSavingCmd) Usage() string {
	return `fin add-saving -name <name> [-type <type>]

  Creates a saving bucket (piggy bank, gold, informal savings and the like)
  that deposits can be recorded against.
`
}

func (c *addSavingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Bucket name")
	f.StringVar(&c.typ, "type", string(ledger.OtherSavingT), "Saving type (Daily, Monthly, Piggy bank, Gold, Informal, Other)")
}

func (c *addSavingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.AddOtherSaving(ledger.OtherSaving{
		Name: c.name,
		Type: ledger.SavingType(c.typ),
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Created saving bucket %q\n", c.name)
	return subcommands.ExitSuccess
}

// --- List Savings Command ---

type savingsCmd struct{}

func (*savingsCmd) Name() string     { return "savings" }
func (*savingsCmd) Synopsis() string { return "list saving buckets with their balances" }
func (*savingsCmd) Usage() string {
	return `fin savings

  Lists saving buckets and the sum of their deposits.
`
}

func (c *savingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *savingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	cur := currency(store)

	var b strings.Builder
	fmt.Fprintf(&b, "| Bucket | Type | Deposits | Balance | ID |\n|---|---|---:|---:|---|\n")
	for _, o := range store.Get().OtherSavings {
		var balance ledger.Money
		for _, e := range o.Entries {
			balance = balance.Add(e.Amount)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n", o.Name, o.Type, len(o.Entries), balance.Display(cur), o.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// --- Deposit Command ---

type depositCmd struct {
	id     string
	amount string
	date   string
	notes  string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a deposit into a saving bucket" }
func (*depositCmd) Usage() string {
	return `fin deposit -id <saving> -a <amount> [-d <date>] [-n <notes>]

  Records a deposit into a saving bucket.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Saving bucket id")
	f.StringVar(&c.amount, "a", "", "Deposit amount")
	f.StringVar(&c.date, "d", "0d", "Date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.notes, "n", "", "An optional note")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := store.AddSavingEntry(c.id, ledger.OtherSavingEntry{
		Amount: amount,
		Date:   day,
		Notes:  c.notes,
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Deposited %s\n", amount.Display(currency(store)))
	return subcommands.ExitSuccess
}

// --- Remove Saving Command ---

type rmSavingCmd struct {
	id    string
	entry string
}

func (*rmSavingCmd) Name() string     { return "rm-saving" }
func (*rmSavingCmd) Synopsis() string { return "delete a saving bucket, or one deposit" }
func (*rmSavingCmd) Usage() string {
	return `fin rm-saving -id <saving> [-entry <entry>]

  Without -entry, deletes the whole bucket. With -entry, deletes just that
  deposit.
`
}

func (c *rmSavingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Saving bucket id")
	f.StringVar(&c.entry, "entry", "", "Deposit id to delete")
}

func (c *rmSavingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if c.entry != "" {
		if err := store.DeleteSavingEntry(c.id, c.entry); err != nil {
			return fail(err)
		}
		fmt.Printf("Deleted deposit %s\n", c.entry)
		return subcommands.ExitSuccess
	}
	if err := store.DeleteOtherSaving(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted saving bucket %s\n", c.id)
	return subcommands.ExitSuccess
}
