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

// --- Add Chit Fund Command ---

type addChitCmd struct {
	name         string
	total        string
	contribution string
	months       int
	day          int
	start        string
}

func (*addChitCmd) Name() string     { return "add-chit" }
func (*addChitCmd) Synopsis() string { return "track a new chit fund" }
func (*addChitCmd) Usage() string {
	return `fin add-chit -name <name> -total <amount> -c <contribution> -months <n> -day <day> [-start <date>]

  Tracks a rotating-savings chit fund: a fixed monthly contribution toward a
  maturity goal, drawn once a month on the chit day.
`
}

func (c *addChitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Fund name")
	f.StringVar(&c.total, "total", "", "Total chit value (maturity goal)")
	f.StringVar(&c.contribution, "c", "", "Monthly contribution")
	f.IntVar(&c.months, "months", 0, "Total months the fund runs")
	f.IntVar(&c.day, "day", 0, "Chit day of month (1-31)")
	f.StringVar(&c.start, "start", "0d", "Start date (YYYY-MM-DD, defaults to today)")
}

func (c *addChitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	total, err := ledger.ParseMoney(c.total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing total: %v\n", err)
		return subcommands.ExitUsageError
	}
	contribution, err := ledger.ParseMoney(c.contribution)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing contribution: %v\n", err)
		return subcommands.ExitUsageError
	}
	start, err := ledger.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.AddChitFund(ledger.ChitFund{
		Name:                c.name,
		TotalChitAmount:     total,
		MonthlyContribution: contribution,
		TotalMonths:         c.months,
		ChitDay:             c.day,
		StartDate:           start,
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Tracking chit fund %q: %d months of %s toward %s\n",
		c.name, c.months, contribution.Display(currency(store)), total.Display(currency(store)))
	return subcommands.ExitSuccess
}

// --- List Chit Funds Command ---

type chitsCmd struct {
	id string
}

func (*chitsCmd) Name() string     { return "chits" }
func (*chitsCmd) Synopsis() string { return "list chit funds, or one fund's monthly schedule" }
func (*chitsCmd) Usage() string {
	return `fin chits [-id <fund>]

  Without -id, lists chit funds with their aggregate position. With -id,
  displays the fund's month-by-month schedule.
`
}

func (c *chitsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Show this fund's schedule")
}

func (c *chitsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	cur := currency(store)
	var b strings.Builder

	if c.id != "" {
		for _, fund := range store.Get().ChitFunds {
			if fund.ID != c.id {
				continue
			}
			fmt.Fprintf(&b, "# %s\n\n| # | Month | Draw | Paid | Received | Taken | |\n|---:|---|---|---:|---:|---|---|\n", fund.Name)
			for _, slot := range ledger.ChitSchedule(fund, ledger.Today()) {
				paid, received, taken := "", "", ""
				if slot.Entry != nil {
					paid = slot.Entry.AmountPaid.Display(cur)
					received = slot.Entry.AmountReceived.Display(cur)
					if slot.Entry.IsTaken {
						taken = "taken"
					}
				}
				fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
					slot.Index+1, slot.Month, slot.Draw, paid, received, taken, slot.Class)
			}
			printMarkdown(b.String())
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: no chit fund with id %q\n", c.id)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(&b, "| Fund | Goal | Paid | Received | Net | ID |\n|---|---:|---:|---:|---:|---|\n")
	for _, fund := range store.Get().ChitFunds {
		status := ledger.NewChitStatus(fund)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			fund.Name, fund.TotalChitAmount.Display(cur),
			status.TotalPaid.Display(cur), status.TotalReceived.Display(cur),
			status.Net.Display(cur), fund.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// --- Chit Entry Command ---

type chitEntryCmd struct {
	id       string
	date     string
	paid     string
	received string
	taken    bool
	takenBy  string
	notes    string
}

func (*chitEntryCmd) Name() string     { return "chit-entry" }
func (*chitEntryCmd) Synopsis() string { return "record or replace a chit fund month's entry" }
func (*chitEntryCmd) Usage() string {
	return `fin chit-entry -id <fund> -paid <amount> [-d <date>] [-received <amount>] [-taken] [-by <who>] [-n <notes>]

  Records the entry for the month of the given date. A month that already
  has an entry is replaced; future months are rejected.
`
}

func (c *chitEntryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Fund id")
	f.StringVar(&c.date, "d", "0d", "Date inside the target month (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.paid, "paid", "", "Contribution paid this month")
	f.StringVar(&c.received, "received", "0", "Amount received, if the fund was drawn")
	f.BoolVar(&c.taken, "taken", false, "The fund was drawn this month")
	f.StringVar(&c.takenBy, "by", "", "Who drew the fund")
	f.StringVar(&c.notes, "n", "", "An optional note")
}

func (c *chitEntryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	paid, err := ledger.ParseMoney(c.paid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing paid amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	received, err := ledger.ParseMoney(c.received)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing received amount: %v\n", err)
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
	if err := store.PutChitEntry(c.id, ledger.ChitFundEntry{
		Date:           day,
		AmountPaid:     paid,
		AmountReceived: received,
		IsTaken:        c.taken,
		TakenBy:        c.takenBy,
		Notes:          c.notes,
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded entry for %s\n", day.MonthOf())
	return subcommands.ExitSuccess
}

// --- Remove Chit Fund Command ---

type rmChitCmd struct {
	id    string
	entry string
}

func (*rmChitCmd) Name() string     { return "rm-chit" }
func (*rmChitCmd) Synopsis() string { return "delete a chit fund, or one of its entries" }
func (*rmChitCmd) Usage() string {
	return `fin rm-chit -id <fund> [-entry <entry>]

  Without -entry, deletes the whole fund. With -entry, deletes just that
  month's entry.
`
}

func (c *rmChitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Fund id")
	f.StringVar(&c.entry, "entry", "", "Entry id to delete")
}

func (c *rmChitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if c.entry != "" {
		if err := store.DeleteChitEntry(c.id, c.entry); err != nil {
			return fail(err)
		}
		fmt.Printf("Deleted entry %s\n", c.entry)
		return subcommands.ExitSuccess
	}
	if err := store.DeleteChitFund(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted chit fund %s\n", c.id)
	return subcommands.ExitSuccess
}
