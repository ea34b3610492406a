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

// --- Add Reminder Command ---

type addReminderCmd struct {
	title     string
	typ       string
	amount    string
	due       string
	remindOn  string
	frequency string
	notes     string
}

func (*addReminderCmd) Name() string     { return "add-reminder" }
func (*addReminderCmd) Synopsis() string { return "create a payment reminder" }
func (*addReminderCmd) Usage() string {
	return `fin add-reminder -title <title> -due <date> [-f <frequency>] [-a <amount>] [-type <type>] [-remind <date>] [-n <notes>]

  Creates a reminder. Recurring reminders advance by their frequency when
  marked paid; one-time reminders complete instead.
`
}

func (c *addReminderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Reminder title")
	f.StringVar(&c.typ, "type", "Payment", "Reminder type; see 'fin categories'")
	f.StringVar(&c.amount, "a", "0", "Amount, if the payment should be auto-recorded as an expense")
	f.StringVar(&c.due, "due", "", "Due date (YYYY-MM-DD)")
	f.StringVar(&c.remindOn, "remind", "", "Alert date (defaults to the due date)")
	f.StringVar(&c.frequency, "f", string(ledger.Monthly), "Frequency (One-time, Weekly, Monthly, Yearly)")
	f.StringVar(&c.notes, "n", "", "An optional note")
}

func (c *addReminderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.due == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	due, err := ledger.ParseDate(c.due)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing due date: %v\n", err)
		return subcommands.ExitUsageError
	}
	var remindOn ledger.Date
	if c.remindOn != "" {
		remindOn, err = ledger.ParseDate(c.remindOn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing alert date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	amount, err := ledger.ParseMoney(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	frequency, err := ledger.ParseFrequency(c.frequency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing frequency: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.AddReminder(ledger.FinancialReminder{
		Title:        c.title,
		Type:         c.typ,
		Amount:       amount,
		DueDate:      due,
		ReminderDate: remindOn,
		Frequency:    frequency,
		Notes:        c.notes,
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Reminder %q due %s (%s)\n", c.title, due, frequency)
	return subcommands.ExitSuccess
}

// --- List Reminders Command ---

type remindersCmd struct {
	all bool
}

func (*remindersCmd) Name() string     { return "reminders" }
func (*remindersCmd) Synopsis() string { return "list reminders with their due classification" }
func (*remindersCmd) Usage() string {
	return `fin reminders [-all]

  Lists pending reminders classified as overdue, due today or upcoming.
  With -all, completed reminders are included.
`
}

func (c *remindersCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include completed reminders")
}

func (c *remindersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	cur := currency(store)
	today := ledger.Today()

	var b strings.Builder
	fmt.Fprintf(&b, "| Title | Type | Amount | Due | Frequency | State | ID |\n|---|---|---:|---|---|---|---|\n")
	for _, r := range store.Get().Reminders {
		state := string(ledger.ClassifyReminder(r, today))
		if r.IsCompleted {
			if !c.all {
				continue
			}
			state = "completed"
		}
		amount := ""
		if r.Amount.IsPositive() {
			amount = r.Amount.Display(cur)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			r.Title, r.Type, amount, r.DueDate, r.Frequency, state, r.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// --- Pay Reminder Command ---

type payReminderCmd struct {
	id string
}

func (*payReminderCmd) Name() string     { return "pay-reminder" }
func (*payReminderCmd) Synopsis() string { return "mark a reminder as paid" }
func (*payReminderCmd) Usage() string {
	return `fin pay-reminder -id <id>

  Marks the reminder paid. A recurring reminder advances to its next due
  date; a one-time reminder completes. A reminder with an amount also
  records a linked expense.
`
}

func (c *payReminderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Reminder id")
}

func (c *payReminderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.MarkReminderPaid(c.id); err != nil {
		return fail(err)
	}
	fmt.Println("Marked paid")
	return subcommands.ExitSuccess
}

// --- Remove Reminder Command ---

type rmReminderCmd struct {
	id string
}

func (*rmReminderCmd) Name() string     { return "rm-reminder" }
func (*rmReminderCmd) Synopsis() string { return "delete a reminder" }
func (*rmReminderCmd) Usage() string {
	return `fin rm-reminder -id <id>

  Deletes the reminder.
`
}

func (c *rmReminderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Reminder id")
}

func (c *rmReminderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteReminder(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted reminder %s\n", c.id)
	return subcommands.ExitSuccess
}
