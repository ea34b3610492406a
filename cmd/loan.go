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

// --- Add Loan Command ---

type addLoanCmd struct {
	name   string
	typ    string
	total  string
	emi    string
	tenure int
	dueDay int
	start  string
	notes  string
}

func (*addLoanCmd) Name() string     { return "add-loan" }
func (*addLoanCmd) Synopsis() string { return "track a new loan" }
func (*addLoanCmd) Usage() string {
	return `fin add-loan -name <name> -emi <amount> -tenure <months> -due <day> [-start <date>] [-type <type>] [-total <principal>] [-n <notes>]

  Tracks a new loan. The amortization timeline runs from the start month for
  the tenure, each month anchored to the due day.
`
}

func (c *addLoanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Loan name")
	f.StringVar(&c.typ, "type", string(ledger.PersonalLoan), "Loan type (Personal, Vehicle, Home, Education, Other)")
	f.StringVar(&c.total, "total", "0", "Principal amount")
	f.StringVar(&c.emi, "emi", "0", "Monthly EMI amount")
	f.IntVar(&c.tenure, "tenure", 0, "Tenure in months")
	f.IntVar(&c.dueDay, "due", 0, "Due day of month (1-31)")
	f.StringVar(&c.start, "start", "0d", "Start date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.notes, "n", "", "An optional note")
}

func (c *addLoanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	total, err := ledger.ParseMoney(c.total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing principal: %v\n", err)
		return subcommands.ExitUsageError
	}
	emi, err := ledger.ParseMoney(c.emi)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing EMI: %v\n", err)
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
	if err := store.AddLoan(ledger.Loan{
		Name:        c.name,
		Type:        ledger.LoanType(c.typ),
		TotalAmount: total,
		EMIAmount:   emi,
		TenureMonth: c.tenure,
		DueDay:      c.dueDay,
		StartDate:   start,
		Notes:       c.notes,
	}); err != nil {
		return fail(err)
	}
	fmt.Printf("Tracking loan %q: %d EMIs of %s due on day %d\n", c.name, c.tenure, emi.Display(currency(store)), c.dueDay)
	return subcommands.ExitSuccess
}

// --- List Loans Command ---

type loansCmd struct{}

func (*loansCmd) Name() string     { return "loans" }
func (*loansCmd) Synopsis() string { return "list loans with their repayment progress" }
func (*loansCmd) Usage() string {
	return `fin loans

  Lists tracked loans with their derived repayment status.
`
}

func (c *loansCmd) SetFlags(f *flag.FlagSet) {}

func (c *loansCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	cur := currency(store)
	today := ledger.Today()

	var b strings.Builder
	fmt.Fprintf(&b, "| Loan | Type | EMI | Paid | Remaining | Progress | State | ID |\n|---|---|---:|---:|---:|---:|---|---|\n")
	for _, l := range store.Get().Loans {
		status := ledger.NewLoanStatus(l, today)
		state := "running"
		switch {
		case status.IsCompleted:
			state = "completed"
		case status.IsPastTenure:
			state = "past tenure"
		case status.IsCurrentPaid:
			state = "current paid"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d/%d | %s | %s | %s | %s |\n",
			l.Name, l.Type, l.EMIAmount.Display(cur),
			status.PaidMonths, l.TenureMonth,
			status.RemainingBalance.Display(cur), status.Progress, state, l.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// --- Timeline Command ---

type timelineCmd struct {
	id string
}

func (*timelineCmd) Name() string     { return "timeline" }
func (*timelineCmd) Synopsis() string { return "display a loan's month-by-month amortization timeline" }
func (*timelineCmd) Usage() string {
	return `fin timeline -id <loan>

  Displays the loan's amortization timeline: one row per tenure month with
  its due date, paid state and past/current/future classification.
`
}

func (c *timelineCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Loan id")
}

func (c *timelineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	loan, ok := findLoan(store, c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no loan with id %q\n", c.id)
		return subcommands.ExitFailure
	}

	cur := currency(store)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n| # | Month | Due | Paid | |\n|---:|---|---|---|---|\n", loan.Name)
	for _, t := range ledger.LoanTimeline(loan, ledger.Today()) {
		paid := ""
		if t.IsPaid {
			paid = "paid"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", t.Index+1, t.Month, t.Due, paid, t.Class)
	}
	status := ledger.NewLoanStatus(loan, ledger.Today())
	fmt.Fprintf(&b, "\n%s paid, %s remaining (%s)\n",
		status.TotalPaid.Display(cur), status.RemainingBalance.Display(cur), status.Progress)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

func findLoan(store *ledger.Store, id string) (ledger.Loan, bool) {
	for _, l := range store.Get().Loans {
		if l.ID == id {
			return l, true
		}
	}
	return ledger.Loan{}, false
}

// --- Pay EMI Command ---

type payEMICmd struct {
	id    string
	month string
}

func (*payEMICmd) Name() string     { return "pay-emi" }
func (*payEMICmd) Synopsis() string { return "mark a loan month's EMI as paid" }
func (*payEMICmd) Usage() string {
	return `fin pay-emi -id <loan> [-m <month>]

  Marks the month's EMI paid. A linked expense is recorded automatically;
  repeating the command for an already-paid month changes nothing.
`
}

func (c *payEMICmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Loan id")
	f.StringVar(&c.month, "m", ledger.Today().MonthOf().Key(), "Timeline month (YYYY-MM)")
}

func (c *payEMICmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	month, err := ledger.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.PayLoanMonth(c.id, month); err != nil {
		return fail(err)
	}
	fmt.Printf("Marked %s paid\n", month)
	return subcommands.ExitSuccess
}

// --- Unpay EMI Command ---

type unpayEMICmd struct {
	id    string
	month string
}

func (*unpayEMICmd) Name() string     { return "unpay-emi" }
func (*unpayEMICmd) Synopsis() string { return "revert a loan month's EMI to unpaid" }
func (*unpayEMICmd) Usage() string {
	return `fin unpay-emi -id <loan> [-m <month>]

  Reverts the month to unpaid by removing its payments from the history.
`
}

func (c *unpayEMICmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Loan id")
	f.StringVar(&c.month, "m", ledger.Today().MonthOf().Key(), "Timeline month (YYYY-MM)")
}

func (c *unpayEMICmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	month, err := ledger.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.UnpayLoanMonth(c.id, month); err != nil {
		return fail(err)
	}
	fmt.Printf("Reverted %s to unpaid\n", month)
	return subcommands.ExitSuccess
}

// --- Remove Loan Command ---

type rmLoanCmd struct {
	id string
}

func (*rmLoanCmd) Name() string     { return "rm-loan" }
func (*rmLoanCmd) Synopsis() string { return "stop tracking a loan" }
func (*rmLoanCmd) Usage() string {
	return `fin rm-loan -id <id>

  Deletes the loan and its payment history. Linked expenses already
  recorded are kept.
`
}

func (c *rmLoanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Loan id")
}

func (c *rmLoanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.DeleteLoan(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted loan %s\n", c.id)
	return subcommands.ExitSuccess
}
