package ledger

import (
	"fmt"
	"io"
	"log"
	"time"
)

// Store holds the in-memory snapshot, the single mutable source of truth.
//
// Every mutation is a pure transform applied to a clone of the snapshot:
// when the transform fails the held snapshot is untouched and the error
// propagates; when it succeeds the linked-transaction side effects run over
// the (previous, next) pair, the clone is installed, and exactly one
// persistence write is issued. Persistence failures are logged and non-fatal
// because the in-memory state stays authoritative until the next write.
//
// The Store assumes a single logical thread of execution: one active session
// mutates the ledger and serializes its calls.
type Store struct {
	snapshot  *Snapshot
	persister Persister
}

// Open hydrates a store from the persister, or initializes the default
// snapshot when none is stored yet.
func Open(p Persister) (*Store, error) {
	s, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("could not hydrate ledger: %w", err)
	}
	if s == nil {
		s = NewSnapshot()
	}
	return &Store{snapshot: s, persister: p}, nil
}

// Get returns the current snapshot. Callers must treat it as immutable and
// go through the named mutation operations for any change.
func (s *Store) Get() *Snapshot { return s.snapshot }

// mutate applies fn to a clone of the snapshot. On success it runs the
// side-effect processor over previous and next, installs next, and schedules
// exactly one persistence write.
func (s *Store) mutate(fn func(*Snapshot) error) error {
	next := s.snapshot.Clone()
	if err := fn(next); err != nil {
		return err
	}
	applyLinkedEffects(s.snapshot, next, time.Now())
	s.install(next)
	return nil
}

// install replaces the snapshot and issues the write-through. A failed save
// must not roll back the in-memory mutation; the next save carries the full
// current snapshot anyway.
func (s *Store) install(next *Snapshot) {
	s.snapshot = next
	if err := s.persister.Save(next); err != nil {
		log.Printf("warning: could not persist snapshot: %v (kept in memory, retried on next write)", err)
	}
}

// --- Profile and settings ---

// SetProfile replaces the user profile.
func (s *Store) SetProfile(p Profile) error {
	return s.mutate(func(next *Snapshot) error {
		next.Profile = p
		return nil
	})
}

// UpdateSettings replaces the settings wholesale. The custom label lists are
// re-deduplicated to preserve the ordered-set invariant whatever the caller
// supplied.
func (s *Store) UpdateSettings(st Settings) error {
	return s.mutate(func(next *Snapshot) error {
		st.CustomIncomeCategories = dedupLabels(st.CustomIncomeCategories)
		st.CustomExpenseCategories = dedupLabels(st.CustomExpenseCategories)
		st.CustomReminderTypes = dedupLabels(st.CustomReminderTypes)
		next.Settings = st
		next.normalize()
		return nil
	})
}

// AddIncomeCategory adds a custom income category label; a no-op if present.
func (s *Store) AddIncomeCategory(label string) error {
	if err := requireText("category", label); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		next.Settings.CustomIncomeCategories = addLabel(next.Settings.CustomIncomeCategories, label)
		return nil
	})
}

// AddExpenseCategory adds a custom expense category label; a no-op if present.
func (s *Store) AddExpenseCategory(label string) error {
	if err := requireText("category", label); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		next.Settings.CustomExpenseCategories = addLabel(next.Settings.CustomExpenseCategories, label)
		return nil
	})
}

// AddReminderType adds a custom reminder type label; a no-op if present.
func (s *Store) AddReminderType(label string) error {
	if err := requireText("type", label); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		next.Settings.CustomReminderTypes = addLabel(next.Settings.CustomReminderTypes, label)
		return nil
	})
}

// --- Income ---

func validateIncome(in Income) error {
	if err := requireAmount("income amount", in.Amount); err != nil {
		return err
	}
	if err := requireText("income category", in.Category); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return invalidf("income date is required")
	}
	return nil
}

// AddIncome appends an income record with a fresh id.
func (s *Store) AddIncome(in Income) error {
	if err := validateIncome(in); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		in.ID = NewID()
		in.LastUpdated = time.Now()
		next.Incomes = append(next.Incomes, in)
		return nil
	})
}

// UpdateIncome replaces the income with the given id. The caller supplies
// the full replacement; there is no partial patch.
func (s *Store) UpdateIncome(id string, in Income) error {
	if err := validateIncome(in); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Incomes {
			if next.Incomes[i].ID == id {
				in.ID = id
				in.LastUpdated = time.Now()
				next.Incomes[i] = in
				return nil
			}
		}
		return invalidf("no income with id %q", id)
	})
}

// DeleteIncome removes the income with the given id.
func (s *Store) DeleteIncome(id string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Incomes {
			if next.Incomes[i].ID == id {
				next.Incomes = append(next.Incomes[:i], next.Incomes[i+1:]...)
				return nil
			}
		}
		return invalidf("no income with id %q", id)
	})
}

// --- Expense ---

func validateExpense(e Expense) error {
	if err := requireAmount("expense amount", e.Amount); err != nil {
		return err
	}
	if err := requireText("expense category", e.Category); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return invalidf("expense date is required")
	}
	return nil
}

// AddExpense appends an expense record with a fresh id.
func (s *Store) AddExpense(e Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		e.ID = NewID()
		next.Expenses = append(next.Expenses, e)
		return nil
	})
}

// UpdateExpense replaces the expense with the given id.
func (s *Store) UpdateExpense(id string, e Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Expenses {
			if next.Expenses[i].ID == id {
				e.ID = id
				next.Expenses[i] = e
				return nil
			}
		}
		return invalidf("no expense with id %q", id)
	})
}

// DeleteExpense removes the expense with the given id.
func (s *Store) DeleteExpense(id string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Expenses {
			if next.Expenses[i].ID == id {
				next.Expenses = append(next.Expenses[:i], next.Expenses[i+1:]...)
				return nil
			}
		}
		return invalidf("no expense with id %q", id)
	})
}

// --- Loan ---

func validateLoan(l Loan) error {
	if err := requireText("loan name", l.Name); err != nil {
		return err
	}
	if err := requireDay("due day", l.DueDay); err != nil {
		return err
	}
	if l.StartDate.IsZero() {
		return invalidf("loan start date is required")
	}
	if l.TenureMonth < 0 {
		return invalidf("loan tenure cannot be negative, got %d", l.TenureMonth)
	}
	// Zero EMI and zero tenure are tolerated data-entry states: they must
	// still render (as 0% progress), not fail.
	if l.EMIAmount.IsNegative() || l.TotalAmount.IsNegative() {
		return invalidf("loan amounts cannot be negative")
	}
	return nil
}

// AddLoan appends a loan with a fresh id, an empty payment history, and the
// end date computed from start date and tenure.
func (s *Store) AddLoan(l Loan) error {
	if err := validateLoan(l); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		l.ID = NewID()
		l.Payments = []LoanPayment{}
		l.EndDate = loanEndDate(l)
		next.Loans = append(next.Loans, l)
		return nil
	})
}

// UpdateLoan replaces the loan with the given id and recomputes its end
// date. The payment history is whatever the caller supplied, in full.
func (s *Store) UpdateLoan(id string, l Loan) error {
	if err := validateLoan(l); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Loans {
			if next.Loans[i].ID == id {
				l.ID = id
				if l.Payments == nil {
					l.Payments = []LoanPayment{}
				}
				l.EndDate = loanEndDate(l)
				next.Loans[i] = l
				return nil
			}
		}
		return invalidf("no loan with id %q", id)
	})
}

// DeleteLoan removes the loan with the given id.
func (s *Store) DeleteLoan(id string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Loans {
			if next.Loans[i].ID == id {
				next.Loans = append(next.Loans[:i], next.Loans[i+1:]...)
				return nil
			}
		}
		return invalidf("no loan with id %q", id)
	})
}

// loanOp runs an edit against the loan with the given id.
func (s *Store) loanOp(loanID string, op func(*Loan) error) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Loans {
			if next.Loans[i].ID == loanID {
				return op(&next.Loans[i])
			}
		}
		return invalidf("no loan with id %q", loanID)
	})
}

// PayLoanMonth marks a timeline month paid. A month already paid is a
// no-op, so repeating the call never duplicates the payment or re-fires the
// linked expense.
func (s *Store) PayLoanMonth(loanID string, m Month) error {
	return s.loanOp(loanID, func(l *Loan) error { return payMonth(l, m) })
}

// UnpayLoanMonth reverts a timeline month to unpaid by removing its
// payments.
func (s *Store) UnpayLoanMonth(loanID string, m Month) error {
	return s.loanOp(loanID, func(l *Loan) error { return unpayMonth(l, m) })
}

// ToggleLoanMonth flips the paid state of one timeline month. Toggling
// twice restores the original state.
func (s *Store) ToggleLoanMonth(loanID string, m Month) error {
	return s.loanOp(loanID, func(l *Loan) error { return togglePayment(l, m) })
}

// --- Borrowed money ---

func validateBorrowed(b BorrowedMoney) error {
	if err := requireText("person name", b.PersonName); err != nil {
		return err
	}
	if err := requireAmount("total owed", b.TotalAmount); err != nil {
		return err
	}
	if sumPayments(b.Payments).GreaterThan(b.TotalAmount) {
		return invalidf("payments of %s exceed the total owed of %s", sumPayments(b.Payments), b.TotalAmount)
	}
	return nil
}

// AddBorrowed appends an informal debt with a fresh id. Pre-seeded payments
// get ids of their own and the totalPaid cache is computed from them.
func (s *Store) AddBorrowed(b BorrowedMoney) error {
	if err := validateBorrowed(b); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		b.ID = NewID()
		if b.Payments == nil {
			b.Payments = []Payment{}
		}
		for i := range b.Payments {
			if b.Payments[i].ID == "" {
				b.Payments[i].ID = NewID()
			}
		}
		b.TotalPaid = sumPayments(b.Payments)
		next.Borrowed = append(next.Borrowed, b)
		return nil
	})
}

// UpdateBorrowed replaces the debt with the given id. The totalPaid cache is
// recomputed from the supplied payment list, never taken from the caller.
func (s *Store) UpdateBorrowed(id string, b BorrowedMoney) error {
	if err := validateBorrowed(b); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Borrowed {
			if next.Borrowed[i].ID == id {
				b.ID = id
				if b.Payments == nil {
					b.Payments = []Payment{}
				}
				b.TotalPaid = sumPayments(b.Payments)
				next.Borrowed[i] = b
				return nil
			}
		}
		return invalidf("no borrowed record with id %q", id)
	})
}

// DeleteBorrowed removes the debt with the given id.
func (s *Store) DeleteBorrowed(id string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Borrowed {
			if next.Borrowed[i].ID == id {
				next.Borrowed = append(next.Borrowed[:i], next.Borrowed[i+1:]...)
				return nil
			}
		}
		return invalidf("no borrowed record with id %q", id)
	})
}

// AddDebtPayment records a repayment against a debt. Overpaying beyond the
// total owed is rejected before any mutation; exact completion is accepted.
func (s *Store) AddDebtPayment(debtID string, p Payment) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Borrowed {
			if next.Borrowed[i].ID == debtID {
				p.ID = NewID()
				if p.Date.IsZero() {
					p.Date = Today()
				}
				return recordDebtPayment(&next.Borrowed[i], p)
			}
		}
		return invalidf("no borrowed record with id %q", debtID)
	})
}

// --- Chit funds ---

func validateChitFund(c ChitFund) error {
	if err := requireText("chit fund name", c.Name); err != nil {
		return err
	}
	if err := requireAmount("maturity goal", c.TotalChitAmount); err != nil {
		return err
	}
	if err := requireAmount("monthly contribution", c.MonthlyContribution); err != nil {
		return err
	}
	if c.MonthlyContribution.GreaterThan(c.TotalChitAmount) {
		return invalidf("monthly contribution of %s cannot exceed the maturity goal of %s",
			c.MonthlyContribution, c.TotalChitAmount)
	}
	if err := requireDay("chit day", c.ChitDay); err != nil {
		return err
	}
	if c.TotalMonths <= 0 {
		return invalidf("chit fund must run for at least one month, got %d", c.TotalMonths)
	}
	if c.StartDate.IsZero() {
		return invalidf("chit fund start date is required")
	}
	// At most one entry per calendar month, whatever entry list the caller
	// supplied.
	months := make(map[string]bool, len(c.Entries))
	for _, e := range c.Entries {
		key := e.Date.MonthOf().Key()
		if months[key] {
			return invalidf("chit fund has more than one entry in month %s", key)
		}
		months[key] = true
	}
	return nil
}

// AddChitFund appends a chit fund with a fresh id and no entries.
func (s *Store) AddChitFund(c ChitFund) error {
	if err := validateChitFund(c); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		c.ID = NewID()
		c.Entries = []ChitFundEntry{}
		next.ChitFunds = append(next.ChitFunds, c)
		return nil
	})
}

// UpdateChitFund replaces the chit fund with the given id.
func (s *Store) UpdateChitFund(id string, c ChitFund) error {
	if err := validateChitFund(c); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		for i := range next.ChitFunds {
			if next.ChitFunds[i].ID == id {
				c.ID = id
				if c.Entries == nil {
					c.Entries = []ChitFundEntry{}
				}
				next.ChitFunds[i] = c
				return nil
			}
		}
		return invalidf("no chit fund with id %q", id)
	})
}

// DeleteChitFund removes the chit fund with the given id.
func (s *Store) DeleteChitFund(id string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.ChitFunds {
			if next.ChitFunds[i].ID == id {
				next.ChitFunds = append(next.ChitFunds[:i], next.ChitFunds[i+1:]...)
				return nil
			}
		}
		return invalidf("no chit fund with id %q", id)
	})
}

// PutChitEntry records or replaces the entry for the month of e.Date. The
// month slot must be past or current; a month that already has an entry is
// updated in place, never duplicated.
func (s *Store) PutChitEntry(chitID string, e ChitFundEntry) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.ChitFunds {
			if next.ChitFunds[i].ID == chitID {
				if e.ID == "" {
					e.ID = NewID()
				}
				return putChitEntry(&next.ChitFunds[i], e, Today())
			}
		}
		return invalidf("no chit fund with id %q", chitID)
	})
}

// DeleteChitEntry removes one entry from a chit fund.
func (s *Store) DeleteChitEntry(chitID, entryID string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.ChitFunds {
			if next.ChitFunds[i].ID != chitID {
				continue
			}
			entries := next.ChitFunds[i].Entries
			for j := range entries {
				if entries[j].ID == entryID {
					next.ChitFunds[i].Entries = append(entries[:j], entries[j+1:]...)
					return nil
				}
			}
			return invalidf("no entry with id %q in chit fund %q", entryID, chitID)
		}
		return invalidf("no chit fund with id %q", chitID)
	})
}

// --- Other savings ---

// AddOtherSaving appends a saving bucket with a fresh id and no entries.
func (s *Store) AddOtherSaving(o OtherSaving) error {
	if err := requireText("saving name", o.Name); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		o.ID = NewID()
		o.Entries = []OtherSavingEntry{}
		next.OtherSavings = append(next.OtherSavings, o)
		return nil
	})
}

// UpdateOtherSaving replaces the saving bucket with the given id.
func (s *Store) UpdateOtherSaving(id string, o OtherSaving) error {
	if err := requireText("saving name", o.Name); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		for i := range next.OtherSavings {
			if next.OtherSavings[i].ID == id {
				o.ID = id
				if o.Entries == nil {
					o.Entries = []OtherSavingEntry{}
				}
				next.OtherSavings[i] = o
				return nil
			}
		}
		return invalidf("no saving with id %q", id)
	})
}

// DeleteOtherSaving removes the saving bucket with the given id.
func (s *Store) DeleteOtherSaving(id string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.OtherSavings {
			if next.OtherSavings[i].ID == id {
				next.OtherSavings = append(next.OtherSavings[:i], next.OtherSavings[i+1:]...)
				return nil
			}
		}
		return invalidf("no saving with id %q", id)
	})
}

// AddSavingEntry appends a deposit to a saving bucket.
func (s *Store) AddSavingEntry(savingID string, e OtherSavingEntry) error {
	if err := requireAmount("deposit amount", e.Amount); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		for i := range next.OtherSavings {
			if next.OtherSavings[i].ID == savingID {
				e.ID = NewID()
				if e.Date.IsZero() {
					e.Date = Today()
				}
				next.OtherSavings[i].Entries = append(next.OtherSavings[i].Entries, e)
				return nil
			}
		}
		return invalidf("no saving with id %q", savingID)
	})
}

// DeleteSavingEntry removes one deposit from a saving bucket.
func (s *Store) DeleteSavingEntry(savingID, entryID string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.OtherSavings {
			if next.OtherSavings[i].ID != savingID {
				continue
			}
			entries := next.OtherSavings[i].Entries
			for j := range entries {
				if entries[j].ID == entryID {
					next.OtherSavings[i].Entries = append(entries[:j], entries[j+1:]...)
					return nil
				}
			}
			return invalidf("no entry with id %q in saving %q", entryID, savingID)
		}
		return invalidf("no saving with id %q", savingID)
	})
}

// --- Reminders ---

func validateReminder(r FinancialReminder) error {
	if err := requireText("reminder title", r.Title); err != nil {
		return err
	}
	if !r.Frequency.IsValid() {
		return invalidf("unknown reminder frequency %q", string(r.Frequency))
	}
	if r.DueDate.IsZero() {
		return invalidf("reminder due date is required")
	}
	if r.Amount.IsNegative() {
		return invalidf("reminder amount cannot be negative, got %s", r.Amount)
	}
	return nil
}

// AddReminder appends a reminder with a fresh id, pending. A zero alert
// date defaults to the due date.
func (s *Store) AddReminder(r FinancialReminder) error {
	if err := validateReminder(r); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		r.ID = NewID()
		r.IsCompleted = false
		if r.ReminderDate.IsZero() {
			r.ReminderDate = r.DueDate
		}
		next.Reminders = append(next.Reminders, r)
		return nil
	})
}

// UpdateReminder replaces the reminder with the given id.
func (s *Store) UpdateReminder(id string, r FinancialReminder) error {
	if err := validateReminder(r); err != nil {
		return err
	}
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Reminders {
			if next.Reminders[i].ID == id {
				r.ID = id
				next.Reminders[i] = r
				return nil
			}
		}
		return invalidf("no reminder with id %q", id)
	})
}

// DeleteReminder removes the reminder with the given id.
func (s *Store) DeleteReminder(id string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Reminders {
			if next.Reminders[i].ID == id {
				next.Reminders = append(next.Reminders[:i], next.Reminders[i+1:]...)
				return nil
			}
		}
		return invalidf("no reminder with id %q", id)
	})
}

// MarkReminderPaid applies the recurrence transition: one-time reminders
// complete, recurring ones advance both dates by one frequency unit. An
// already-completed reminder is left alone.
func (s *Store) MarkReminderPaid(id string) error {
	return s.mutate(func(next *Snapshot) error {
		for i := range next.Reminders {
			if next.Reminders[i].ID == id {
				if next.Reminders[i].IsCompleted {
					return invalidf("reminder %q is already completed", next.Reminders[i].Title)
				}
				markPaid(&next.Reminders[i])
				return nil
			}
		}
		return invalidf("no reminder with id %q", id)
	})
}

// --- Whole-snapshot operations ---

// Reset wipes the ledger back to the default snapshot.
func (s *Store) Reset() {
	s.install(NewSnapshot())
}

// Export serializes the full snapshot in the backup format.
func (s *Store) Export(w io.Writer) error {
	return EncodeSnapshot(w, s.snapshot)
}

// Import replaces the full snapshot from a backup document. The document is
// structurally checked first; an invalid file leaves the store untouched.
// No linked-transaction side effects run over a restore.
func (s *Store) Import(r io.Reader) error {
	snapshot, err := ImportSnapshot(r)
	if err != nil {
		return err
	}
	s.install(snapshot)
	return nil
}
