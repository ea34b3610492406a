package ledger

import (
	"fmt"
	"time"
)

// applyLinkedEffects is the linked-transaction side-effect processor. It
// runs between a mutation transform and the persistence write, comparing
// the previous and next snapshots.
//
// New payments are detected by a length increase of the relevant payment
// list, never by a stored "did this fire" flag, so edits that do not add a
// payment (renaming a loan, fixing a note) can never produce a duplicate
// linked expense. Completion transitions are detected by deriving status
// from both snapshots and comparing.
func applyLinkedEffects(prev, next *Snapshot, now time.Time) {
	today := NewDate(now.Date())
	currency := next.Settings.Currency

	prevLoans := make(map[string]Loan, len(prev.Loans))
	for _, l := range prev.Loans {
		prevLoans[l.ID] = l
	}
	for _, l := range next.Loans {
		before, ok := prevLoans[l.ID]
		if !ok {
			// A freshly added loan has no previous state to diff against.
			continue
		}
		if len(l.Payments) > len(before.Payments) {
			known := make(map[string]bool, len(before.Payments))
			for _, p := range before.Payments {
				known[p.ID] = true
			}
			for _, p := range l.Payments {
				if known[p.ID] {
					continue
				}
				next.Expenses = append(next.Expenses, Expense{
					ID:       NewID(),
					Amount:   p.Amount,
					Date:     p.Date,
					Category: "Loan EMI",
					Notes:    fmt.Sprintf("(Auto-link) EMI payment for %s", l.Name),
				})
				notify(next, PaymentNotice, "EMI paid",
					fmt.Sprintf("EMI of %s paid for %s (%s)", p.Amount.Display(currency), l.Name, p.Date.MonthOf()), now)
			}
		}
		if !NewLoanStatus(before, today).IsCompleted && NewLoanStatus(l, today).IsCompleted {
			notify(next, SuccessNotice, "Loan repaid",
				fmt.Sprintf("Congratulations! You've fully repaid your %s loan!", l.Name), now)
		}
	}

	prevDebts := make(map[string]BorrowedMoney, len(prev.Borrowed))
	for _, b := range prev.Borrowed {
		prevDebts[b.ID] = b
	}
	for i := range next.Borrowed {
		b := &next.Borrowed[i]
		// Cache-consistency invariant: totalPaid always equals the sum of
		// the payment list, whatever the mutation touched.
		b.TotalPaid = sumPayments(b.Payments)

		before, ok := prevDebts[b.ID]
		if !ok {
			continue
		}
		if len(b.Payments) > len(before.Payments) {
			last := b.Payments[len(b.Payments)-1]
			notify(next, PaymentNotice, "Repayment recorded",
				fmt.Sprintf("Paid %s towards %s", last.Amount.Display(currency), b.PersonName), now)
		}
		if !NewDebtStatus(before).IsCompleted && NewDebtStatus(*b).IsCompleted {
			notify(next, SuccessNotice, "Debt settled",
				fmt.Sprintf("Congratulations! You've fully repaid %s!", b.PersonName), now)
		}
	}

	prevReminders := make(map[string]FinancialReminder, len(prev.Reminders))
	for _, r := range prev.Reminders {
		prevReminders[r.ID] = r
	}
	for _, r := range next.Reminders {
		before, ok := prevReminders[r.ID]
		if !ok {
			continue
		}
		completed := !before.IsCompleted && r.IsCompleted
		// A recurring payment advances the due date by exactly one frequency
		// unit. Any other date change is an edit, not a payment.
		advanced := before.Frequency != OneTime && r.DueDate == before.Frequency.Next(before.DueDate)
		if (completed || advanced) && before.Amount.IsPositive() {
			category := before.Type
			if category == "" {
				category = "Payment"
			}
			next.Expenses = append(next.Expenses, Expense{
				ID:       NewID(),
				Amount:   before.Amount,
				Date:     before.DueDate,
				Category: category,
				Notes:    fmt.Sprintf("(Auto-link) Payment for reminder: %s", before.Title),
			})
			notify(next, PaymentNotice, "Reminder paid",
				fmt.Sprintf("Paid %s for %s", before.Amount.Display(currency), before.Title), now)
		}
	}
}

// notify prepends an entry to the capped, most-recent-first notification
// history. The log is for the timeline display only; nothing is ever
// computed from it.
func notify(next *Snapshot, kind NotificationKind, title, message string, now time.Time) {
	entry := NotificationEntry{
		ID:        NewID(),
		Title:     title,
		Message:   message,
		Timestamp: now,
		Type:      kind,
	}
	next.NotificationHistory = append([]NotificationEntry{entry}, next.NotificationHistory...)
	if len(next.NotificationHistory) > notificationCap {
		next.NotificationHistory = next.NotificationHistory[:notificationCap]
	}
}
