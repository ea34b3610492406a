package ledger

// MonthlySummary is the dashboard view of one calendar month, derived from
// the snapshot on every read.
type MonthlySummary struct {
	Month            Month
	Income           Money
	Expenses         Money
	RemainingBalance Money // income minus expenses, floored at zero
	EMIsDue          Money // sum of EMI amounts of loans still running that month
	DueReminders     int   // pending reminders overdue or due within the month
}

// NewMonthlySummary aggregates the month's incomes and expenses and the
// installments falling due in it.
func NewMonthlySummary(s *Snapshot, m Month, today Date) MonthlySummary {
	sum := MonthlySummary{Month: m}

	for _, in := range s.Incomes {
		if m.Contains(in.Date) {
			sum.Income = sum.Income.Add(in.Amount)
		}
	}
	for _, e := range s.Expenses {
		if m.Contains(e.Date) {
			sum.Expenses = sum.Expenses.Add(e.Amount)
		}
	}
	sum.RemainingBalance = maxZero(sum.Income.Sub(sum.Expenses))

	for _, l := range s.Loans {
		for _, t := range LoanTimeline(l, today) {
			if t.Month == m {
				sum.EMIsDue = sum.EMIsDue.Add(l.EMIAmount)
				break
			}
		}
	}

	for _, r := range s.Reminders {
		if r.IsCompleted {
			continue
		}
		if ClassifyReminder(r, today) != Upcoming || m.Contains(r.DueDate) {
			sum.DueReminders++
		}
	}
	return sum
}
