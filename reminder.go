package ledger

// DueClass is the read-time classification of a reminder against today.
// It is never stored.
type DueClass string

const (
	Overdue  DueClass = "overdue"
	DueToday DueClass = "dueToday"
	Upcoming DueClass = "upcoming"
)

// ClassifyReminder classifies a reminder's due date against today.
func ClassifyReminder(r FinancialReminder, today Date) DueClass {
	switch {
	case r.DueDate.Before(today):
		return Overdue
	case r.DueDate == today:
		return DueToday
	default:
		return Upcoming
	}
}

// markPaid applies the "mark paid" transition in place. One-time reminders
// complete and keep their dates; recurring reminders stay pending and both
// dates advance by one frequency unit.
func markPaid(r *FinancialReminder) {
	if r.Frequency == OneTime {
		r.IsCompleted = true
		return
	}
	r.DueDate = r.Frequency.Next(r.DueDate)
	r.ReminderDate = r.Frequency.Next(r.ReminderDate)
}
