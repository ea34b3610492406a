package ledger

// MonthClass classifies a schedule month relative to today's calendar month.
type MonthClass string

const (
	PastMonth    MonthClass = "past"
	CurrentMonth MonthClass = "current"
	FutureMonth  MonthClass = "future"
)

func classify(m, current Month) MonthClass {
	switch {
	case m == current:
		return CurrentMonth
	case m.Before(current):
		return PastMonth
	default:
		return FutureMonth
	}
}

// TimelineMonth is one tenure month of a loan's amortization schedule.
//
// IsPaid is a derived predicate over the stored payment history, never a
// separately maintained boolean: a month is paid when any payment is dated
// inside it. That makes pay/un-pay toggles naturally idempotent.
type TimelineMonth struct {
	Index  int
	Month  Month
	Due    Date // month anchored to the loan's due day
	IsPaid bool
	Class  MonthClass
}

// LoanTimeline generates one entry per tenure month, startDate + i months
// anchored to the due day, classified against today's month.
func LoanTimeline(loan Loan, today Date) []TimelineMonth {
	current := today.MonthOf()
	start := loan.StartDate.MonthOf()
	timeline := make([]TimelineMonth, 0, loan.TenureMonth)
	for i := 0; i < loan.TenureMonth; i++ {
		m := start.Next(i)
		timeline = append(timeline, TimelineMonth{
			Index:  i,
			Month:  m,
			Due:    m.Date(loan.DueDay),
			IsPaid: monthPaid(loan, m),
			Class:  classify(m, current),
		})
	}
	return timeline
}

// monthPaid reports whether any stored payment falls in the given month.
func monthPaid(loan Loan, m Month) bool {
	for _, p := range loan.Payments {
		if m.Contains(p.Date) {
			return true
		}
	}
	return false
}

// loanEndDate computes the due date of the last tenure month. A zero-tenure
// loan ends where it starts.
func loanEndDate(loan Loan) Date {
	if loan.TenureMonth <= 0 {
		return loan.StartDate
	}
	return loan.StartDate.MonthOf().Next(loan.TenureMonth - 1).Date(loan.DueDay)
}

// LoanStatus is the point-in-time derivation of a loan's progress from its
// stored payment history.
type LoanStatus struct {
	PaidMonths       int
	RemainingEMIs    int
	TotalPaid        Money
	TotalPayable     Money
	RemainingBalance Money
	Progress         Percent
	IsCompleted      bool
	IsCurrentPaid    bool // current calendar month has a payment
	IsPastTenure     bool // today is past the computed end date
	Timeline         []TimelineMonth
}

// NewLoanStatus derives the full status of a loan as of today. It is a pure
// function, safe to call repeatedly; nothing is cached between reads.
//
// Payments dated in months outside [start, start+tenure) never count toward
// progress: only timeline months contribute, so a stray backdated correction
// cannot push progress past the tenure cap.
func NewLoanStatus(loan Loan, today Date) LoanStatus {
	timeline := LoanTimeline(loan, today)

	paid := 0
	for _, t := range timeline {
		if t.IsPaid {
			paid++
		}
	}

	totalPaid := loan.EMIAmount.MulInt(paid)
	totalPayable := loan.EMIAmount.MulInt(loan.TenureMonth)
	remaining := maxZero(totalPayable.Sub(totalPaid))
	remainingEMIs := loan.TenureMonth - paid
	pastTenure := today.After(loanEndDate(loan))

	return LoanStatus{
		PaidMonths:       paid,
		RemainingEMIs:    remainingEMIs,
		TotalPaid:        totalPaid,
		TotalPayable:     totalPayable,
		RemainingBalance: remaining,
		Progress:         totalPaid.ratio(totalPayable).capped(),
		IsCompleted:      remaining.IsZero() || (pastTenure && remainingEMIs <= 0),
		IsCurrentPaid:    monthPaid(loan, today.MonthOf()),
		IsPastTenure:     pastTenure,
		Timeline:         timeline,
	}
}

// scheduleMonth rejects months outside [start, start+tenure).
func scheduleMonth(loan Loan, m Month) error {
	start := loan.StartDate.MonthOf()
	end := start.Next(loan.TenureMonth)
	if loan.TenureMonth <= 0 || m.Before(start) || !m.Before(end) {
		return invalidf("month %s is outside the loan schedule %s..%s", m, start, end.Next(-1))
	}
	return nil
}

// payMonth marks a timeline month paid by appending a payment dated on the
// month's due day. A month that already holds a payment is left alone:
// marking it paid again is a no-op, not a second payment.
func payMonth(loan *Loan, m Month) error {
	if err := scheduleMonth(*loan, m); err != nil {
		return err
	}
	if monthPaid(*loan, m) {
		return nil
	}
	loan.Payments = append(loan.Payments, LoanPayment{
		ID:     NewID(),
		Amount: loan.EMIAmount,
		Date:   m.Date(loan.DueDay),
	})
	return nil
}

// unpayMonth removes every payment dated in the month, reverting it to
// unpaid. An unpaid month is a no-op.
func unpayMonth(loan *Loan, m Month) error {
	if err := scheduleMonth(*loan, m); err != nil {
		return err
	}
	kept := loan.Payments[:0]
	for _, p := range loan.Payments {
		if !m.Contains(p.Date) {
			kept = append(kept, p)
		}
	}
	loan.Payments = kept
	return nil
}

// togglePayment flips the paid state of one timeline month. Because IsPaid
// is derived from the payment history, toggling twice restores both the
// timeline and the derived totals exactly.
func togglePayment(loan *Loan, m Month) error {
	if monthPaid(*loan, m) {
		return unpayMonth(loan, m)
	}
	return payMonth(loan, m)
}
