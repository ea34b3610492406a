package ledger

// ChitSlot is one scheduled month of a chit fund. Entry is nil until the
// user records that month; future slots are display-only.
type ChitSlot struct {
	Index int
	Month Month
	Draw  Date // month anchored to the fund's chit day
	Class MonthClass
	Entry *ChitFundEntry
}

// Actionable reports whether the slot accepts an entry submission. Only
// past and current months do.
func (s ChitSlot) Actionable() bool { return s.Class != FutureMonth }

// ChitSchedule generates one slot per month of the fund's total months,
// anchored at the start date, looking up the single entry (if any) whose
// date falls in that month.
func ChitSchedule(fund ChitFund, today Date) []ChitSlot {
	current := today.MonthOf()
	start := fund.StartDate.MonthOf()
	schedule := make([]ChitSlot, 0, fund.TotalMonths)
	for i := 0; i < fund.TotalMonths; i++ {
		m := start.Next(i)
		schedule = append(schedule, ChitSlot{
			Index: i,
			Month: m,
			Draw:  m.Date(fund.ChitDay),
			Class: classify(m, current),
			Entry: chitEntryIn(fund, m),
		})
	}
	return schedule
}

// chitEntryIn returns the fund's entry for the given month, or nil.
// At most one entry exists per calendar month.
func chitEntryIn(fund ChitFund, m Month) *ChitFundEntry {
	for i := range fund.Entries {
		if m.Contains(fund.Entries[i].Date) {
			return &fund.Entries[i]
		}
	}
	return nil
}

// ChitStatus aggregates a fund's position from its entries. Net is negative
// before the fund is drawn and turns positive after.
type ChitStatus struct {
	TotalPaid     Money
	TotalReceived Money
	Net           Money
	IsTaken       bool // the user has drawn the fund in some month
}

// NewChitStatus derives the fund's aggregate position.
func NewChitStatus(fund ChitFund) ChitStatus {
	var paid, received Money
	taken := false
	for _, e := range fund.Entries {
		paid = paid.Add(e.AmountPaid)
		received = received.Add(e.AmountReceived)
		taken = taken || e.IsTaken
	}
	return ChitStatus{
		TotalPaid:     paid,
		TotalReceived: received,
		Net:           received.Sub(paid),
		IsTaken:       taken,
	}
}

// putChitEntry records or replaces the entry for the month of e.Date.
// A month that already holds an entry is updated in place, never duplicated.
// Future months reject submission; paying more than the total chit value is
// a validation error, not a clamp.
func putChitEntry(fund *ChitFund, e ChitFundEntry, today Date) error {
	if err := requireAmount("monthly paid amount", e.AmountPaid); err != nil {
		return err
	}
	if e.AmountPaid.GreaterThan(fund.TotalChitAmount) {
		return invalidf("monthly paid amount cannot exceed total chit value of %s", fund.TotalChitAmount)
	}
	if e.AmountReceived.IsNegative() {
		return invalidf("amount received cannot be negative, got %s", e.AmountReceived)
	}

	m := e.Date.MonthOf()
	start := fund.StartDate.MonthOf()
	end := start.Next(fund.TotalMonths)
	if fund.TotalMonths <= 0 || m.Before(start) || !m.Before(end) {
		return invalidf("month %s is outside the chit schedule %s..%s", m, start, end.Next(-1))
	}
	if m.After(today.MonthOf()) {
		return invalidf("cannot record an entry for future month %s", m)
	}

	if existing := chitEntryIn(*fund, m); existing != nil {
		e.ID = existing.ID
		*existing = e
		return nil
	}
	fund.Entries = append(fund.Entries, e)
	return nil
}
