package ledger

import "testing"

func officeChit() ChitFund {
	return ChitFund{
		ID:                  "chit-1",
		Name:                "Office chit",
		TotalChitAmount:     M(100000),
		MonthlyContribution: M(10000),
		TotalMonths:         10,
		StartDate:           MustParseDate("2024-01-15"),
		ChitDay:             15,
	}
}

func TestChitSchedule(t *testing.T) {
	fund := officeChit()
	today := MustParseDate("2024-03-20")

	schedule := ChitSchedule(fund, today)
	if len(schedule) != 10 {
		t.Fatalf("schedule has %d slots, want 10", len(schedule))
	}
	if schedule[0].Month.Key() != "2024-01" || schedule[9].Month.Key() != "2024-10" {
		t.Errorf("schedule spans %s..%s, want 2024-01..2024-10", schedule[0].Month, schedule[9].Month)
	}
	if schedule[1].Draw.String() != "2024-02-15" {
		t.Errorf("second draw = %s, want 2024-02-15", schedule[1].Draw)
	}
	if !schedule[2].Actionable() || schedule[3].Actionable() {
		t.Error("current month should be actionable, future months should not")
	}
}

func TestPutChitEntry(t *testing.T) {
	fund := officeChit()
	today := MustParseDate("2024-03-20")

	entry := ChitFundEntry{
		ID:         NewID(),
		Date:       MustParseDate("2024-02-15"),
		AmountPaid: M(10000),
	}
	if err := putChitEntry(&fund, entry, today); err != nil {
		t.Fatal(err)
	}
	if len(fund.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(fund.Entries))
	}

	// Recording the same month again replaces in place, keeping the ID.
	firstID := fund.Entries[0].ID
	update := ChitFundEntry{
		ID:             NewID(),
		Date:           MustParseDate("2024-02-20"),
		IsTaken:        true,
		AmountPaid:     M(10000),
		AmountReceived: M(95000),
	}
	if err := putChitEntry(&fund, update, today); err != nil {
		t.Fatal(err)
	}
	if len(fund.Entries) != 1 {
		t.Fatalf("replacing a month duplicated it, %d entries", len(fund.Entries))
	}
	if fund.Entries[0].ID != firstID {
		t.Error("replacement must keep the existing entry ID")
	}
	if !fund.Entries[0].IsTaken || !fund.Entries[0].AmountReceived.Equal(M(95000)) {
		t.Errorf("replacement not applied: %+v", fund.Entries[0])
	}
}

func TestPutChitEntryRejections(t *testing.T) {
	fund := officeChit()
	today := MustParseDate("2024-03-20")

	tests := []struct {
		name  string
		entry ChitFundEntry
	}{
		{"future month", ChitFundEntry{Date: MustParseDate("2024-05-15"), AmountPaid: M(10000)}},
		{"before schedule", ChitFundEntry{Date: MustParseDate("2023-12-15"), AmountPaid: M(10000)}},
		{"after schedule", ChitFundEntry{Date: MustParseDate("2024-11-15"), AmountPaid: M(10000)}},
		{"zero paid", ChitFundEntry{Date: MustParseDate("2024-02-15"), AmountPaid: M(0)}},
		{"paid above chit value", ChitFundEntry{Date: MustParseDate("2024-02-15"), AmountPaid: M(100001)}},
		{"negative received", ChitFundEntry{Date: MustParseDate("2024-02-15"), AmountPaid: M(10000), AmountReceived: M(-1)}},
	}
	for _, tt := range tests {
		if err := putChitEntry(&fund, tt.entry, today); err == nil {
			t.Errorf("%s: expected a validation error", tt.name)
		}
	}
	if len(fund.Entries) != 0 {
		t.Errorf("rejected entries were recorded, %d entries", len(fund.Entries))
	}
}

func TestChitStatus(t *testing.T) {
	fund := officeChit()
	fund.Entries = []ChitFundEntry{
		{ID: "e1", Date: MustParseDate("2024-01-15"), AmountPaid: M(10000)},
		{ID: "e2", Date: MustParseDate("2024-02-15"), AmountPaid: M(10000), IsTaken: true, AmountReceived: M(95000)},
	}
	status := NewChitStatus(fund)
	if !status.TotalPaid.Equal(M(20000)) || !status.TotalReceived.Equal(M(95000)) {
		t.Errorf("paid=%s received=%s, want 20000 and 95000", status.TotalPaid, status.TotalReceived)
	}
	if !status.Net.Equal(M(75000)) {
		t.Errorf("net = %s, want 75000", status.Net)
	}
	if !status.IsTaken {
		t.Error("fund with a taken entry should report IsTaken")
	}
}
