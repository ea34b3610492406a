package ledger

import (
	"bytes"
	"strings"
	"testing"
)

func sampleSnapshot() *Snapshot {
	s := NewSnapshot()
	s.Profile = Profile{Name: "Asha"}
	s.Incomes = append(s.Incomes, Income{
		ID: "in-1", Category: "Salary", Amount: M(50000),
		Date: MustParseDate("2024-03-01"),
	})
	s.Expenses = append(s.Expenses, Expense{
		ID: "ex-1", Category: "Rent", Amount: M(15000),
		Date: MustParseDate("2024-03-05"),
	})
	s.Loans = append(s.Loans, Loan{
		ID: "loan-1", Name: "Bike", Type: VehicleLoan,
		TotalAmount: M(60000), EMIAmount: M(5000), TenureMonth: 12,
		DueDay: 10, StartDate: MustParseDate("2024-01-10"),
		EndDate:  MustParseDate("2024-12-10"),
		Payments: []LoanPayment{{ID: "lp-1", Amount: M(5000), Date: MustParseDate("2024-01-10")}},
	})
	s.Borrowed = append(s.Borrowed, BorrowedMoney{
		ID: "debt-1", PersonName: "Ravi", TotalAmount: M(10000),
		TotalPaid: M(4000), StartDate: MustParseDate("2024-02-01"),
		Payments: []Payment{{ID: "p-1", Amount: M(4000), Date: MustParseDate("2024-02-15")}},
	})
	s.ChitFunds = append(s.ChitFunds, ChitFund{
		ID: "chit-1", Name: "Office chit", TotalChitAmount: M(100000),
		MonthlyContribution: M(10000), TotalMonths: 10,
		StartDate: MustParseDate("2024-01-15"), ChitDay: 15,
		Entries: []ChitFundEntry{{ID: "ce-1", Date: MustParseDate("2024-01-15"), AmountPaid: M(10000)}},
	})
	s.Reminders = append(s.Reminders, FinancialReminder{
		ID: "rem-1", Title: "Electricity", Type: "Payment", Amount: M(1200),
		DueDate: MustParseDate("2024-03-10"), ReminderDate: MustParseDate("2024-03-08"),
		Frequency: Monthly,
	})
	s.OtherSavings = append(s.OtherSavings, OtherSaving{
		ID: "sav-1", Name: "Gold box", Type: GoldSaving,
		Entries: []OtherSavingEntry{{ID: "se-1", Amount: M(2000), Date: MustParseDate("2024-02-20")}},
	})
	return s
}

func TestEncodeSnapshotKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	order := []string{
		`"profile"`, `"settings"`, `"incomes"`, `"expenses"`, `"loans"`,
		`"borrowed"`, `"reminders"`, `"chitFunds"`, `"otherSavings"`, `"notificationHistory"`,
	}
	last := -1
	for _, key := range order {
		i := strings.Index(out, key)
		if i < 0 {
			t.Fatalf("key %s missing from output", key)
		}
		if i < last {
			t.Errorf("key %s out of canonical order", key)
		}
		last = i
	}

	if !strings.Contains(out, `"amount": 50000`) {
		t.Error("money must serialize as a bare JSON number")
	}
	if !strings.Contains(out, `"date": "2024-03-01"`) {
		t.Error("dates must serialize as yyyy-mm-dd strings")
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("document must end with a newline")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	var first bytes.Buffer
	if err := EncodeSnapshot(&first, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	restored, err := ImportSnapshot(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	var second bytes.Buffer
	if err := EncodeSnapshot(&second, restored); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("export, import, export must reproduce the document byte for byte")
	}
}

func TestDecodeAppliesMigrationDefaults(t *testing.T) {
	// A minimal prior-version document: collections present, settings bare.
	doc := `{
  "profile": {},
  "settings": {},
  "incomes": [],
  "expenses": [],
  "loans": [{"id": "l1", "name": "Bike", "type": "Vehicle", "totalAmount": 60000,
             "emiAmount": 5000, "tenureMonths": 12, "dueDay": 10,
             "startDate": "2024-01-10"}],
  "borrowed": [{"id": "b1", "personName": "Ravi", "totalAmount": 10000,
                "startDate": "2024-02-01",
                "payments": [{"id": "p1", "amount": 4000, "date": "2024-02-15"}]}],
  "reminders": [],
  "chitFunds": [],
  "otherSavings": []
}`
	s, err := ImportSnapshot(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if s.Settings.Currency != "INR" || s.Settings.Theme != "light" {
		t.Errorf("settings defaults not applied: %+v", s.Settings)
	}
	if s.NotificationHistory == nil || s.Settings.CustomIncomeCategories == nil {
		t.Error("absent collections must decode to empty, not nil")
	}
	if got := s.Loans[0].EndDate.String(); got != "2024-12-10" {
		t.Errorf("loan end date recomputed to %s, want 2024-12-10", got)
	}
	if s.Loans[0].Payments == nil {
		t.Error("absent payment list must decode to empty, not nil")
	}
	if !s.Borrowed[0].TotalPaid.Equal(M(4000)) {
		t.Errorf("borrowed cache = %s, want 4000 recomputed on load", s.Borrowed[0].TotalPaid)
	}
}

func TestImportSnapshotRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `[1, 2, 3]`},
		{"missing collection", `{"incomes": [], "expenses": []}`},
		{"collection not an array", `{"incomes": 42, "expenses": [], "loans": [],
			"borrowed": [], "reminders": [], "chitFunds": [], "otherSavings": []}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		if _, err := ImportSnapshot(strings.NewReader(tt.doc)); err == nil {
			t.Errorf("%s: import should fail", tt.name)
		}
	}
}
