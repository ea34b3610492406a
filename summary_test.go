package ledger

import (
	"testing"
	"time"
)

func TestMonthlySummary(t *testing.T) {
	s := NewSnapshot()
	s.Incomes = append(s.Incomes,
		Income{ID: "i1", Category: "Salary", Amount: M(50000), Date: MustParseDate("2024-03-01")},
		Income{ID: "i2", Category: "Freelance", Amount: M(8000), Date: MustParseDate("2024-03-20")},
		Income{ID: "i3", Category: "Salary", Amount: M(50000), Date: MustParseDate("2024-02-01")},
	)
	s.Expenses = append(s.Expenses,
		Expense{ID: "e1", Category: "Rent", Amount: M(15000), Date: MustParseDate("2024-03-05")},
		Expense{ID: "e2", Category: "Grocery", Amount: M(4000), Date: MustParseDate("2024-04-02")},
	)
	s.Loans = append(s.Loans, Loan{
		ID: "l1", Name: "Bike", EMIAmount: M(5000), TenureMonth: 12,
		DueDay: 10, StartDate: MustParseDate("2024-01-10"),
	})
	s.Reminders = append(s.Reminders,
		FinancialReminder{ID: "r1", Title: "Electricity", DueDate: MustParseDate("2024-03-12"), Frequency: Monthly},
		FinancialReminder{ID: "r2", Title: "Done", DueDate: MustParseDate("2024-03-12"), Frequency: Monthly, IsCompleted: true},
		FinancialReminder{ID: "r3", Title: "Far", DueDate: MustParseDate("2024-06-12"), Frequency: Yearly},
	)

	m := NewMonth(2024, time.March)
	sum := NewMonthlySummary(s, m, MustParseDate("2024-03-15"))

	if !sum.Income.Equal(M(58000)) {
		t.Errorf("income = %s, want 58000", sum.Income)
	}
	if !sum.Expenses.Equal(M(15000)) {
		t.Errorf("expenses = %s, want 15000", sum.Expenses)
	}
	if !sum.RemainingBalance.Equal(M(43000)) {
		t.Errorf("remaining = %s, want 43000", sum.RemainingBalance)
	}
	if !sum.EMIsDue.Equal(M(5000)) {
		t.Errorf("EMIs due = %s, want 5000", sum.EMIsDue)
	}
	if sum.DueReminders != 1 {
		t.Errorf("due reminders = %d, want 1 (completed and far-future excluded)", sum.DueReminders)
	}
}

func TestMonthlySummaryFloorsBalance(t *testing.T) {
	s := NewSnapshot()
	s.Expenses = append(s.Expenses,
		Expense{ID: "e1", Category: "Rent", Amount: M(9000), Date: MustParseDate("2024-03-05")})
	sum := NewMonthlySummary(s, NewMonth(2024, time.March), MustParseDate("2024-03-15"))
	if !sum.RemainingBalance.IsZero() {
		t.Errorf("remaining = %s, want floored at 0", sum.RemainingBalance)
	}
}
