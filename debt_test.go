package ledger

import "testing"

func friendDebt() BorrowedMoney {
	return BorrowedMoney{
		ID:          "debt-1",
		PersonName:  "Ravi",
		TotalAmount: M(10000),
		StartDate:   MustParseDate("2024-01-10"),
	}
}

func TestDebtStatus(t *testing.T) {
	debt := friendDebt()
	status := NewDebtStatus(debt)
	if !status.PaidTillDate.IsZero() || !status.RemainingBalance.Equal(M(10000)) {
		t.Fatalf("fresh debt status = %+v", status)
	}
	if status.IsCompleted {
		t.Error("an unpaid debt is not completed")
	}

	debt.Payments = []Payment{
		{ID: "p1", Amount: M(4000), Date: MustParseDate("2024-02-01")},
		{ID: "p2", Amount: M(5000), Date: MustParseDate("2024-03-01")},
	}
	status = NewDebtStatus(debt)
	if !status.PaidTillDate.Equal(M(9000)) || !status.RemainingBalance.Equal(M(1000)) {
		t.Errorf("paid=%s remaining=%s, want 9000 and 1000", status.PaidTillDate, status.RemainingBalance)
	}
	if !status.Progress.Equal(90) {
		t.Errorf("progress = %s, want 90%%", status.Progress)
	}
}

func TestDebtStatusIgnoresCache(t *testing.T) {
	debt := friendDebt()
	debt.TotalPaid = M(9999) // stale cache, must not leak into the derivation
	if got := NewDebtStatus(debt); !got.PaidTillDate.IsZero() {
		t.Errorf("PaidTillDate = %s, want 0 from the empty payment list", got.PaidTillDate)
	}
}

func TestRecordDebtPaymentOverpayment(t *testing.T) {
	debt := friendDebt()
	debt.Payments = []Payment{{ID: "p1", Amount: M(9000), Date: MustParseDate("2024-02-01")}}
	debt.TotalPaid = sumPayments(debt.Payments)

	// 9000 + 1500 exceeds the 10000 owed.
	err := recordDebtPayment(&debt, Payment{ID: "p2", Amount: M(1500), Date: MustParseDate("2024-03-01")})
	if err == nil {
		t.Fatal("overpayment should be rejected")
	}
	if len(debt.Payments) != 1 {
		t.Fatalf("rejected payment was recorded anyway, %d payments", len(debt.Payments))
	}

	// Exact completion is fine.
	if err := recordDebtPayment(&debt, Payment{ID: "p2", Amount: M(1000), Date: MustParseDate("2024-03-01")}); err != nil {
		t.Fatal(err)
	}
	status := NewDebtStatus(debt)
	if !status.IsCompleted || !status.RemainingBalance.IsZero() {
		t.Errorf("exactly-paid debt status = %+v, want completed with zero remaining", status)
	}
	if !debt.TotalPaid.Equal(M(10000)) {
		t.Errorf("cache = %s, want 10000 after recompute", debt.TotalPaid)
	}
}

func TestRecordDebtPaymentRejectsNonPositive(t *testing.T) {
	debt := friendDebt()
	for _, amount := range []Money{M(0), M(-100)} {
		if err := recordDebtPayment(&debt, Payment{ID: "p", Amount: amount}); err == nil {
			t.Errorf("amount %s should be rejected", amount)
		}
	}
}
