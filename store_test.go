package ledger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// memPersister records every save, standing in for the file store.
type memPersister struct {
	stored *Snapshot
	saves  int
}

func (m *memPersister) Load() (*Snapshot, error) { return m.stored, nil }

func (m *memPersister) Save(s *Snapshot) error {
	m.stored = s
	m.saves++
	return nil
}

func newTestStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	p := &memPersister{}
	s, err := Open(p)
	if err != nil {
		t.Fatal(err)
	}
	return s, p
}

func TestOpenDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	snap := s.Get()
	if snap.Settings.Currency != "INR" {
		t.Errorf("default currency = %q, want INR", snap.Settings.Currency)
	}
	if snap.Settings.Theme != "light" {
		t.Errorf("default theme = %q, want light", snap.Settings.Theme)
	}
	if snap.Incomes == nil || snap.Loans == nil {
		t.Error("collections must be initialized empty, not nil")
	}
}

func TestProfileAndSettings(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SetProfile(Profile{Name: "Asha"}); err != nil {
		t.Fatal(err)
	}
	if s.Get().Profile.Name != "Asha" {
		t.Errorf("profile = %+v", s.Get().Profile)
	}

	settings := s.Get().Settings
	settings.HasCompletedOnboarding = true
	settings.CustomExpenseCategories = []string{"Fuel", "Fuel", "Temple"}
	if err := s.UpdateSettings(settings); err != nil {
		t.Fatal(err)
	}
	got := s.Get().Settings
	if !got.HasCompletedOnboarding {
		t.Error("onboarding flag not stored")
	}
	if len(got.CustomExpenseCategories) != 2 {
		t.Errorf("custom labels not deduplicated: %v", got.CustomExpenseCategories)
	}
}

func TestMutationWriteThrough(t *testing.T) {
	s, p := newTestStore(t)
	if err := s.AddIncome(Income{Category: "Salary", Amount: M(50000), Date: Today()}); err != nil {
		t.Fatal(err)
	}
	if p.saves != 1 {
		t.Errorf("one mutation issued %d saves, want 1", p.saves)
	}
	if p.stored != s.Get() {
		t.Error("the persisted snapshot must be the installed one")
	}
	if len(s.Get().Incomes) != 1 || s.Get().Incomes[0].ID == "" {
		t.Fatalf("income not recorded with an id: %+v", s.Get().Incomes)
	}
}

func TestFailedMutationLeavesStoreUntouched(t *testing.T) {
	s, p := newTestStore(t)
	before := s.Get()

	if err := s.AddIncome(Income{Category: "", Amount: M(100), Date: Today()}); err == nil {
		t.Fatal("missing category should be rejected")
	}
	if err := s.UpdateExpense("no-such-id", Expense{Category: "Rent", Amount: M(1), Date: Today()}); err == nil {
		t.Fatal("unknown id should be rejected")
	}
	if s.Get() != before {
		t.Error("failed mutations must not replace the snapshot")
	}
	if p.saves != 0 {
		t.Errorf("failed mutations issued %d saves, want 0", p.saves)
	}
}

func TestValidationErrorType(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.AddExpense(Expense{Category: "Rent", Amount: M(-5), Date: Today()})
	if err == nil {
		t.Fatal("negative amount should be rejected")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error %T is not a ValidationError", err)
	}
}

func TestLoanPaymentLinkedExpense(t *testing.T) {
	s, _ := newTestStore(t)
	start := Today().AddMonths(-3)
	if err := s.AddLoan(Loan{
		Name:        "Bike",
		Type:        VehicleLoan,
		TotalAmount: M(60000),
		EMIAmount:   M(5000),
		TenureMonth: 12,
		DueDay:      10,
		StartDate:   start,
	}); err != nil {
		t.Fatal(err)
	}
	loanID := s.Get().Loans[0].ID

	m := start.MonthOf().Next(1)
	if err := s.PayLoanMonth(loanID, m); err != nil {
		t.Fatal(err)
	}

	snap := s.Get()
	if len(snap.Expenses) != 1 {
		t.Fatalf("paying one EMI produced %d expenses, want 1", len(snap.Expenses))
	}
	e := snap.Expenses[0]
	if e.Category != "Loan EMI" || !e.Amount.Equal(M(5000)) {
		t.Errorf("linked expense = %+v", e)
	}
	if !strings.HasPrefix(e.Notes, "(Auto-link)") {
		t.Errorf("linked expense notes = %q, want the (Auto-link) prefix", e.Notes)
	}
	if len(snap.NotificationHistory) == 0 || snap.NotificationHistory[0].Type != PaymentNotice {
		t.Errorf("payment notification missing, history = %+v", snap.NotificationHistory)
	}

	// Re-marking the same month is a no-op: no second payment, no second
	// linked expense.
	if err := s.PayLoanMonth(loanID, m); err != nil {
		t.Fatal(err)
	}
	snap = s.Get()
	if len(snap.Loans[0].Payments) != 1 || len(snap.Expenses) != 1 {
		t.Errorf("repeat pay duplicated state: %d payments, %d expenses",
			len(snap.Loans[0].Payments), len(snap.Expenses))
	}
}

func TestLoanRenameDoesNotRelink(t *testing.T) {
	s, _ := newTestStore(t)
	start := Today().AddMonths(-1)
	if err := s.AddLoan(Loan{
		Name: "Home", Type: HomeLoan,
		TotalAmount: M(100000), EMIAmount: M(10000),
		TenureMonth: 10, DueDay: 5, StartDate: start,
	}); err != nil {
		t.Fatal(err)
	}
	loan := s.Get().Loans[0]
	if err := s.PayLoanMonth(loan.ID, start.MonthOf()); err != nil {
		t.Fatal(err)
	}
	if len(s.Get().Expenses) != 1 {
		t.Fatalf("setup: want exactly one linked expense")
	}

	renamed := s.Get().Loans[0]
	renamed.Name = "House"
	if err := s.UpdateLoan(loan.ID, renamed); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Get().Expenses); got != 1 {
		t.Errorf("rename produced %d expenses, want still 1", got)
	}
}

func TestLoanCompletionNotifiesOnce(t *testing.T) {
	s, _ := newTestStore(t)
	start := Today().AddMonths(-2)
	if err := s.AddLoan(Loan{
		Name: "Phone", Type: PersonalLoan,
		TotalAmount: M(20000), EMIAmount: M(10000),
		TenureMonth: 2, DueDay: 1, StartDate: start,
	}); err != nil {
		t.Fatal(err)
	}
	loanID := s.Get().Loans[0].ID

	if err := s.PayLoanMonth(loanID, start.MonthOf()); err != nil {
		t.Fatal(err)
	}
	if err := s.PayLoanMonth(loanID, start.MonthOf().Next(1)); err != nil {
		t.Fatal(err)
	}

	congrats := func() int {
		n := 0
		for _, e := range s.Get().NotificationHistory {
			if e.Type == SuccessNotice && strings.Contains(e.Message, "Phone") {
				n++
			}
		}
		return n
	}
	if got := congrats(); got != 1 {
		t.Fatalf("completion fired %d success notices, want 1", got)
	}

	// Repeating the final payment is a no-op and must not celebrate again.
	if err := s.PayLoanMonth(loanID, start.MonthOf().Next(1)); err != nil {
		t.Fatal(err)
	}
	if got := congrats(); got != 1 {
		t.Errorf("repeat pay fired %d success notices, want still 1", got)
	}
}

func TestDebtSettlement(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.AddBorrowed(BorrowedMoney{
		PersonName:  "Anand",
		TotalAmount: M(10000),
		StartDate:   Today().AddMonths(-1),
	}); err != nil {
		t.Fatal(err)
	}
	debtID := s.Get().Borrowed[0].ID

	if err := s.AddDebtPayment(debtID, Payment{Amount: M(11000)}); err == nil {
		t.Fatal("overpayment should be rejected")
	}
	if err := s.AddDebtPayment(debtID, Payment{Amount: M(10000)}); err != nil {
		t.Fatal(err)
	}

	debt := s.Get().Borrowed[0]
	if !debt.TotalPaid.Equal(M(10000)) {
		t.Errorf("totalPaid cache = %s, want 10000", debt.TotalPaid)
	}
	settled := false
	for _, e := range s.Get().NotificationHistory {
		if e.Type == SuccessNotice && strings.Contains(e.Message, "Anand") {
			settled = true
		}
	}
	if !settled {
		t.Error("settling the debt should log a success notification")
	}
}

func TestDebtCacheRecomputedOnUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.AddBorrowed(BorrowedMoney{
		PersonName:  "Meena",
		TotalAmount: M(5000),
		StartDate:   Today(),
	}); err != nil {
		t.Fatal(err)
	}
	debt := s.Get().Borrowed[0]
	debt.Payments = []Payment{{ID: "p1", Amount: M(2000), Date: Today()}}
	debt.TotalPaid = M(9999) // caller-supplied cache is ignored
	if err := s.UpdateBorrowed(debt.ID, debt); err != nil {
		t.Fatal(err)
	}
	if got := s.Get().Borrowed[0].TotalPaid; !got.Equal(M(2000)) {
		t.Errorf("cache = %s, want 2000 recomputed from payments", got)
	}
}

func TestMarkReminderPaidLinksExpense(t *testing.T) {
	s, _ := newTestStore(t)
	due := Today()
	if err := s.AddReminder(FinancialReminder{
		Title:     "Electricity",
		Type:      "Payment",
		Amount:    M(1200),
		DueDate:   due,
		Frequency: Monthly,
	}); err != nil {
		t.Fatal(err)
	}
	id := s.Get().Reminders[0].ID

	if err := s.MarkReminderPaid(id); err != nil {
		t.Fatal(err)
	}
	snap := s.Get()
	if snap.Reminders[0].DueDate != due.AddMonths(1) {
		t.Errorf("due date = %s, want advanced one month", snap.Reminders[0].DueDate)
	}
	if len(snap.Expenses) != 1 {
		t.Fatalf("marking paid produced %d expenses, want 1", len(snap.Expenses))
	}
	e := snap.Expenses[0]
	if !e.Amount.Equal(M(1200)) || e.Date != due || !strings.Contains(e.Notes, "Electricity") {
		t.Errorf("linked expense = %+v", e)
	}
}

func TestReminderDateEditDoesNotLinkExpense(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.AddReminder(FinancialReminder{
		Title:     "Insurance",
		Type:      "Payment",
		Amount:    M(9000),
		DueDate:   MustParseDate("2026-03-10"),
		Frequency: Monthly,
	}); err != nil {
		t.Fatal(err)
	}
	r := s.Get().Reminders[0]

	// Correcting a typo'd due date is an edit, not a payment.
	r.DueDate = MustParseDate("2026-05-20")
	r.ReminderDate = r.DueDate
	if err := s.UpdateReminder(r.ID, r); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Get().Expenses); got != 0 {
		t.Fatalf("date edit produced %d expenses, want 0", got)
	}
	if got := len(s.Get().NotificationHistory); got != 0 {
		t.Fatalf("date edit produced %d notifications, want 0", got)
	}

	// Marking paid from the corrected date still links the expense.
	if err := s.MarkReminderPaid(r.ID); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Get().Expenses); got != 1 {
		t.Errorf("marking paid produced %d expenses, want 1", got)
	}
}

func TestMarkReminderPaidNoAmountNoExpense(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.AddReminder(FinancialReminder{
		Title:     "Renew passport",
		DueDate:   Today(),
		Frequency: OneTime,
	}); err != nil {
		t.Fatal(err)
	}
	id := s.Get().Reminders[0].ID
	if err := s.MarkReminderPaid(id); err != nil {
		t.Fatal(err)
	}
	if !s.Get().Reminders[0].IsCompleted {
		t.Error("one-time reminder should complete")
	}
	if len(s.Get().Expenses) != 0 {
		t.Errorf("amount-less reminder produced %d expenses, want 0", len(s.Get().Expenses))
	}

	if err := s.MarkReminderPaid(id); err == nil {
		t.Error("marking a completed reminder paid again should fail")
	}
}

func TestChitEntryThroughStore(t *testing.T) {
	s, _ := newTestStore(t)
	start := Today().AddMonths(-2)
	if err := s.AddChitFund(ChitFund{
		Name:                "Street chit",
		TotalChitAmount:     M(50000),
		MonthlyContribution: M(5000),
		TotalMonths:         10,
		StartDate:           start,
		ChitDay:             10,
	}); err != nil {
		t.Fatal(err)
	}
	chitID := s.Get().ChitFunds[0].ID

	if err := s.PutChitEntry(chitID, ChitFundEntry{Date: start, AmountPaid: M(5000)}); err != nil {
		t.Fatal(err)
	}
	if err := s.PutChitEntry(chitID, ChitFundEntry{Date: Today().AddMonths(2), AmountPaid: M(5000)}); err == nil {
		t.Error("future month entry should be rejected")
	}

	entries := s.Get().ChitFunds[0].Entries
	if len(entries) != 1 || entries[0].ID == "" {
		t.Fatalf("entries = %+v, want one entry with an id", entries)
	}
}

func TestUpdateChitFundRejectsDuplicateMonth(t *testing.T) {
	s, _ := newTestStore(t)
	start := Today().AddMonths(-2)
	if err := s.AddChitFund(ChitFund{
		Name:                "Street chit",
		TotalChitAmount:     M(50000),
		MonthlyContribution: M(5000),
		TotalMonths:         10,
		StartDate:           start,
		ChitDay:             10,
	}); err != nil {
		t.Fatal(err)
	}
	fund := s.Get().ChitFunds[0]

	// A full-replacement update must hold the one-entry-per-month rule just
	// like the entry path does.
	m := start.MonthOf()
	fund.Entries = []ChitFundEntry{
		{ID: "e1", Date: m.Date(1), AmountPaid: M(5000)},
		{ID: "e2", Date: m.Date(15), AmountPaid: M(5000)},
	}
	if err := s.UpdateChitFund(fund.ID, fund); err == nil {
		t.Fatal("two entries in the same month should be rejected")
	}
	if got := len(s.Get().ChitFunds[0].Entries); got != 0 {
		t.Fatalf("rejected update was applied, %d entries stored", got)
	}

	fund.Entries = []ChitFundEntry{
		{ID: "e1", Date: m.Date(1), AmountPaid: M(5000)},
		{ID: "e2", Date: m.Next(1).Date(1), AmountPaid: M(5000)},
	}
	if err := s.UpdateChitFund(fund.ID, fund); err != nil {
		t.Fatal(err)
	}
	if !NewChitStatus(s.Get().ChitFunds[0]).TotalPaid.Equal(M(10000)) {
		t.Errorf("paid = %s, want 10000 over two distinct months", NewChitStatus(s.Get().ChitFunds[0]).TotalPaid)
	}
}

func TestAddCategoryIsOrderedSet(t *testing.T) {
	s, p := newTestStore(t)
	for _, label := range []string{"Side gig", "Dividends", "Side gig"} {
		if err := s.AddIncomeCategory(label); err != nil {
			t.Fatal(err)
		}
	}
	got := s.Get().Settings.CustomIncomeCategories
	if len(got) != 2 || got[0] != "Side gig" || got[1] != "Dividends" {
		t.Errorf("custom categories = %v, want [Side gig Dividends]", got)
	}
	if p.saves != 3 {
		t.Errorf("three mutations issued %d saves, want 3", p.saves)
	}

	all := s.Get().Settings.AllIncomeCategories()
	if all[0] != "Salary" || all[len(all)-1] != "Dividends" {
		t.Errorf("merged categories = %v", all)
	}
}

func TestNotificationHistoryCapped(t *testing.T) {
	s, _ := newTestStore(t)
	snap := s.Get().Clone()
	for i := 0; i < notificationCap+10; i++ {
		notify(snap, AlertNotice, "tick", "tick", time.Now())
	}
	if len(snap.NotificationHistory) != notificationCap {
		t.Errorf("history length = %d, want capped at %d", len(snap.NotificationHistory), notificationCap)
	}
	if snap.NotificationHistory[0].Timestamp.Before(snap.NotificationHistory[1].Timestamp) {
		t.Error("history must be most recent first")
	}
}

func TestResetAndExportImport(t *testing.T) {
	s, p := newTestStore(t)
	if err := s.AddExpense(Expense{Category: "Grocery", Amount: M(800), Date: Today()}); err != nil {
		t.Fatal(err)
	}

	var backup bytes.Buffer
	if err := s.Export(&backup); err != nil {
		t.Fatal(err)
	}

	s.Reset()
	if len(s.Get().Expenses) != 0 {
		t.Fatal("reset should wipe the ledger")
	}

	if err := s.Import(bytes.NewReader(backup.Bytes())); err != nil {
		t.Fatal(err)
	}
	snap := s.Get()
	if len(snap.Expenses) != 1 || snap.Expenses[0].Category != "Grocery" {
		t.Errorf("restored expenses = %+v", snap.Expenses)
	}
	// Restore must not synthesize linked expenses or notifications.
	if len(snap.NotificationHistory) != 0 {
		t.Errorf("restore produced %d notifications, want 0", len(snap.NotificationHistory))
	}
	if p.saves != 3 {
		t.Errorf("add+reset+import issued %d saves, want 3", p.saves)
	}
}

func TestImportRejectsMalformed(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.AddExpense(Expense{Category: "Transport", Amount: M(50), Date: Today()}); err != nil {
		t.Fatal(err)
	}
	before := s.Get()

	for _, doc := range []string{
		`not json`,
		`{"incomes": []}`,
		`{"incomes": {}, "expenses": [], "loans": [], "borrowed": [], "reminders": [], "chitFunds": [], "otherSavings": []}`,
	} {
		if err := s.Import(strings.NewReader(doc)); err == nil {
			t.Errorf("import of %q should fail", doc)
		}
	}
	if s.Get() != before {
		t.Error("failed imports must leave the store untouched")
	}
}
