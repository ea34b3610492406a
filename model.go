package ledger

import "time"

// Profile holds the user's identity. The date of birth only serves as a
// recovery secret for the app lock.
type Profile struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
	DOB          Date   `json:"dob,omitzero"`
}

// Settings holds feature toggles and the user-defined category label lists.
// Labels are case-sensitively unique within each list, insertion ordered.
type Settings struct {
	Currency                string   `json:"currency"`
	AppLockEnabled          bool     `json:"appLockEnabled"`
	AppLockPIN              string   `json:"appLockPin"`
	BiometricsEnabled       bool     `json:"biometricsEnabled"`
	Theme                   string   `json:"theme"`
	HasCompletedOnboarding  bool     `json:"hasCompletedOnboarding"`
	NotificationsEnabled    bool     `json:"notificationsEnabled"`
	CustomIncomeCategories  []string `json:"customIncomeCategories"`
	CustomExpenseCategories []string `json:"customExpenseCategories"`
	CustomReminderTypes     []string `json:"customReminderTypes"`
}

// Built-in category sets. Custom labels from Settings extend them.
var (
	IncomeCategories  = []string{"Salary", "Business", "Freelance", "Investment", "Other"}
	ExpenseCategories = []string{"Rent", "Utilities", "Grocery", "Transport", "Insurance", "Subscriptions", "Other"}
	ReminderTypes     = []string{"Payment", "Subscription", "Credit Card", "Rent", "Chit Fund", "Other"}
)

// Income is a single income record.
type Income struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Amount      Money     `json:"amount"`
	Date        Date      `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Expense is a single expense record.
type Expense struct {
	ID       string `json:"id"`
	Amount   Money  `json:"amount"`
	Date     Date   `json:"date"`
	Category string `json:"category"`
	Notes    string `json:"notes,omitempty"`
}

// LoanType tags a loan.
type LoanType string

const (
	PersonalLoan  LoanType = "Personal"
	VehicleLoan   LoanType = "Vehicle"
	HomeLoan      LoanType = "Home"
	EducationLoan LoanType = "Education"
	OtherLoan     LoanType = "Other"
)

// LoanPayment is one installment paid against a loan. A month of the loan
// timeline counts as paid when a payment is dated inside that month.
type LoanPayment struct {
	ID     string `json:"id"`
	Amount Money  `json:"amount"`
	Date   Date   `json:"date"`
}

// Loan is a bank loan amortized in fixed monthly installments.
//
// Realized progress is always derived by summing payments; there is no
// stored "amount paid" counter to drift out of sync with the payment list.
type Loan struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        LoanType      `json:"type"`
	TotalAmount Money         `json:"totalAmount"` // principal
	StartDate   Date          `json:"startDate"`
	EndDate     Date          `json:"endDate"` // recomputed from startDate and tenure on every write
	EMIAmount   Money         `json:"emiAmount"`
	DueDay      int           `json:"dueDay"`
	TenureMonth int           `json:"tenureMonths"`
	Payments    []LoanPayment `json:"payments"`
	Notes       string        `json:"notes,omitempty"`
}

// Payment is one repayment against an informal debt, optionally backed by
// proof images.
type Payment struct {
	ID        string   `json:"id"`
	Amount    Money    `json:"amount"`
	Date      Date     `json:"date"`
	ImageURLs []string `json:"imageUrls,omitempty"`
}

// BorrowedMoney is an informal debt owed to a person.
//
// TotalPaid is a cache of the sum of Payments, recomputed on every mutation.
// It is never an independently editable value.
type BorrowedMoney struct {
	ID          string    `json:"id"`
	PersonName  string    `json:"personName"`
	TotalAmount Money     `json:"totalAmount"`
	TotalPaid   Money     `json:"totalPaid"`
	StartDate   Date      `json:"startDate"`
	Payments    []Payment `json:"payments"`
	Notes       string    `json:"notes,omitempty"`
}

// ChitFundEntry records one month of a rotating-savings fund: the
// contribution paid, and whether the fund was drawn ("taken") that month.
// At most one entry exists per calendar month per fund.
type ChitFundEntry struct {
	ID             string `json:"id"`
	Date           Date   `json:"date"`
	IsTaken        bool   `json:"isTaken"`
	TakenBy        string `json:"takenBy,omitempty"`
	AmountPaid     Money  `json:"amountPaid"`
	AmountReceived Money  `json:"amountReceived"`
	WinningBid     Money  `json:"winningBid,omitzero"`
	Notes          string `json:"notes,omitempty"`
}

// ChitFund is a rotating-savings fund with a fixed monthly contribution and
// a monthly draw on ChitDay.
type ChitFund struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	TotalChitAmount     Money           `json:"totalChitAmount"` // maturity goal
	MonthlyContribution Money           `json:"monthlyContribution"`
	TotalMonths         int             `json:"totalMonths"`
	StartDate           Date            `json:"startDate"`
	ChitDay             int             `json:"chitDay"`
	Entries             []ChitFundEntry `json:"entries"`
}

// SavingType tags a discretionary saving bucket.
type SavingType string

const (
	DailySaving    SavingType = "Daily"
	MonthlySaving  SavingType = "Monthly"
	PiggyBank      SavingType = "Piggy bank"
	GoldSaving     SavingType = "Gold"
	InformalSaving SavingType = "Informal"
	OtherSavingT   SavingType = "Other"
)

// OtherSavingEntry is one deposit into a saving bucket.
type OtherSavingEntry struct {
	ID     string `json:"id"`
	Amount Money  `json:"amount"`
	Date   Date   `json:"date"`
	Notes  string `json:"notes,omitempty"`
}

// OtherSaving is a monotonically growing deposit ledger; there is no
// withdrawal semantics.
type OtherSaving struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Type    SavingType         `json:"type"`
	Entries []OtherSavingEntry `json:"entries"`
}

// FinancialReminder is a date-based reminder. Marking a recurring reminder
// paid advances both dates by one frequency unit; a one-time reminder
// completes instead.
type FinancialReminder struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Category     string    `json:"category"`
	Title        string    `json:"title"`
	Amount       Money     `json:"amount,omitzero"`
	DueDate      Date      `json:"dueDate"`
	ReminderDate Date      `json:"reminderDate"`
	Frequency    Frequency `json:"frequency"`
	IsCompleted  bool      `json:"isCompleted"`
	Notes        string    `json:"notes,omitempty"`
}

// NotificationKind classifies a notification log entry.
type NotificationKind string

const (
	PaymentNotice NotificationKind = "payment"
	AlertNotice   NotificationKind = "alert"
	SuccessNotice NotificationKind = "success"
)

// NotificationEntry is one human-readable event in the capped, append-only
// notification history. Nothing else is ever computed from it.
type NotificationEntry struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Type      NotificationKind `json:"type"`
}

// notificationCap bounds the notification history length.
const notificationCap = 50

// Snapshot is the single source of truth: the full ledger state held in
// memory by the Store and persisted as one document after every mutation.
type Snapshot struct {
	Profile             Profile             `json:"profile"`
	Settings            Settings            `json:"settings"`
	Incomes             []Income            `json:"incomes"`
	Expenses            []Expense           `json:"expenses"`
	Loans               []Loan              `json:"loans"`
	Borrowed            []BorrowedMoney     `json:"borrowed"`
	Reminders           []FinancialReminder `json:"reminders"`
	ChitFunds           []ChitFund          `json:"chitFunds"`
	OtherSavings        []OtherSaving       `json:"otherSavings"`
	NotificationHistory []NotificationEntry `json:"notificationHistory"`
}

// NewSnapshot returns the documented default snapshot: empty collections,
// onboarding incomplete, notifications on.
func NewSnapshot() *Snapshot {
	s := &Snapshot{
		Settings: Settings{
			Currency:             "INR",
			Theme:                "light",
			NotificationsEnabled: true,
		},
	}
	s.normalize()
	return s
}

// normalize fills in defaults for fields a prior-version snapshot may lack.
// This is forward migration, not failure handling.
func (s *Snapshot) normalize() {
	if s.Settings.Currency == "" {
		s.Settings.Currency = "INR"
	}
	if s.Settings.Theme == "" {
		s.Settings.Theme = "light"
	}
	if s.Settings.CustomIncomeCategories == nil {
		s.Settings.CustomIncomeCategories = []string{}
	}
	if s.Settings.CustomExpenseCategories == nil {
		s.Settings.CustomExpenseCategories = []string{}
	}
	if s.Settings.CustomReminderTypes == nil {
		s.Settings.CustomReminderTypes = []string{}
	}
	if s.Incomes == nil {
		s.Incomes = []Income{}
	}
	if s.Expenses == nil {
		s.Expenses = []Expense{}
	}
	if s.Loans == nil {
		s.Loans = []Loan{}
	}
	if s.Borrowed == nil {
		s.Borrowed = []BorrowedMoney{}
	}
	if s.Reminders == nil {
		s.Reminders = []FinancialReminder{}
	}
	if s.ChitFunds == nil {
		s.ChitFunds = []ChitFund{}
	}
	if s.OtherSavings == nil {
		s.OtherSavings = []OtherSaving{}
	}
	if s.NotificationHistory == nil {
		s.NotificationHistory = []NotificationEntry{}
	}
	for i := range s.Loans {
		if s.Loans[i].Payments == nil {
			s.Loans[i].Payments = []LoanPayment{}
		}
		s.Loans[i].EndDate = loanEndDate(s.Loans[i])
	}
	for i := range s.Borrowed {
		if s.Borrowed[i].Payments == nil {
			s.Borrowed[i].Payments = []Payment{}
		}
		s.Borrowed[i].TotalPaid = sumPayments(s.Borrowed[i].Payments)
	}
	for i := range s.ChitFunds {
		if s.ChitFunds[i].Entries == nil {
			s.ChitFunds[i].Entries = []ChitFundEntry{}
		}
	}
	for i := range s.OtherSavings {
		if s.OtherSavings[i].Entries == nil {
			s.OtherSavings[i].Entries = []OtherSavingEntry{}
		}
	}
}

// Clone returns a deep copy of the snapshot. Mutations are applied to a
// clone so a failing transform leaves the store's snapshot untouched.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Settings.CustomIncomeCategories = append([]string{}, s.Settings.CustomIncomeCategories...)
	c.Settings.CustomExpenseCategories = append([]string{}, s.Settings.CustomExpenseCategories...)
	c.Settings.CustomReminderTypes = append([]string{}, s.Settings.CustomReminderTypes...)
	c.Incomes = append([]Income{}, s.Incomes...)
	c.Expenses = append([]Expense{}, s.Expenses...)
	c.Reminders = append([]FinancialReminder{}, s.Reminders...)
	c.NotificationHistory = append([]NotificationEntry{}, s.NotificationHistory...)
	c.Loans = make([]Loan, len(s.Loans))
	for i, l := range s.Loans {
		l.Payments = append([]LoanPayment{}, l.Payments...)
		c.Loans[i] = l
	}
	c.Borrowed = make([]BorrowedMoney, len(s.Borrowed))
	for i, b := range s.Borrowed {
		b.Payments = make([]Payment, len(b.Payments))
		for j, p := range s.Borrowed[i].Payments {
			p.ImageURLs = append([]string{}, p.ImageURLs...)
			b.Payments[j] = p
		}
		c.Borrowed[i] = b
	}
	c.ChitFunds = make([]ChitFund, len(s.ChitFunds))
	for i, f := range s.ChitFunds {
		f.Entries = append([]ChitFundEntry{}, f.Entries...)
		c.ChitFunds[i] = f
	}
	c.OtherSavings = make([]OtherSaving, len(s.OtherSavings))
	for i, o := range s.OtherSavings {
		o.Entries = append([]OtherSavingEntry{}, o.Entries...)
		c.OtherSavings[i] = o
	}
	return &c
}

// sumPayments is the cache-consistency source of truth for BorrowedMoney.
func sumPayments(payments []Payment) Money {
	var total Money
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
