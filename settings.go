package ledger

import "slices"

// addLabel inserts a label into an insertion-ordered, case-sensitively
// unique list. Adding an existing label is a no-op.
func addLabel(list []string, label string) []string {
	if slices.Contains(list, label) {
		return list
	}
	return append(list, label)
}

// dedupLabels rebuilds a list keeping the first occurrence of each label.
func dedupLabels(list []string) []string {
	out := make([]string, 0, len(list))
	for _, l := range list {
		out = addLabel(out, l)
	}
	return out
}

// union returns base followed by the customs not already present.
func union(base, custom []string) []string {
	out := append([]string{}, base...)
	for _, l := range custom {
		out = addLabel(out, l)
	}
	return out
}

// AllIncomeCategories returns the built-in income categories extended with
// the user's custom labels.
func (s Settings) AllIncomeCategories() []string {
	return union(IncomeCategories, s.CustomIncomeCategories)
}

// AllExpenseCategories returns the built-in expense categories extended with
// the user's custom labels.
func (s Settings) AllExpenseCategories() []string {
	return union(ExpenseCategories, s.CustomExpenseCategories)
}

// AllReminderTypes returns the built-in reminder types extended with the
// user's custom labels.
func (s Settings) AllReminderTypes() []string {
	return union(ReminderTypes, s.CustomReminderTypes)
}
