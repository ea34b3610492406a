package ledger

import "fmt"

// ValidationError is the rejection of a mutation before it touches the
// snapshot. The store is guaranteed unchanged when one is returned; the
// Reason is meant to be shown to the user for re-prompting.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// invalidf builds a ValidationError.
func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// requireAmount rejects non-positive amounts.
func requireAmount(what string, m Money) error {
	if !m.IsPositive() {
		return invalidf("%s must be greater than zero, got %s", what, m)
	}
	return nil
}

// requireText rejects blank required fields.
func requireText(what, s string) error {
	if s == "" {
		return invalidf("%s cannot be empty", what)
	}
	return nil
}

// requireDay rejects a day-of-month outside [1, 31].
func requireDay(what string, day int) error {
	if day < 1 || day > 31 {
		return invalidf("%s must be between 1 and 31, got %d", what, day)
	}
	return nil
}
