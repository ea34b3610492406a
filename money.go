package ledger

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted as bare JSON numbers in the snapshot document.
	decimal.MarshalJSONWithoutQuotes = true
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary amount. The whole ledger lives in the single
// currency declared in Settings, so Money carries no currency of its own and
// persists as a plain number.
type Money struct {
	value decimal.Decimal
}

// M builds a Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal amount from its string form.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }

// MulInt scales the amount by an integer count (EMI x tenure months).
func (m Money) MulInt(i int) Money { return Money{value: m.value.Mul(decimal.NewFromInt(int64(i)))} }

// String returns the bare decimal representation (what is persisted).
func (m Money) String() string { return m.value.String() }

// Display formats the amount with the given ISO currency code, using the
// currency's own symbol and fraction rules.
func (m Money) Display(currency string) string {
	cur := *money.New(0, currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// ratio returns 100*m/n as a Percent, or 0 when n is zero. Zero denominators
// are data-entry states that must still render, not errors.
func (m Money) ratio(n Money) Percent {
	if n.IsZero() {
		return 0
	}
	p, _ := m.value.Mul(decimal.NewFromInt(100)).Div(n.value).Float64()
	return Percent(p)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

func (m *Money) UnmarshalJSON(bytes []byte) error {
	return m.value.UnmarshalJSON(bytes)
}

// maxZero clamps negative amounts to zero.
func maxZero(m Money) Money {
	if m.IsNegative() {
		return Money{}
	}
	return m
}

// Percent is a progress value in [0, 100].
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// capped clamps the percent to 100.
func (p Percent) capped() Percent {
	if p > 100 {
		return 100
	}
	return p
}
