package ledger

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 form.
const DateFormat = "2006-01-02"

// MonthFormat is the format used for month keys.
const MonthFormat = "2006-01"

// Date represents a calendar date with day-level granularity.
// There is no time-of-day semantics anywhere in the ledger.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// AddMonths returns the date i calendar months later, on the same day of
// month. When the target month is shorter, the day is clamped to its last
// day (Jan 31 + 1 month is Feb 28, not Mar 3).
func (d Date) AddMonths(i int) Date { return d.MonthOf().Next(i).Date(d.d) }

// AddYears returns the date i calendar years later, day clamped the same way.
func (d Date) AddYears(i int) Date { return NewMonth(d.y+i, d.m).Date(d.d) }

// MonthOf returns the calendar month containing d.
func (d Date) MonthOf() Month { return Month{d.y, d.m} }

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)

// ParseDate parses a Date from a string. It accepts the ISO form (lenient,
// "2025-7-1" works) and relative forms like "-1d", "+2w", "-3m", "+1y".
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	if str == "0d" {
		return Today(), nil
	}

	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			// This should not happen given the regex
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return today.AddMonths(num), nil
		case "y":
			return today.AddYears(num), nil
		}
	}

	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshal a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*d = Date{}
		return nil
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*d = NewDate(on.Date())
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshal/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// Month represents a calendar month. It is the unit of loan amortization and
// chit fund scheduling, and its key form is YYYY-MM.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month (month 13 of a year is January of the next).
func NewMonth(year int, month time.Month) Month {
	d := NewDate(year, month, 1)
	return Month{d.y, d.m}
}

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Month returns the month-of-year.
func (m Month) Month() time.Month { return m.m }

// Key returns the YYYY-MM key of the month.
func (m Month) Key() string { return m.first().Format(MonthFormat) }

func (m Month) String() string { return m.Key() }

func (m Month) first() Date { return NewDate(m.y, m.m, 1) }

// Next returns the month i calendar months later (i may be negative).
func (m Month) Next(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Days returns the number of days in the month.
func (m Month) Days() int { return NewDate(m.y, m.m+1, 0).Day() }

// Date anchors a day-of-month inside this month. Days beyond the month's end
// are clamped to its last day, so a due day of 31 lands on Feb 28.
func (m Month) Date(day int) Date {
	if day < 1 {
		day = 1
	}
	if last := m.Days(); day > last {
		day = last
	}
	return NewDate(m.y, m.m, day)
}

// Contains reports whether the date falls inside this month.
func (m Month) Contains(d Date) bool { return d.y == m.y && d.m == m.m }

// Before reports whether m is strictly before x.
func (m Month) Before(x Month) bool { return m.y < x.y || (m.y == x.y && m.m < x.m) }

// After reports whether m is strictly after x.
func (m Month) After(x Month) bool { return x.Before(m) }

// ParseMonth parses a YYYY-MM month key.
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse(MonthFormat, strings.TrimSpace(str))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	y, mo, _ := on.Date()
	return Month{y, mo}, nil
}

// Frequency is the recurrence unit of a financial reminder.
type Frequency string

const (
	OneTime Frequency = "One-time"
	Weekly  Frequency = "Weekly"
	Monthly Frequency = "Monthly"
	Yearly  Frequency = "Yearly"
)

// IsValid reports whether f is one of the known frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case OneTime, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Next advances a date by one recurrence unit. For OneTime the date is
// returned unchanged: a one-time reminder completes instead of advancing.
func (f Frequency) Next(d Date) Date {
	switch f {
	case Weekly:
		return d.Add(7)
	case Monthly:
		return d.AddMonths(1)
	case Yearly:
		return d.AddYears(1)
	default:
		return d
	}
}

// ParseFrequency parses a frequency name, case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one-time", "once", "onetime":
		return OneTime, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return "", fmt.Errorf("unknown frequency %q", s)
	}
}
