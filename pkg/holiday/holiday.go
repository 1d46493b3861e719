package holiday

import (
	"errors"
	"fmt"
	"time"
)

// Holiday is a single dated holiday with its display name.
type Holiday struct {
	Date time.Time
	Name string
}

// CustomHoliday is an operation-specific non-working day maintained through
// the master-data screens, independent of the national holiday calendar.
type CustomHoliday struct {
	Id      int
	Date    time.Time
	Comment string
}

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

var ErrInvalidMonth = errors.New("invalid month format")

// MonthFromString parses a "yyyy-MM" string into a Month.
// Returns ErrInvalidMonth when the input does not describe a real month;
// callers are expected to fall back to the current month.
func MonthFromString(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month containing the given time.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns the first day of the month at midnight UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month, computed as the first day of the
// next month minus one day.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// Days returns every date of the month in order.
func (m Month) Days() []time.Time {
	start := m.Start()
	end := m.End()
	days := make([]time.Time, 0, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// dateOnly strips the time-of-day component so dates can be used as map keys
// regardless of how the caller constructed them.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
