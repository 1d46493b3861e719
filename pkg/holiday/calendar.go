package holiday

import "time"

// NonWorkingDayLabel is the generic display label for dates that are
// non-working without a more specific reason (weekends, custom holidays
// without a comment).
const NonWorkingDayLabel = "Non-working day"

// MonthCalendar classifies every date of one month as working or non-working
// and carries a display label per non-working date. It is built once and not
// mutated afterwards.
type MonthCalendar struct {
	month      Month
	dates      []time.Time
	nonWorking map[time.Time]bool
	labels     map[time.Time]string
}

// BuildMonthCalendar merges national holidays, the given custom holidays, and
// weekends into a non-working classification for the month. Label precedence
// per date: national holiday name, then custom holiday comment, then the
// generic label.
func BuildMonthCalendar(month Month, customHolidays []CustomHoliday) MonthCalendar {
	dates := month.Days()
	start := dates[0]
	end := dates[len(dates)-1]

	nonWorking := make(map[time.Time]bool)
	labels := make(map[time.Time]string)

	// Weekends carry the generic label, the lowest precedence.
	for _, d := range dates {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			nonWorking[d] = true
			labels[d] = NonWorkingDayLabel
		}
	}

	// Custom holidays; an empty comment falls back to the generic label.
	for _, custom := range customHolidays {
		d := dateOnly(custom.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		nonWorking[d] = true
		if custom.Comment != "" {
			labels[d] = custom.Comment
		} else if labels[d] == "" {
			labels[d] = NonWorkingDayLabel
		}
	}

	// National holidays win over everything. A month never spans a year
	// boundary, but the year loop keeps the range logic uniform.
	for year := start.Year(); year <= end.Year(); year++ {
		for _, national := range NationalHolidays(year) {
			if national.Date.Before(start) || national.Date.After(end) {
				continue
			}
			nonWorking[national.Date] = true
			labels[national.Date] = national.Name
		}
	}

	return MonthCalendar{month: month, dates: dates, nonWorking: nonWorking, labels: labels}
}

// Month returns the month this calendar describes.
func (c MonthCalendar) Month() Month {
	return c.month
}

// Dates returns every date of the month in order.
func (c MonthCalendar) Dates() []time.Time {
	return append([]time.Time(nil), c.dates...)
}

// IsNonWorking reports whether the given date is a holiday or weekend.
func (c MonthCalendar) IsNonWorking(date time.Time) bool {
	return c.nonWorking[dateOnly(date)]
}

// Label returns the display label for a non-working date, or an empty string
// for working days. Labels never affect validation.
func (c MonthCalendar) Label(date time.Time) string {
	return c.labels[dateOnly(date)]
}
