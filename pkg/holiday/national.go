package holiday

import (
	"sort"
	"time"
)

// SubstituteHolidayName labels the Monday added when a national holiday
// falls on a Sunday.
const SubstituteHolidayName = "Substitute Holiday"

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

var fixedHolidays = []fixedHoliday{
	{time.January, 1, "New Year's Day"},
	{time.February, 11, "National Foundation Day"},
	{time.February, 23, "Emperor's Birthday"},
	{time.April, 29, "Showa Day"},
	{time.May, 3, "Constitution Memorial Day"},
	{time.May, 4, "Greenery Day"},
	{time.May, 5, "Children's Day"},
	{time.August, 11, "Mountain Day"},
	{time.November, 3, "Culture Day"},
	{time.November, 23, "Labor Thanksgiving Day"},
}

type nthWeekdayHoliday struct {
	month   time.Month
	weekday time.Weekday
	n       int
	name    string
}

var nthWeekdayHolidays = []nthWeekdayHoliday{
	{time.January, time.Monday, 2, "Coming of Age Day"},
	{time.July, time.Monday, 3, "Marine Day"},
	{time.September, time.Monday, 3, "Respect for the Aged Day"},
	{time.October, time.Monday, 2, "Sports Day"},
}

type equinoxDays struct {
	vernal   int
	autumnal int
}

// equinoxTable holds the observed equinox days for the years we care about.
// Years outside the table get the fixed fallback days below; those results
// are approximate, not astronomical.
var equinoxTable = map[int]equinoxDays{
	2020: {vernal: 20, autumnal: 22},
	2021: {vernal: 20, autumnal: 23},
	2022: {vernal: 21, autumnal: 23},
	2023: {vernal: 21, autumnal: 23},
	2024: {vernal: 20, autumnal: 22},
}

const (
	fallbackVernalDay   = 21
	fallbackAutumnalDay = 23
)

// NthWeekday returns the date of the Nth occurrence of the given weekday in
// the given month, e.g. the second Monday of January.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// NationalHolidays returns all Japanese national holidays of the given year,
// sorted by date. When two holidays coincide on one date, the first computed
// name wins. For every holiday landing on a Sunday the following Monday is
// added as a substitute holiday; that rule is applied once, against the
// pre-substitution set only.
func NationalHolidays(year int) []Holiday {
	names := make(map[time.Time]string, 20)
	dates := make([]time.Time, 0, 20)
	add := func(d time.Time, name string) {
		if _, exists := names[d]; exists {
			return
		}
		names[d] = name
		dates = append(dates, d)
	}

	for _, h := range fixedHolidays {
		add(time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC), h.name)
	}
	for _, h := range nthWeekdayHolidays {
		add(NthWeekday(year, h.month, h.weekday, h.n), h.name)
	}

	equinoxes, known := equinoxTable[year]
	if !known {
		equinoxes = equinoxDays{vernal: fallbackVernalDay, autumnal: fallbackAutumnalDay}
	}
	add(time.Date(year, time.March, equinoxes.vernal, 0, 0, 0, 0, time.UTC), "Vernal Equinox Day")
	add(time.Date(year, time.September, equinoxes.autumnal, 0, 0, 0, 0, time.UTC), "Autumnal Equinox Day")

	// Substitute pass over a snapshot, so substitute Mondays are never
	// themselves shifted again.
	for _, d := range append([]time.Time(nil), dates...) {
		if d.Weekday() == time.Sunday {
			add(d.AddDate(0, 0, 1), SubstituteHolidayName)
		}
	}

	holidays := make([]Holiday, 0, len(dates))
	for _, d := range dates {
		holidays = append(holidays, Holiday{Date: d, Name: names[d]})
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}
