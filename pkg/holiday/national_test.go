package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func holidayNames(holidays []Holiday) map[time.Time]string {
	names := make(map[time.Time]string, len(holidays))
	for _, h := range holidays {
		names[h.Date] = h.Name
	}
	return names
}

func TestNthWeekday(t *testing.T) {
	t.Run("should find the second Monday of January 2024", func(t *testing.T) {
		assert.Equal(t, date(2024, time.January, 8), NthWeekday(2024, time.January, time.Monday, 2))
	})

	t.Run("should find the first occurrence when the month starts on that weekday", func(t *testing.T) {
		// 2024-07-01 is a Monday
		assert.Equal(t, date(2024, time.July, 1), NthWeekday(2024, time.July, time.Monday, 1))
		assert.Equal(t, date(2024, time.July, 15), NthWeekday(2024, time.July, time.Monday, 3))
	})

	t.Run("should find the third Monday of September 2025", func(t *testing.T) {
		assert.Equal(t, date(2025, time.September, 15), NthWeekday(2025, time.September, time.Monday, 3))
	})
}

func TestNationalHolidays_Cardinality(t *testing.T) {
	// Sixteen base holidays plus one substitute Monday per base holiday
	// falling on a Sunday. A year can put up to five base holidays on a
	// Sunday (2024 does), so the ceiling is 21.
	for year := 2018; year <= 2032; year++ {
		holidays := NationalHolidays(year)
		assert.GreaterOrEqual(t, len(holidays), 16, "year %d", year)
		assert.LessOrEqual(t, len(holidays), 21, "year %d", year)
	}
}

func TestNationalHolidays_FixedDates(t *testing.T) {
	names := holidayNames(NationalHolidays(2024))

	assert.Equal(t, "New Year's Day", names[date(2024, time.January, 1)])
	assert.Equal(t, "National Foundation Day", names[date(2024, time.February, 11)])
	assert.Equal(t, "Emperor's Birthday", names[date(2024, time.February, 23)])
	assert.Equal(t, "Showa Day", names[date(2024, time.April, 29)])
	assert.Equal(t, "Constitution Memorial Day", names[date(2024, time.May, 3)])
	assert.Equal(t, "Greenery Day", names[date(2024, time.May, 4)])
	assert.Equal(t, "Children's Day", names[date(2024, time.May, 5)])
	assert.Equal(t, "Mountain Day", names[date(2024, time.August, 11)])
	assert.Equal(t, "Culture Day", names[date(2024, time.November, 3)])
	assert.Equal(t, "Labor Thanksgiving Day", names[date(2024, time.November, 23)])
}

func TestNationalHolidays_NthWeekdayHolidays(t *testing.T) {
	names := holidayNames(NationalHolidays(2024))

	assert.Equal(t, "Coming of Age Day", names[date(2024, time.January, 8)])
	assert.Equal(t, "Marine Day", names[date(2024, time.July, 15)])
	assert.Equal(t, "Respect for the Aged Day", names[date(2024, time.September, 16)])
	assert.Equal(t, "Sports Day", names[date(2024, time.October, 14)])
}

func TestNationalHolidays_Equinoxes(t *testing.T) {
	t.Run("should use the lookup table for known years", func(t *testing.T) {
		names := holidayNames(NationalHolidays(2024))
		assert.Equal(t, "Vernal Equinox Day", names[date(2024, time.March, 20)])
		assert.Equal(t, "Autumnal Equinox Day", names[date(2024, time.September, 22)])

		names = holidayNames(NationalHolidays(2022))
		assert.Equal(t, "Vernal Equinox Day", names[date(2022, time.March, 21)])
		assert.Equal(t, "Autumnal Equinox Day", names[date(2022, time.September, 23)])
	})

	t.Run("should fall back to fixed days for years outside the table", func(t *testing.T) {
		// 2025 is not in the lookup table, so the result is the fixed
		// approximation (March 21 / September 23) rather than the
		// astronomical equinox (the real 2025 vernal equinox is March 20).
		names := holidayNames(NationalHolidays(2025))
		assert.Equal(t, "Vernal Equinox Day", names[date(2025, time.March, 21)])
		assert.Equal(t, "Autumnal Equinox Day", names[date(2025, time.September, 23)])
		assert.NotContains(t, names, date(2025, time.March, 20))
	})
}

func TestNationalHolidays_SubstituteRule(t *testing.T) {
	t.Run("should add the following Monday when a holiday falls on Sunday", func(t *testing.T) {
		// 2023-01-01 is a Sunday.
		names := holidayNames(NationalHolidays(2023))
		assert.Equal(t, "New Year's Day", names[date(2023, time.January, 1)])
		assert.Equal(t, SubstituteHolidayName, names[date(2023, time.January, 2)])
	})

	t.Run("should substitute Children's Day when it closes Golden Week on a Sunday", func(t *testing.T) {
		// 2030-05-05 is a Sunday and 2030-05-06 a free Monday.
		names := holidayNames(NationalHolidays(2030))
		assert.Equal(t, "Children's Day", names[date(2030, time.May, 5)])
		assert.Equal(t, SubstituteHolidayName, names[date(2030, time.May, 6)])
	})

	t.Run("should not add a substitute when the Monday is already a holiday", func(t *testing.T) {
		// 2025-05-04 (Greenery Day) is a Sunday, but the following Monday is
		// already Children's Day, so no substitute is added for it.
		names := holidayNames(NationalHolidays(2025))
		assert.Equal(t, "Greenery Day", names[date(2025, time.May, 4)])
		assert.Equal(t, "Children's Day", names[date(2025, time.May, 5)])
		assert.NotContains(t, names, date(2025, time.May, 6))
	})

	t.Run("should keep each date unique", func(t *testing.T) {
		for year := 2018; year <= 2032; year++ {
			holidays := NationalHolidays(year)
			seen := make(map[time.Time]bool, len(holidays))
			for _, h := range holidays {
				assert.False(t, seen[h.Date], "duplicate %s in year %d", h.Date, year)
				seen[h.Date] = true
			}
		}
	})

	t.Run("should apply the rule once, never to substitute Mondays themselves", func(t *testing.T) {
		// A substitute Monday can by construction never be a Sunday, but the
		// single-pass rule also means the added Monday is never re-examined.
		holidays := NationalHolidays(2023)
		for _, h := range holidays {
			if h.Name == SubstituteHolidayName {
				assert.Equal(t, time.Monday, h.Date.Weekday())
			}
		}
	})
}

func TestNationalHolidays_Sorted(t *testing.T) {
	holidays := NationalHolidays(2024)
	require.NotEmpty(t, holidays)
	for i := 1; i < len(holidays); i++ {
		assert.True(t, holidays[i-1].Date.Before(holidays[i].Date))
	}
}

func TestNationalHolidays_Deterministic(t *testing.T) {
	assert.Equal(t, NationalHolidays(2024), NationalHolidays(2024))
}
