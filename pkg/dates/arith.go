package dates

import "time"

// BusinessCalendar answers whether a date is a business day in a region.
// Implemented by the calendar package; accepted here as an interface so the
// arithmetic stays pure and testable with fixed tables.
type BusinessCalendar interface {
	IsBusinessDay(d Date, region string) bool
}

// AddMonthsClamped adds n calendar months to d, clamping to the last valid
// day of the target month when d's day does not exist there. Adding one
// month to 31 January yields 28 (or 29) February, never an overflow into
// March. Negative n subtracts with the same clamping.
func AddMonthsClamped(d Date, n int) Date {
	y, m, day := d.Year(), int(d.Month()), d.Day()

	// Normalize target year/month without letting the day overflow.
	m += n
	y += (m - 1) / 12
	m = (m-1)%12 + 1
	if m < 1 {
		m += 12
		y--
	}

	if last := daysIn(y, time.Month(m)); day > last {
		day = last
	}
	return New(y, time.Month(m), day)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddBusinessDays returns the date n business days after d in the given
// region. The count starts from the day after d: a Friday plus two business
// days lands on the following Tuesday when neither Monday nor Tuesday is a
// holiday. n must be non-negative.
func AddBusinessDays(d Date, n int, region string, cal BusinessCalendar) Date {
	out := d
	for remaining := n; remaining > 0; {
		out = out.AddDays(1)
		if cal.IsBusinessDay(out, region) {
			remaining--
		}
	}
	return out
}

// NextBusinessDay returns d itself when d is a business day, otherwise the
// first business day after it.
func NextBusinessDay(d Date, region string, cal BusinessCalendar) Date {
	out := d
	for !cal.IsBusinessDay(out, region) {
		out = out.AddDays(1)
	}
	return out
}
