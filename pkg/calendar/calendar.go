// Package calendar implements year-agnostic (month, day) arithmetic on a
// fixed 366-day cycle. February 29 always occupies day 60, so a birthday on
// that date keeps a stable position whatever the current year is.
package calendar

import (
	"fmt"
	"time"
)

// DaysInCycle is the length of the cyclic calendar, leap day included.
const DaysInCycle = 366

// daysBefore[m-1] is the number of cycle days preceding month m.
var daysBefore = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}

// MonthDay is a calendar date with the year dropped.
type MonthDay struct {
	Month time.Month
	Day   int
}

// FromDate extracts the (month, day) of t in t's location.
func FromDate(t time.Time) MonthDay {
	_, m, d := t.Date()
	return MonthDay{Month: m, Day: d}
}

// Valid reports whether md names a day of the 366-day cycle.
func (md MonthDay) Valid() bool {
	if md.Month < time.January || md.Month > time.December || md.Day < 1 {
		return false
	}
	return md.Day <= daysBefore[md.Month]-daysBefore[md.Month-1]
}

// DayOfYear returns the 1-based position of md in the cycle (1..366).
// The result is undefined for invalid values.
func (md MonthDay) DayOfYear() int {
	return daysBefore[md.Month-1] + md.Day
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// FromDayOfYear is the inverse of DayOfYear. Values outside 1..366 wrap.
func FromDayOfYear(n int) MonthDay {
	n = ((n-1)%DaysInCycle+DaysInCycle)%DaysInCycle + 1
	m := time.January
	for n > daysBefore[m] {
		m++
	}
	return MonthDay{Month: m, Day: n - daysBefore[m-1]}
}

// Distance counts the days from `from` forward to `to`, wrapping from
// December 31 to January 1. The result is in [0, 365].
func Distance(from, to MonthDay) int {
	d := to.DayOfYear() - from.DayOfYear()
	if d < 0 {
		d += DaysInCycle
	}
	return d
}

// Window lists every (month, day) whose distance from `from` is in
// [0, lookahead], in ascending distance order. A negative lookahead yields
// nil; a lookahead past the cycle length yields the whole cycle once.
func Window(from MonthDay, lookahead int) []MonthDay {
	if lookahead < 0 {
		return nil
	}
	if lookahead >= DaysInCycle {
		lookahead = DaysInCycle - 1
	}

	start := from.DayOfYear()
	days := make([]MonthDay, 0, lookahead+1)
	for i := 0; i <= lookahead; i++ {
		days = append(days, FromDayOfYear(start+i))
	}
	return days
}

// In places md in year. February 29 falls back to February 28 when year is
// not a leap year.
func (md MonthDay) In(year int, loc *time.Location) time.Time {
	day := md.Day
	if md.Month == time.February && day == 29 && !IsLeap(year) {
		day = 28
	}
	return time.Date(year, md.Month, day, 0, 0, 0, 0, loc)
}

// IsLeap reports whether year has a February 29.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
