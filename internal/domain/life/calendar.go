package life

import "fmt"

// Next returns the following week with carry propagation. Week wraps at
// WeeksPerSemester, Semester wraps at SemestersPerYear. Year keeps counting
// past MaxYear so callers can detect graduation on the returned tuple.
func (c Calendar) Next() Calendar {
	next := c
	next.Week++
	if next.Week > WeeksPerSemester {
		next.Week = 1
		next.Semester++
	}
	if next.Semester > SemestersPerYear {
		next.Semester = 1
		next.Year++
	}
	return next
}

// Graduated reports the terminal condition: the calendar has run past the
// final academic year.
func (c Calendar) Graduated() bool {
	return c.Year > MaxYear
}

// AbsoluteWeek is the number of weeks elapsed since the start of year 1,
// counting the current week. Used for periodic accrual cadence.
func (c Calendar) AbsoluteWeek() int {
	return ((c.Year-1)*SemestersPerYear+(c.Semester-1))*WeeksPerSemester + c.Week
}

// Before orders calendars lexicographically on (year, semester, week).
func (c Calendar) Before(o Calendar) bool {
	if c.Year != o.Year {
		return c.Year < o.Year
	}
	if c.Semester != o.Semester {
		return c.Semester < o.Semester
	}
	return c.Week < o.Week
}

// TurnKey is a stable identifier for the turn that advanced the calendar to
// this tuple, used as an idempotency key for turn executions.
func (c Calendar) TurnKey() string {
	return fmt.Sprintf("y%d-s%d-w%d", c.Year, c.Semester, c.Week)
}

func StartCalendar() Calendar {
	return Calendar{Year: 1, Semester: 1, Week: 1}
}
