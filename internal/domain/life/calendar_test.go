package life

import "testing"

func TestCalendar_NextWrapsWeekAndSemester(t *testing.T) {
	c := Calendar{Year: 1, Semester: 1, Week: 20}
	c = c.Next()
	if c != (Calendar{Year: 1, Semester: 2, Week: 1}) {
		t.Fatalf("week wrap: got %+v", c)
	}
	c = Calendar{Year: 1, Semester: 2, Week: 20}
	c = c.Next()
	if c != (Calendar{Year: 2, Semester: 1, Week: 1}) {
		t.Fatalf("semester wrap: got %+v", c)
	}
}

func TestCalendar_StrictlyMonotone(t *testing.T) {
	c := StartCalendar()
	for i := 0; i < WeeksPerSemester*SemestersPerYear*MaxYear+5; i++ {
		next := c.Next()
		if !c.Before(next) {
			t.Fatalf("calendar not strictly increasing: %+v -> %+v", c, next)
		}
		c = next
	}
}

func TestCalendar_GraduationAfterFinalYear(t *testing.T) {
	c := Calendar{Year: MaxYear, Semester: SemestersPerYear, Week: WeeksPerSemester}
	next := c.Next()
	if !next.Graduated() {
		t.Fatalf("expected graduation at %+v", next)
	}
	if c.Graduated() {
		t.Fatalf("final week %+v must not be graduated yet", c)
	}
}

func TestCalendar_AbsoluteWeek(t *testing.T) {
	if got := StartCalendar().AbsoluteWeek(); got != 1 {
		t.Fatalf("absolute week of start = %d, want 1", got)
	}
	c := Calendar{Year: 1, Semester: 2, Week: 1}
	if got := c.AbsoluteWeek(); got != WeeksPerSemester+1 {
		t.Fatalf("absolute week = %d, want %d", got, WeeksPerSemester+1)
	}
	c = Calendar{Year: 2, Semester: 1, Week: 3}
	if got := c.AbsoluteWeek(); got != 2*WeeksPerSemester+3 {
		t.Fatalf("absolute week = %d, want %d", got, 2*WeeksPerSemester+3)
	}
}

func TestCalendar_TurnKeyIsStable(t *testing.T) {
	c := Calendar{Year: 2, Semester: 1, Week: 7}
	if c.TurnKey() != "y2-s1-w7" {
		t.Fatalf("turn key = %q", c.TurnKey())
	}
}
