package calendar

import "testing"

func TestDaysInMonthLeapYear(t *testing.T) {
	// The console's leap rule is year%4==0 && year%100!=0 applied to the
	// raw two-digit year, so year 0 (%100==0) is NOT a leap year here,
	// unlike the real Gregorian year 2000.
	if d := DaysInMonth(2, 0); d != 28 {
		t.Fatalf("Feb year=0 = %d days, want 28", d)
	}
	if d := DaysInMonth(2, 4); d != 29 {
		t.Fatalf("Feb year=4 = %d days, want 29", d)
	}
	if d := DaysInMonth(2, 1); d != 28 {
		t.Fatalf("Feb year=1 = %d days, want 28", d)
	}
	if d := DaysInMonth(2, 100); d != 28 {
		t.Fatalf("Feb year=100 (%%100==0, not leap) = %d days, want 28", d)
	}
}

func TestAddDaysRollsMonthYearAndCentury(t *testing.T) {
	d := Date{Year: 25, Month: 12, Day: 31}
	if got := d.AddDays(1); got != (Date{Year: 26, Month: 1, Day: 1}) {
		t.Fatalf("AddDays across year = %+v", got)
	}
	d99 := Date{Year: 99, Month: 12, Day: 31}
	if got := d99.AddDays(1); got != (Date{Year: 0, Month: 1, Day: 1}) {
		t.Fatalf("AddDays century wrap = %+v", got)
	}
}

func TestDate8RoundTrip(t *testing.T) {
	d := Date{Year: 23, Month: 11, Day: 7}
	word := d.Date8(WrapYear93)
	back := DecodeDate8(word)
	if back.Year != d.Year || back.Month != d.Month || back.Day != d.Day {
		t.Fatalf("round trip = %+v, want %+v", back, d)
	}
}

func TestTime9RoundTripPastNoon(t *testing.T) {
	tm := Time{Hour: 14, Minute: 30, Second: 59}
	word := tm.Time9()
	back := DecodeTime9(word)
	if back != tm {
		t.Fatalf("round trip = %+v, want %+v", back, tm)
	}
}

func TestTime9RoundTripBeforeNoon(t *testing.T) {
	tm := Time{Hour: 9, Minute: 5, Second: 0}
	back := DecodeTime9(tm.Time9())
	if back != tm {
		t.Fatalf("round trip = %+v, want %+v", back, tm)
	}
}

func TestWeekdayWrapModesCanDiffer(t *testing.T) {
	d := Date{Year: 0, Month: 1, Day: 1}
	w93 := d.Weekday(WrapYear93)
	w94 := d.Weekday(WrapYear94)
	if w93 == w94 {
		t.Fatalf("Weekday(2000-01-01) = %d under both wrap modes, want them to differ", w93)
	}
}

func TestRangeMomentsCrossProduct(t *testing.T) {
	r := Range{
		Start: Date{Year: 23, Month: 1, Day: 1},
		End:   Date{Year: 23, Month: 1, Day: 2},
		Times: []Time{{Hour: 0, Minute: 0, Second: 0}, {Hour: 12, Minute: 0, Second: 0}},
	}
	moments := r.Moments()
	if len(moments) != 4 {
		t.Fatalf("len(moments) = %d, want 4", len(moments))
	}
	if moments[0].Date != r.Start || moments[len(moments)-1].Date != r.End {
		t.Fatalf("moments not in date-major order: %+v", moments)
	}
}
