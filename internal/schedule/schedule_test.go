package schedule

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueOn_Daily(t *testing.T) {
	dates := []time.Time{
		day(2024, time.January, 1),
		day(2024, time.February, 29),
		day(2024, time.December, 31),
		day(2025, time.June, 15),
	}

	for _, d := range dates {
		if !DueOn("daily", "", d) {
			t.Errorf("DueOn(daily, %s) = false, want true", d.Format(DayFormat))
		}
	}
}

func TestDueOn_Monthly(t *testing.T) {
	dates := []time.Time{
		day(2024, time.January, 1),
		day(2024, time.July, 31),
		day(2025, time.February, 28),
	}

	for _, d := range dates {
		if !DueOn("monthly", "", d) {
			t.Errorf("DueOn(monthly, %s) = false, want true", d.Format(DayFormat))
		}
	}
}

func TestDueOn_WeekdaysMask(t *testing.T) {
	// Mon/Wed/Fri on; 2024-01-01 is a Monday
	const mask = "1,0,1,0,1,0,0"

	cases := []struct {
		date time.Time
		want bool
	}{
		{day(2024, time.January, 1), true},  // Monday
		{day(2024, time.January, 2), false}, // Tuesday
		{day(2024, time.January, 3), true},  // Wednesday
		{day(2024, time.January, 4), false}, // Thursday
		{day(2024, time.January, 5), true},  // Friday
		{day(2024, time.January, 6), false}, // Saturday
		{day(2024, time.January, 7), false}, // Sunday
	}

	for _, tc := range cases {
		got := DueOn("weekdays", mask, tc.date)
		if got != tc.want {
			t.Errorf("DueOn(weekdays, %q, %s %s) = %v, want %v",
				mask, tc.date.Format(DayFormat), tc.date.Weekday(), got, tc.want)
		}
	}
}

func TestDueOn_WeekdaysMalformedMask(t *testing.T) {
	masks := []string{
		"",                // missing
		"1,0,1",           // too short
		"1,0,1,0,1,0",     // six entries
		"1,0,1,0,1,0,0,1", // eight entries
	}

	for _, mask := range masks {
		for d := 1; d <= 7; d++ {
			when := day(2024, time.January, d)
			if DueOn("weekdays", mask, when) {
				t.Errorf("DueOn(weekdays, %q, %s) = true, want false", mask, when.Format(DayFormat))
			}
		}
	}
}

func TestDueOn_MaskWithSpaces(t *testing.T) {
	// tolerate spaces after commas, as entered by hand
	if !DueOn("weekdays", "1, 0, 1, 0, 1, 0, 0", day(2024, time.January, 3)) {
		t.Error("mask with spaces should still match Wednesday")
	}
}

func TestDueOn_UnknownScheduleType(t *testing.T) {
	for _, st := range []string{"", "yearly", "biweekly", "DAILY"} {
		if DueOn(st, "1,1,1,1,1,1,1", day(2024, time.March, 15)) {
			t.Errorf("DueOn(%q) = true, want false", st)
		}
	}
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		ref       time.Time
		wantFirst string
		wantLast  string
	}{
		{day(2024, time.December, 10), "2024-12-01", "2024-12-31"},
		{day(2024, time.February, 10), "2024-02-01", "2024-02-29"}, // leap year
		{day(2023, time.February, 10), "2023-02-01", "2023-02-28"},
		{day(2024, time.January, 1), "2024-01-01", "2024-01-31"},
		{day(2024, time.April, 30), "2024-04-01", "2024-04-30"},
	}

	for _, tc := range cases {
		first, last := MonthRange(tc.ref)
		if got := first.Format(DayFormat); got != tc.wantFirst {
			t.Errorf("MonthRange(%s) first = %s, want %s", tc.ref.Format(DayFormat), got, tc.wantFirst)
		}
		if got := last.Format(DayFormat); got != tc.wantLast {
			t.Errorf("MonthRange(%s) last = %s, want %s", tc.ref.Format(DayFormat), got, tc.wantLast)
		}
	}
}

func TestMonthRange_DecemberRollover(t *testing.T) {
	_, last := MonthRange(day(2024, time.December, 25))
	if last.Year() != 2024 || last.Month() != time.December || last.Day() != 31 {
		t.Errorf("December range must not spill into January, got %s", last.Format(DayFormat))
	}
}
