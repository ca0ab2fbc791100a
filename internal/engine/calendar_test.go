package engine

import (
	"testing"
	"time"
)

func TestResolveWindow_MonthBounds(t *testing.T) {
	tests := []struct {
		now           string
		daysInMonth   int
		dayOfMonth    int
		remainingDays int
	}{
		{"2025-06-15 10:00", 30, 15, 16},
		{"2025-06-30 23:59", 30, 30, 1},
		{"2024-02-29 12:00", 29, 29, 1},
		{"2025-02-01 00:00", 28, 1, 28},
		{"2025-12-31 08:00", 31, 31, 1},
	}
	for _, tt := range tests {
		w := ResolveWindow(mustTime(t, tt.now))
		if w.DaysInMonth != tt.daysInMonth || w.DayOfMonth != tt.dayOfMonth {
			t.Errorf("%s: month = day %d of %d, want day %d of %d",
				tt.now, w.DayOfMonth, w.DaysInMonth, tt.dayOfMonth, tt.daysInMonth)
		}
		if got := w.DaysRemainingInMonth(); got != tt.remainingDays {
			t.Errorf("%s: DaysRemainingInMonth = %d, want %d", tt.now, got, tt.remainingDays)
		}
	}
}

func TestResolveWindow_YearBounds(t *testing.T) {
	w := ResolveWindow(mustTime(t, "2024-03-01 06:00"))
	if w.DaysInYear != 366 {
		t.Errorf("DaysInYear = %d, want 366", w.DaysInYear)
	}
	if w.DaysElapsed != 60 {
		t.Errorf("DaysElapsed = %d, want 60", w.DaysElapsed)
	}
	if got := w.DaysRemainingInYear(); got != 306 {
		t.Errorf("DaysRemainingInYear = %d, want 306", got)
	}

	first := ResolveWindow(mustTime(t, "2025-01-01 00:00"))
	if first.DaysElapsed != 0 || first.DaysRemainingInYear() != 365 {
		t.Errorf("Jan 1: elapsed %d remaining %d, want 0 and 365", first.DaysElapsed, first.DaysRemainingInYear())
	}
}

func TestWindowStats_YearCountdown(t *testing.T) {
	st := ResolveWindow(mustTime(t, "2025-12-31 23:00")).Stats()
	if st.SecondsUntilYearEnd != 3600 {
		t.Errorf("SecondsUntilYearEnd = %d, want 3600", st.SecondsUntilYearEnd)
	}
	if st.DaysRemainingInYear != 1 {
		t.Errorf("DaysRemainingInYear = %d, want 1", st.DaysRemainingInYear)
	}
	if st.YearProgressPercent <= 99 || st.YearProgressPercent > 100 {
		t.Errorf("YearProgressPercent = %.3f, want just under 100", st.YearProgressPercent)
	}
}

func TestWindow_KeyUsesLocalCalendar(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, ist)
	w := ResolveWindow(now)

	// 20:00 UTC on May 31 is already June 1 in IST.
	late := time.Date(2025, time.May, 31, 20, 0, 0, 0, time.UTC)
	if got := w.KeyOf(late); got != (MonthKey{Year: 2025, Month: time.June}) {
		t.Errorf("KeyOf = %+v, want June 2025", got)
	}
	if !w.InCurrentMonth(late) {
		t.Error("InCurrentMonth = false, want true")
	}
	if got := w.DayKey(late); got != "2025-06-01" {
		t.Errorf("DayKey = %q, want 2025-06-01", got)
	}
}

func TestResolveWindow_DSTDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clocks spring forward on 2025-03-09; the elapsed day count must not
	// drop an hour's worth of day.
	now := time.Date(2025, time.March, 10, 0, 30, 0, 0, loc)
	w := ResolveWindow(now)
	if w.DaysElapsed != 68 {
		t.Errorf("DaysElapsed = %d, want 68", w.DaysElapsed)
	}
	days := w.LastDays(3)
	if days[0].Key != "2025-03-08" || days[1].Key != "2025-03-09" || days[2].Key != "2025-03-10" {
		t.Errorf("LastDays keys = %s %s %s", days[0].Key, days[1].Key, days[2].Key)
	}
}

func TestMonthKey_Before(t *testing.T) {
	dec := MonthKey{Year: 2024, Month: time.December}
	jan := MonthKey{Year: 2025, Month: time.January}
	if !dec.Before(jan) || jan.Before(dec) || jan.Before(jan) {
		t.Error("MonthKey.Before ordering is wrong")
	}
	if jan.Label() != "Jan" {
		t.Errorf("Label = %q, want Jan", jan.Label())
	}
}
