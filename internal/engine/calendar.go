package engine

import (
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// DayKeyLayout is the canonical per-day key format.
const DayKeyLayout = "2006-01-02"

// TimelineDays is the length of the short-term spending timeline.
const TimelineDays = 7

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// Before reports whether k is an earlier month than o.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// Label returns the short month name, e.g. "Jan".
func (k MonthKey) Label() string {
	return k.Month.String()[:3]
}

// Window holds the calendar boundaries around one instant. All math is done
// in now's location so day boundaries follow local midnight.
type Window struct {
	Now         time.Time
	Loc         *time.Location
	Month       MonthKey
	DayOfMonth  int
	DaysInMonth int
	YearStart   time.Time
	YearEnd     time.Time // midnight of Jan 1 next year
	DaysInYear  int
	DaysElapsed int
}

// ResolveWindow computes the calendar window for now.
func ResolveWindow(now time.Time) Window {
	loc := now.Location()
	y, m, d := now.Date()
	yearStart := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	yearEnd := time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
	return Window{
		Now:         now,
		Loc:         loc,
		Month:       MonthKey{Year: y, Month: m},
		DayOfMonth:  d,
		DaysInMonth: daysIn(y, m, loc),
		YearStart:   yearStart,
		YearEnd:     yearEnd,
		DaysInYear:  time.Date(y, time.December, 31, 0, 0, 0, 0, loc).YearDay(),
		// whole local days since Jan 1; YearDay avoids DST-shortened days
		DaysElapsed: now.YearDay() - 1,
	}
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

// DaysRemainingInMonth counts the days left in the month, today included.
func (w Window) DaysRemainingInMonth() int {
	return w.DaysInMonth - w.DayOfMonth + 1
}

// DaysRemainingInYear counts the days left in the year, today included.
func (w Window) DaysRemainingInYear() int {
	return w.DaysInYear - w.DaysElapsed
}

// KeyOf returns the month bucket for t in the window's location.
func (w Window) KeyOf(t time.Time) MonthKey {
	y, m, _ := t.In(w.Loc).Date()
	return MonthKey{Year: y, Month: m}
}

// DayKey returns the canonical local day key for t.
func (w Window) DayKey(t time.Time) string {
	return t.In(w.Loc).Format(DayKeyLayout)
}

// InCurrentMonth reports whether t falls in now's calendar month.
func (w Window) InCurrentMonth(t time.Time) bool {
	return w.KeyOf(t) == w.Month
}

// LastDays returns the last n calendar days ending today, oldest first.
func (w Window) LastDays(n int) []model.DaySpend {
	y, m, d := w.Now.Date()
	days := make([]model.DaySpend, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := time.Date(y, m, d-i, 0, 0, 0, 0, w.Loc)
		days = append(days, model.DaySpend{
			Date:  day,
			Key:   day.Format(DayKeyLayout),
			Label: dayLabel(i, day),
		})
	}
	return days
}

func dayLabel(daysAgo int, day time.Time) string {
	switch daysAgo {
	case 0:
		return "Today"
	case 1:
		return "Yest."
	default:
		return day.Weekday().String()[:3]
	}
}

// Stats packages the window as presentation-ready calendar figures.
func (w Window) Stats() model.CalendarStats {
	remaining := w.YearEnd.Sub(w.Now)
	if remaining < 0 {
		remaining = 0
	}
	total := w.YearEnd.Sub(w.YearStart)
	var pct float64
	if total > 0 {
		pct = float64(w.Now.Sub(w.YearStart)) / float64(total) * 100
	}
	return model.CalendarStats{
		DayOfMonth:           w.DayOfMonth,
		DaysInMonth:          w.DaysInMonth,
		DaysRemainingInMonth: w.DaysRemainingInMonth(),
		DaysInYear:           w.DaysInYear,
		DaysElapsedInYear:    w.DaysElapsed,
		DaysRemainingInYear:  w.DaysRemainingInYear(),
		SecondsUntilYearEnd:  int64(remaining / time.Second),
		YearProgressPercent:  clamp(pct, 0, 100),
	}
}
