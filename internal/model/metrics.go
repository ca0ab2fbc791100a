package model

import "time"

// MonthlySummary is one calendar month's aggregate spend.
type MonthlySummary struct {
	Label           string     `json:"label"`
	Year            int        `json:"year"`
	Month           time.Month `json:"month"`
	TotalSpent      float64    `json:"total_spent"`
	SavingsAchieved float64    `json:"savings_achieved"`
}

// CategoryShare is one category's portion of a month's spend.
type CategoryShare struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
	Percent  float64  `json:"percent"`
	Count    int      `json:"count"`
}

// DaySpend is the total spent on one local calendar day.
type DaySpend struct {
	Date   time.Time `json:"date"`
	Key    string    `json:"key"` // 2006-01-02
	Label  string    `json:"label"`
	Amount float64   `json:"amount"`
}

// CalendarStats describes where "now" falls in the month and year.
type CalendarStats struct {
	DayOfMonth           int     `json:"day_of_month"`
	DaysInMonth          int     `json:"days_in_month"`
	DaysRemainingInMonth int     `json:"days_remaining_in_month"` // includes today
	DaysInYear           int     `json:"days_in_year"`
	DaysElapsedInYear    int     `json:"days_elapsed_in_year"`
	DaysRemainingInYear  int     `json:"days_remaining_in_year"`
	SecondsUntilYearEnd  int64   `json:"seconds_until_year_end"`
	YearProgressPercent  float64 `json:"year_progress_percent"`
}

// Snapshot is the full set of derived metrics for one instant.
type Snapshot struct {
	At             time.Time        `json:"at"`
	Calendar       CalendarStats    `json:"calendar"`
	Budget         BudgetStats      `json:"budget"`
	Goals          GoalStats        `json:"goals"`
	MonthlyHistory []MonthlySummary `json:"monthly_history"` // newest first
	Categories     []CategoryShare  `json:"categories"`      // current month, largest first
	Timeline       []DaySpend       `json:"timeline"`        // last 7 days, oldest first
}
