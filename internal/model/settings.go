package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a rolling statistics window measured backward from "now".
// Contrast with the calendar-month window used by the monthly title
// classifier; the two are deliberately distinct concepts.
type Period string

// Statistics periods.
const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods lists all statistics periods.
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodYear}

// Days returns the trailing window length in days.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}

// Settings holds the user-tunable knobs. The three budgets are independent
// ceilings, not multiples of each other.
type Settings struct {
	BudgetWeekly      decimal.Decimal `json:"budgetWeekly"`
	BudgetMonthly     decimal.Decimal `json:"budgetMonthly"`
	BudgetYearly      decimal.Decimal `json:"budgetYearly"`
	ColdThresholdDays int             `json:"coldThresholdDays"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		BudgetWeekly:      decimal.NewFromInt(500),
		BudgetMonthly:     decimal.NewFromInt(2000),
		BudgetYearly:      decimal.NewFromInt(24000),
		ColdThresholdDays: 60,
	}
}

// Budget returns the configured ceiling for the given period.
func (s Settings) Budget(p Period) decimal.Decimal {
	switch p {
	case PeriodWeek:
		return s.BudgetWeekly
	case PeriodYear:
		return s.BudgetYearly
	default:
		return s.BudgetMonthly
	}
}

// DayKey formats a timestamp as the calendar-day key used for daily notes.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
