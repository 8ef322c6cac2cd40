// Package period implements calendar and "commercial month" arithmetic.
// A commercial month runs from a configurable start day of one calendar
// month through the day before that start day in the next month.
//
// Every function here is pure and operates on local calendar time — the
// same zone policy as the log date keys. Mixing UTC into any of these
// calculations would shift period boundaries for users east or west of
// Greenwich, so don't.
package period

import (
	"fmt"
	"math"
	"time"
)

// DefaultStartDay is the commercial month start used when none is configured.
const DefaultStartDay = 16

// ClampStartDay bounds a configured start day to [1, 28] so every period
// boundary exists in every month. Non-positive values fall back to the
// default.
func ClampStartDay(d int) int {
	if d < 1 {
		return DefaultStartDay
	}
	if d > 28 {
		return 28
	}
	return d
}

// WeekID returns the ISO-8601 week identifier, e.g. "2026-W36". The week
// containing Thursday defines the year and week number.
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthID returns the calendar month identifier, e.g. "2026-M09".
func MonthID(t time.Time) string {
	return fmt.Sprintf("%d-M%02d", t.Year(), int(t.Month()))
}

// CommercialMonthRange returns the commercial month containing t.
// If t's day-of-month is before startDay, the period began in the previous
// calendar month. Start is midnight local; end is the last nanosecond of
// the day before the next period starts.
func CommercialMonthRange(t time.Time, startDay int) (start, end time.Time) {
	startDay = ClampStartDay(startDay)

	year, month, day := t.Date()
	if day >= startDay {
		start = time.Date(year, month, startDay, 0, 0, 0, 0, time.Local)
	} else {
		start = time.Date(year, month-1, startDay, 0, 0, 0, 0, time.Local)
	}

	nextStart := time.Date(start.Year(), start.Month()+1, startDay, 0, 0, 0, 0, time.Local)
	end = nextStart.Add(-time.Nanosecond)
	return start, end
}

// InCommercialMonth reports whether d falls inside the commercial month
// containing ref.
func InCommercialMonth(d, ref time.Time, startDay int) bool {
	start, end := CommercialMonthRange(ref, startDay)
	return !d.Before(start) && !d.After(end)
}

// DaysUntilCommercialMonthEnd counts remaining calendar days in t's
// commercial month, today included in the period but not in the count.
// Zero means t is the last day of the period.
func DaysUntilCommercialMonthEnd(t time.Time, startDay int) int {
	_, end := CommercialMonthRange(t, startDay)
	return calendarDaysBetween(dateOf(t), dateOf(end))
}

// ─── Progress ───────────────────────────────────────────────────────────────
// Elapsed-inclusive over total, as a percentage clamped to [0, 100].

// DayProgress returns how much of t's day has elapsed.
func DayProgress(t time.Time) float64 {
	elapsed := t.Sub(dateOf(t)).Seconds()
	return clampPct(elapsed / (24 * 3600) * 100)
}

// WeekProgress returns progress through t's ISO week (Monday-based).
func WeekProgress(t time.Time) float64 {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is day 7 in ISO weeks
	}
	return clampPct(float64(weekday) / 7 * 100)
}

// MonthProgress returns progress through t's calendar month.
func MonthProgress(t time.Time) float64 {
	total := daysInMonth(t.Year(), t.Month())
	return clampPct(float64(t.Day()) / float64(total) * 100)
}

// CommercialMonthProgress returns progress through t's commercial month.
func CommercialMonthProgress(t time.Time, startDay int) float64 {
	start, end := CommercialMonthRange(t, startDay)
	total := calendarDaysBetween(dateOf(start), dateOf(end)) + 1
	elapsed := calendarDaysBetween(dateOf(start), dateOf(t)) + 1
	return clampPct(float64(elapsed) / float64(total) * 100)
}

// YearProgress returns progress through t's calendar year.
func YearProgress(t time.Time) float64 {
	total := 365
	if isLeapYear(t.Year()) {
		total = 366
	}
	return clampPct(float64(t.YearDay()) / float64(total) * 100)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// dateOf truncates to local midnight.
func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// calendarDaysBetween counts whole calendar days from a to b. Rounding
// absorbs DST transitions, where a "day" is 23 or 25 hours long.
func calendarDaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
