package period_test

import (
	"testing"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/app/period"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestWeekID(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{localDate(2024, time.January, 1), "2024-W01"},
		// Dec 31 2024 is a Tuesday — ISO week 1 of 2025
		{localDate(2024, time.December, 31), "2025-W01"},
		// Jan 1 2027 is a Friday — still week 53 of 2026
		{localDate(2027, time.January, 1), "2026-W53"},
	}
	for _, tt := range tests {
		if got := period.WeekID(tt.date); got != tt.want {
			t.Errorf("WeekID(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestMonthID(t *testing.T) {
	if got := period.MonthID(localDate(2026, time.September, 5)); got != "2026-M09" {
		t.Errorf("MonthID = %s, want 2026-M09", got)
	}
	if got := period.MonthID(localDate(2026, time.December, 31)); got != "2026-M12" {
		t.Errorf("MonthID = %s, want 2026-M12", got)
	}
}

func TestClampStartDay(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, period.DefaultStartDay},
		{-3, period.DefaultStartDay},
		{1, 1},
		{16, 16},
		{28, 28},
		{29, 28},
		{31, 28},
	}
	for _, tt := range tests {
		if got := period.ClampStartDay(tt.in); got != tt.want {
			t.Errorf("ClampStartDay(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCommercialMonthRange_AfterStartDay(t *testing.T) {
	// Sep 20 with start day 16 → Sep 16 .. Oct 15
	start, end := period.CommercialMonthRange(localDate(2026, time.September, 20), 16)

	if start.Day() != 16 || start.Month() != time.September {
		t.Errorf("start = %v, want Sep 16", start)
	}
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("start not normalized to midnight: %v", start)
	}
	if end.Day() != 15 || end.Month() != time.October {
		t.Errorf("end = %v, want Oct 15", end)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("end not normalized to end of day: %v", end)
	}
}

func TestCommercialMonthRange_BeforeStartDay(t *testing.T) {
	// Sep 10 with start day 16 → the period began Aug 16
	start, end := period.CommercialMonthRange(localDate(2026, time.September, 10), 16)

	if start.Month() != time.August || start.Day() != 16 {
		t.Errorf("start = %v, want Aug 16", start)
	}
	if end.Month() != time.September || end.Day() != 15 {
		t.Errorf("end = %v, want Sep 15", end)
	}
}

func TestCommercialMonthRange_YearBoundary(t *testing.T) {
	// Jan 5 with start day 16 → Dec 16 of the previous year
	start, end := period.CommercialMonthRange(localDate(2026, time.January, 5), 16)

	if start.Year() != 2025 || start.Month() != time.December || start.Day() != 16 {
		t.Errorf("start = %v, want 2025-12-16", start)
	}
	if end.Year() != 2026 || end.Month() != time.January || end.Day() != 15 {
		t.Errorf("end = %v, want 2026-01-15", end)
	}
}

func TestCommercialMonthRange_StartDayInvariant(t *testing.T) {
	// Property: for every startDay in [1,28], start.Day() == startDay and
	// end is exactly one day before the next period's start.
	ref := localDate(2026, time.March, 7)
	for startDay := 1; startDay <= 28; startDay++ {
		start, end := period.CommercialMonthRange(ref, startDay)
		if start.Day() != startDay {
			t.Fatalf("startDay=%d: start.Day() = %d", startDay, start.Day())
		}
		nextStart, _ := period.CommercialMonthRange(end.Add(time.Nanosecond), startDay)
		if !nextStart.Equal(end.Add(time.Nanosecond)) {
			t.Fatalf("startDay=%d: end %v not adjacent to next start %v", startDay, end, nextStart)
		}
	}
}

func TestDaysUntilCommercialMonthEnd(t *testing.T) {
	tests := []struct {
		date     time.Time
		startDay int
		want     int
	}{
		// Last day of the period → 0
		{localDate(2026, time.October, 15), 16, 0},
		// Day before last → 1
		{localDate(2026, time.October, 14), 16, 1},
		// First day of a 30-day period (Sep 16 .. Oct 15) → 29
		{localDate(2026, time.September, 16), 16, 29},
	}
	for _, tt := range tests {
		got := period.DaysUntilCommercialMonthEnd(tt.date, tt.startDay)
		if got != tt.want {
			t.Errorf("DaysUntilCommercialMonthEnd(%s, %d) = %d, want %d",
				tt.date.Format("2006-01-02"), tt.startDay, got, tt.want)
		}
	}
}

func TestInCommercialMonth(t *testing.T) {
	ref := localDate(2026, time.September, 20) // period Sep 16 .. Oct 15

	if !period.InCommercialMonth(localDate(2026, time.September, 16), ref, 16) {
		t.Error("period start day should be inside")
	}
	if !period.InCommercialMonth(localDate(2026, time.October, 15), ref, 16) {
		t.Error("period end day should be inside")
	}
	if period.InCommercialMonth(localDate(2026, time.September, 15), ref, 16) {
		t.Error("day before period start should be outside")
	}
	if period.InCommercialMonth(localDate(2026, time.October, 16), ref, 16) {
		t.Error("next period start should be outside")
	}
}

func TestWeekProgress(t *testing.T) {
	// Monday = 1/7, Sunday = 7/7
	monday := localDate(2026, time.September, 7)
	if got := period.WeekProgress(monday); got < 14.0 || got > 15.0 {
		t.Errorf("Monday progress = %.2f, want ~14.29", got)
	}
	sunday := localDate(2026, time.September, 13)
	if got := period.WeekProgress(sunday); got != 100.0 {
		t.Errorf("Sunday progress = %.2f, want 100", got)
	}
}

func TestMonthProgress(t *testing.T) {
	// Sep 15 of a 30-day month → 50%
	if got := period.MonthProgress(localDate(2026, time.September, 15)); got != 50.0 {
		t.Errorf("Sep 15 progress = %.2f, want 50", got)
	}
	if got := period.MonthProgress(localDate(2026, time.September, 30)); got != 100.0 {
		t.Errorf("Sep 30 progress = %.2f, want 100", got)
	}
}

func TestCommercialMonthProgress_Bounds(t *testing.T) {
	first := localDate(2026, time.September, 16)
	last := localDate(2026, time.October, 15)

	gotFirst := period.CommercialMonthProgress(first, 16)
	if gotFirst <= 0 || gotFirst > 10 {
		t.Errorf("first day progress = %.2f, want small positive", gotFirst)
	}
	if got := period.CommercialMonthProgress(last, 16); got != 100.0 {
		t.Errorf("last day progress = %.2f, want 100", got)
	}
}

func TestYearProgress(t *testing.T) {
	if got := period.YearProgress(localDate(2026, time.December, 31)); got != 100.0 {
		t.Errorf("Dec 31 = %.2f, want 100", got)
	}
	jan1 := period.YearProgress(localDate(2026, time.January, 1))
	if jan1 <= 0 || jan1 > 1 {
		t.Errorf("Jan 1 = %.2f, want tiny positive", jan1)
	}
}

func TestDayProgress(t *testing.T) {
	noon := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
	if got := period.DayProgress(noon); got != 50.0 {
		t.Errorf("noon = %.2f, want 50", got)
	}
}
